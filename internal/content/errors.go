package content

import "errors"

var ErrInvalidProfession = errors.New("invalid profession")
