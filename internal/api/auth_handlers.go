package api

import (
	"errors"
	"net/http"
	"time"

	"repurpose/internal/users"
	"repurpose/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if users.IsValidationError(err) {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("[Auth] Signup error: %v", err)
		utils.Error(c, http.StatusInternalServerError, "signup failed")
		return
	}

	utils.Respond(c, http.StatusCreated, res)
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		utils.Success(c, res)
	case users.IsValidationError(err):
		utils.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrInvalidCredentials):
		utils.Error(c, http.StatusUnauthorized, err.Error())
	default:
		log.Errorf("[Auth] Login error: %v", err)
		utils.Error(c, http.StatusInternalServerError, "login failed")
	}
}

// verifyToken echoes the claims of a valid token, including its lifetime
func (s *Server) verifyToken(c *gin.Context) {
	claims := currentClaims(c)
	user := gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
	}
	if claims.IssuedAt != nil {
		user["iat"] = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		user["exp"] = claims.ExpiresAt.Unix()
		user["expiresAt"] = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	utils.Success(c, gin.H{
		"valid": true,
		"user":  user,
	})
}
