package api

import (
	"errors"
	"io"
	"net/http"

	"repurpose/internal/stt"
	"repurpose/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// multipartOverhead is allowed on top of MaxAudioSize for headers and boundaries
const multipartOverhead = 1 << 20

// transcribe handles POST /transcribe with a multipart "audio" file
func (s *Server) transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, stt.MaxAudioSize+multipartOverhead)

	file, err := c.FormFile("audio")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.Error(c, http.StatusRequestEntityTooLarge, "file size exceeds 50MB limit")
		return
	}
	if err != nil {
		log.Debugf("[Transcribe] FormFile error: %v", err)
		utils.Error(c, http.StatusBadRequest, "no audio file provided")
		return
	}
	if file.Size > stt.MaxAudioSize {
		utils.Error(c, http.StatusRequestEntityTooLarge, "file size exceeds 50MB limit")
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Errorf("[Transcribe] Failed to open upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to read audio file")
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		log.Errorf("[Transcribe] Failed to read upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to read audio file")
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(audio).String()
		log.Debugf("[Transcribe] Detected MIME type %s", mimeType)
	}
	if !stt.SupportedMIMEType(mimeType) {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format. Supported: mp3, wav, webm, ogg")
		return
	}

	log.WithField("user", currentUserID(c)).
		Infof("[Transcribe] Received %s (%d bytes, %s)", file.Filename, len(audio), mimeType)

	result := s.transcriber.Resolve(c.Request.Context(), audio, mimeType)
	s.usage.AddAudio(int64(len(audio)))

	utils.Success(c, result)
}
