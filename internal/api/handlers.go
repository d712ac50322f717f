package api

import (
	"errors"
	"net/http"

	"repurpose/internal/ai"
	"repurpose/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DefaultPlatforms are generated when a request does not name any
var DefaultPlatforms = []string{"linkedin", "twitter", "email"}

type ProfessionRequest struct {
	Profession string `json:"profession"`
}

// GenerateRequest is the body of POST /generate-content. A missing
// platforms field selects DefaultPlatforms; an explicit empty list does not.
type GenerateRequest struct {
	Transcript string   `json:"transcript"`
	Tone       string   `json:"tone"`
	Platforms  []string `json:"platforms"`
}

func (s *Server) listPlatforms(c *gin.Context) {
	utils.Success(c, ai.PlatformCatalog())
}

func (s *Server) listProfessions(c *gin.Context) {
	utils.Success(c, ai.Professions)
}

func (s *Server) getUsage(c *gin.Context) {
	utils.Success(c, s.usage.Report())
}

// setProfession stores the caller's profession
func (s *Server) setProfession(c *gin.Context) {
	var req ProfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := currentUserID(c)
	if err := s.content.SetProfession(userID, req.Profession); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	log.WithField("user", userID).Infof("[Profession] Set to %s", req.Profession)
	utils.Success(c, gin.H{
		"userId":     userID,
		"profession": req.Profession,
		"message":    "Profession set successfully",
	})
}

// generateContent turns a transcript into platform copy and saves it to the
// caller's library
func (s *Server) generateContent(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Platforms == nil {
		req.Platforms = append([]string(nil), DefaultPlatforms...)
	}

	res, err := s.content.Generate(c.Request.Context(), currentUserID(c), req.Transcript, req.Tone, req.Platforms)
	if err != nil {
		if errors.Is(err, ai.ErrValidation) {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("[Generate] Content generation failed: %v", err)
		utils.Error(c, http.StatusInternalServerError, "content generation failed")
		return
	}

	utils.Success(c, res)
}

