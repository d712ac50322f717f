package api

import (
	"errors"
	"net/http"

	"repurpose/internal/repository"
	"repurpose/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

// listLibrary returns the caller's saved generations, newest first
func (s *Server) listLibrary(c *gin.Context) {
	entries, err := s.content.Library(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Errorf("[Library] Error listing entries: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to load library")
		return
	}

	utils.Success(c, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

func (s *Server) getLibraryEntry(c *gin.Context) {
	entry, err := s.content.Entry(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		libraryError(c, err)
		return
	}
	utils.Success(c, entry)
}

func (s *Server) deleteLibraryEntry(c *gin.Context) {
	s.deleteEntry(c, c.Param("id"))
}

// deleteLibraryEntryByBody handles POST /library/delete with {"id": ...}
func (s *Server) deleteLibraryEntryByBody(c *gin.Context) {
	var req DeleteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		utils.Error(c, http.StatusBadRequest, "id is required")
		return
	}
	s.deleteEntry(c, req.ID)
}

func (s *Server) deleteEntry(c *gin.Context, id string) {
	if err := s.content.DeleteEntry(c.Request.Context(), currentUserID(c), id); err != nil {
		libraryError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"id":     id,
		"status": "deleted",
	})
}

func libraryError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(c, http.StatusNotFound, "library entry not found")
		return
	}
	log.Errorf("[Library] Storage error: %v", err)
	utils.Error(c, http.StatusInternalServerError, "failed to access library")
}
