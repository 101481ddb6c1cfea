package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListDuplicateMemberships(c *gin.Context) {
	duplicates, err := s.reconcileSvc.ListDuplicates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicates": duplicates})
}

func (s *Server) LinkMemberships(c *gin.Context) {
	report, err := s.reconcileSvc.LinkBestMemberships(c.Request.Context())
	if err != nil {
		s.metrics.RecordLinkPass("api", "failed")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordLinkPass("api", "ok")
	c.JSON(http.StatusOK, report)
}
