package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumesift/resumesift/internal/database"
)

// handleListRankings returns every ranked candidate for a job with the
// approval state joined in. Admin only, the public view is the
// shortlist.
func (s *Server) handleListRankings(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetJobPosting(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	rankings, err := s.store.ListRankingsWithApprovals(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "listing rankings")
		return
	}
	if rankings == nil {
		rankings = []database.ListRankingsWithApprovalsRow{}
	}
	c.JSON(http.StatusOK, rankings)
}

// handleShortlist returns only the approved candidates, in ranking
// order. This is the list the rest of the company sees.
func (s *Server) handleShortlist(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetJobPosting(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	shortlist, err := s.store.ListShortlistByJob(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "listing shortlist")
		return
	}
	if shortlist == nil {
		shortlist = []database.Ranking{}
	}
	c.JSON(http.StatusOK, shortlist)
}

// handleListPending returns ranked candidates still waiting for an
// approve or reject decision.
func (s *Server) handleListPending(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetJobPosting(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	pending, err := s.store.ListPendingRankingsByJob(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "listing pending rankings")
		return
	}
	if pending == nil {
		pending = []database.Ranking{}
	}
	c.JSON(http.StatusOK, pending)
}
