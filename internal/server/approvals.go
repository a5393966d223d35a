package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumesift/resumesift/internal/database"
)

type approvalRequest struct {
	Note string `json:"note"`
}

func (s *Server) handleApprove(c *gin.Context) {
	s.decideCandidate(c, "approved")
}

func (s *Server) handleReject(c *gin.Context) {
	s.decideCandidate(c, "rejected")
}

// decideCandidate upserts the approval row for a ranked candidate.
// Re-deciding overwrites the previous decision, a candidate the engine
// never ranked for the job cannot be decided.
func (s *Server) decideCandidate(c *gin.Context, status string) {
	log := s.logger(c)
	jobID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	resumeID, ok := s.pathID(c, "resumeID")
	if !ok {
		return
	}

	var req approvalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	ctx := c.Request.Context()
	ranking, err := s.store.GetRankingByJobAndResume(ctx, database.GetRankingByJobAndResumeParams{
		JobID:    jobID,
		ResumeID: resumeID,
	})
	if err != nil {
		s.respondStoreError(c, err, "ranking")
		return
	}

	approval, err := s.store.UpsertApproval(ctx, database.UpsertApprovalParams{
		JobID:     jobID,
		ResumeID:  resumeID,
		Status:    status,
		DecidedBy: adminName(c),
		Note:      req.Note,
	})
	if err != nil {
		s.respondStoreError(c, err, "saving decision")
		return
	}

	s.logActivity(ctx, log, "candidate_"+status, map[string]any{
		"job_id":     jobID,
		"resume_id":  resumeID,
		"candidate":  ranking.CandidateName,
		"decided_by": approval.DecidedBy,
	})
	c.JSON(http.StatusOK, approval)
}
