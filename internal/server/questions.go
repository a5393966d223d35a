package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/interview"
)

// handleQuestions builds an interview question set for one ranked
// candidate from their matched and missing skills.
func (s *Server) handleQuestions(c *gin.Context) {
	jobID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	resumeID, ok := s.pathID(c, "resumeID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	ranking, err := s.store.GetRankingByJobAndResume(ctx, database.GetRankingByJobAndResumeParams{
		JobID:    jobID,
		ResumeID: resumeID,
	})
	if err != nil {
		s.respondStoreError(c, err, "ranking")
		return
	}

	questions := interview.Generate(job.Title, ranking.MatchedSkills, ranking.MissingSkills, ranking.TotalExperienceYears)
	c.JSON(http.StatusOK, gin.H{
		"job_id":         jobID,
		"resume_id":      resumeID,
		"candidate_name": ranking.CandidateName,
		"questions":      questions,
	})
}
