package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/jobspec"
	"github.com/resumesift/resumesift/internal/queue"
)

type createJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description" binding:"required"`
}

// handleCreateJob stores a posting with the requirements distilled from
// its free-text description.
func (s *Server) handleCreateJob(c *gin.Context) {
	log := s.logger(c)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "title and description are required")
		return
	}

	spec := jobspec.Parse(req.Description)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = spec.Title
	}

	job, err := s.store.CreateJobPosting(c.Request.Context(), database.CreateJobPostingParams{
		Title:              title,
		Description:        req.Description,
		RequiredSkills:     spec.RequiredSkills,
		PreferredSkills:    spec.PreferredSkills,
		MinExperienceYears: float64(spec.MinExperienceYears),
		MaxExperienceYears: float64(spec.MaxExperienceYears),
		EducationLevel:     spec.EducationLevel,
		Keywords:           spec.Keywords,
	})
	if err != nil {
		s.respondStoreError(c, err, "creating job posting")
		return
	}

	s.logActivity(c.Request.Context(), log, "job_created", map[string]any{
		"job_id": job.ID,
		"title":  job.Title,
	})
	c.JSON(http.StatusCreated, job)
}

func (s *Server) handleListJobs(c *gin.Context) {
	jobs, err := s.store.ListJobPostingsWithCounts(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err, "listing jobs")
		return
	}
	if jobs == nil {
		jobs = []database.ListJobPostingsWithCountsRow{}
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) handleGetJob(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	job, err := s.store.GetJobPosting(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// handleCloseJob marks the posting closed. Existing rankings stay
// readable, new match runs are refused.
func (s *Server) handleCloseJob(c *gin.Context) {
	log := s.logger(c)
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	job, err := s.store.CloseJobPosting(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "job")
		return
	}

	s.logActivity(c.Request.Context(), log, "job_closed", map[string]any{
		"job_id":    job.ID,
		"title":     job.Title,
		"closed_by": adminName(c),
	})
	c.JSON(http.StatusOK, job)
}

// handleQueueMatchRun creates a queued run and hands it to the worker
// pool. The response is 202, progress is visible on the run resource.
func (s *Server) handleQueueMatchRun(c *gin.Context) {
	log := s.logger(c)
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	job, err := s.store.GetJobPosting(ctx, id)
	if err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	if job.Status == "closed" {
		s.respondError(c, http.StatusConflict, "job is closed")
		return
	}

	parsed, err := s.store.CountParsedResumes(ctx)
	if err != nil {
		s.respondStoreError(c, err, "counting resumes")
		return
	}
	if parsed == 0 {
		s.respondError(c, http.StatusUnprocessableEntity, "no parsed resumes to match")
		return
	}

	run, err := s.store.CreateMatchRun(ctx, job.ID)
	if err != nil {
		s.respondStoreError(c, err, "creating match run")
		return
	}

	if err := s.runs.PublishRun(queue.RunMessage{RunID: run.ID, JobID: job.ID}); err != nil {
		log.Error("publishing match run", zap.String("run_id", run.ID.String()), zap.Error(err))
		if mErr := s.store.UpdateMatchRunStatus(ctx, database.UpdateMatchRunStatusParams{
			ID:     run.ID,
			Status: "failed",
			Error:  "failed to enqueue run",
		}); mErr != nil {
			log.Error("marking run failed", zap.String("run_id", run.ID.String()), zap.Error(mErr))
		}
		s.respondError(c, http.StatusInternalServerError, "failed to enqueue match run")
		return
	}

	s.logActivity(ctx, log, "match_run_queued", map[string]any{
		"run_id":    run.ID,
		"job_id":    job.ID,
		"queued_by": adminName(c),
	})
	c.JSON(http.StatusAccepted, run)
}

func (s *Server) handleGetRun(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	run, err := s.store.GetMatchRun(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "match run")
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleListRuns(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetJobPosting(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "job")
		return
	}
	runs, err := s.store.ListMatchRunsByJob(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "listing match runs")
		return
	}
	if runs == nil {
		runs = []database.MatchRun{}
	}
	c.JSON(http.StatusOK, runs)
}

// handleRunAnalyses returns the aggregated per-candidate AI assessments
// the worker stored for a run.
func (s *Server) handleRunAnalyses(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetMatchRun(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "match run")
		return
	}
	results, err := s.store.GetAnalysesResultsByRun(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "analyses results")
		return
	}
	c.JSON(http.StatusOK, results)
}
