// Package server exposes the HTTP surface: a JSON API for uploads,
// jobs, match runs, approvals and notifications, plus the
// server-rendered hiring board pages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/queue"
)

// Store is the slice of database.Querier the HTTP layer touches.
type Store interface {
	CreateResume(ctx context.Context, arg database.CreateResumeParams) (database.Resume, error)
	UpdateResumeParsed(ctx context.Context, arg database.UpdateResumeParsedParams) (database.Resume, error)
	MarkResumeParseFailed(ctx context.Context, arg database.MarkResumeParseFailedParams) (database.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (database.Resume, error)
	ListResumes(ctx context.Context) ([]database.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	CountResumes(ctx context.Context) (int64, error)
	CountParsedResumes(ctx context.Context) (int64, error)

	CreateJobPosting(ctx context.Context, arg database.CreateJobPostingParams) (database.JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (database.JobPosting, error)
	ListJobPostingsWithCounts(ctx context.Context) ([]database.ListJobPostingsWithCountsRow, error)
	CloseJobPosting(ctx context.Context, id uuid.UUID) (database.JobPosting, error)
	CountJobPostings(ctx context.Context) (int64, error)

	CreateMatchRun(ctx context.Context, jobID uuid.UUID) (database.MatchRun, error)
	GetMatchRun(ctx context.Context, id uuid.UUID) (database.MatchRun, error)
	UpdateMatchRunStatus(ctx context.Context, arg database.UpdateMatchRunStatusParams) error
	ListMatchRunsByJob(ctx context.Context, jobID uuid.UUID) ([]database.MatchRun, error)

	ListRankingsWithApprovals(ctx context.Context, jobID uuid.UUID) ([]database.ListRankingsWithApprovalsRow, error)
	ListShortlistByJob(ctx context.Context, jobID uuid.UUID) ([]database.Ranking, error)
	ListPendingRankingsByJob(ctx context.Context, jobID uuid.UUID) ([]database.Ranking, error)
	GetRankingByJobAndResume(ctx context.Context, arg database.GetRankingByJobAndResumeParams) (database.Ranking, error)
	CountRankings(ctx context.Context) (int64, error)
	AverageOverallScore(ctx context.Context) (float64, error)

	UpsertApproval(ctx context.Context, arg database.UpsertApprovalParams) (database.Approval, error)
	CountApprovalsByStatus(ctx context.Context, status string) (int64, error)
	CountPendingReview(ctx context.Context) (int64, error)

	GetAnalysesResultsByRun(ctx context.Context, runID uuid.UUID) (database.AnalysesResult, error)

	CreateActivityLog(ctx context.Context, arg database.CreateActivityLogParams) error
	ListRecentActivityLogs(ctx context.Context, limit int32) ([]database.ActivityLog, error)
}

var _ Store = (*database.Queries)(nil)

// ObjectStore stores and removes the raw resume files.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	Provider() string
	URL(key string) string
}

// RunPublisher enqueues match runs for the worker pool.
type RunPublisher interface {
	PublishRun(msg queue.RunMessage) error
}

// MailSender delivers one rendered notification email. A nil sender
// disables the notify endpoint except for dry runs.
type MailSender interface {
	Send(to, subject, htmlBody string) error
	Company() string
}

type Config struct {
	Addr       string
	AdminToken string
	// UploadWorkers bounds the goroutines processing one bulk archive.
	UploadWorkers int
}

type Server struct {
	cfg     Config
	log     *zap.Logger
	store   Store
	objects ObjectStore
	runs    RunPublisher
	mail    MailSender
	engine  *gin.Engine
}

func New(cfg Config, log *zap.Logger, store Store, objects ObjectStore, runs RunPublisher, mail MailSender) *Server {
	if cfg.UploadWorkers <= 0 {
		cfg.UploadWorkers = 4
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		store:   store,
		objects: objects,
		runs:    runs,
		mail:    mail,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.routes(engine)
	s.engine = engine

	return s
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Addr)
}

// Handler exposes the router, used by tests and embedders.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleDashboardPage)
	r.GET("/jobs", s.handleJobsPage)
	r.GET("/jobs/:id/board", s.handleBoardPage)
	r.GET("/upload", s.handleUploadPage)

	api := r.Group("/api")
	{
		api.POST("/resumes", s.handleUploadResume)
		api.POST("/resumes/bulk", s.handleBulkUpload)
		api.GET("/resumes", s.handleListResumes)
		api.GET("/resumes/:id", s.handleGetResume)
		api.DELETE("/resumes/:id", s.handleDeleteResume)

		api.POST("/jobs", s.handleCreateJob)
		api.GET("/jobs", s.handleListJobs)
		api.GET("/jobs/:id", s.handleGetJob)
		api.GET("/jobs/:id/shortlist", s.handleShortlist)
		api.GET("/jobs/:id/runs", s.handleListRuns)
		api.GET("/jobs/:id/candidates/:resumeID/questions", s.handleQuestions)
		api.GET("/runs/:id", s.handleGetRun)

		api.GET("/email-templates", s.handleEmailTemplates)
		api.GET("/analytics/summary", s.handleAnalyticsSummary)

		admin := api.Group("", s.adminOnly())
		{
			admin.POST("/jobs/:id/close", s.handleCloseJob)
			admin.POST("/jobs/:id/match", s.handleQueueMatchRun)
			admin.GET("/jobs/:id/rankings", s.handleListRankings)
			admin.GET("/jobs/:id/pending", s.handleListPending)
			admin.POST("/jobs/:id/candidates/:resumeID/approve", s.handleApprove)
			admin.POST("/jobs/:id/candidates/:resumeID/reject", s.handleReject)
			admin.POST("/jobs/:id/notify", s.handleNotify)
			admin.GET("/runs/:id/analyses", s.handleRunAnalyses)
		}
	}
}

const loggerKey = "logger"

// requestLogger attaches a txid-tagged logger to the request and writes
// one access line when it finishes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := s.log.With(zap.String("txid", uuid.NewString()))
		c.Set(loggerKey, log)

		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// logger returns the request-scoped logger set by requestLogger.
func (s *Server) logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return s.log
}

// adminOnly gates mutating and review endpoints behind the configured
// token. X-Admin-Name optionally identifies the acting admin.
func (s *Server) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Admin-Token")
		if token == "" || token != s.cfg.AdminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		c.Next()
	}
}

func adminName(c *gin.Context) string {
	if name := c.GetHeader("X-Admin-Name"); name != "" {
		return name
	}
	return "admin"
}

func (s *Server) respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// respondStoreError maps lookup misses to 404 and everything else to a
// logged 500.
func (s *Server) respondStoreError(c *gin.Context, err error, what string) {
	if errors.Is(err, database.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, what+" not found")
		return
	}
	s.logger(c).Error(what, zap.Error(err))
	s.respondError(c, http.StatusInternalServerError, "internal error")
}

// pathID parses a uuid path parameter, answering 400 itself when the
// value is malformed.
func (s *Server) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// logActivity records one activity row. Failures are logged and
// swallowed so bookkeeping never fails a request.
func (s *Server) logActivity(ctx context.Context, log *zap.Logger, action string, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := s.store.CreateActivityLog(ctx, database.CreateActivityLogParams{
		ActionType: action,
		Details:    payload,
	}); err != nil {
		log.Warn("recording activity", zap.String("action", action), zap.Error(err))
	}
}
