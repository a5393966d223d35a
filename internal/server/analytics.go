package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/match"
)

type analyticsSummary struct {
	TotalResumes  int64   `json:"total_resumes"`
	ParsedResumes int64   `json:"parsed_resumes"`
	TotalJobs     int64   `json:"total_jobs"`
	TotalRankings int64   `json:"total_rankings"`
	AverageScore  float64 `json:"average_score"`
	ApprovedCount int64   `json:"approved_count"`
	PendingReview int64   `json:"pending_review"`
}

const recentActivityLimit = 10

func (s *Server) gatherSummary(ctx context.Context) (analyticsSummary, []database.ActivityLog, error) {
	var sum analyticsSummary
	var err error

	if sum.TotalResumes, err = s.store.CountResumes(ctx); err != nil {
		return sum, nil, fmt.Errorf("counting resumes: %w", err)
	}
	if sum.ParsedResumes, err = s.store.CountParsedResumes(ctx); err != nil {
		return sum, nil, fmt.Errorf("counting parsed resumes: %w", err)
	}
	if sum.TotalJobs, err = s.store.CountJobPostings(ctx); err != nil {
		return sum, nil, fmt.Errorf("counting jobs: %w", err)
	}
	if sum.TotalRankings, err = s.store.CountRankings(ctx); err != nil {
		return sum, nil, fmt.Errorf("counting rankings: %w", err)
	}
	avg, err := s.store.AverageOverallScore(ctx)
	if err != nil {
		return sum, nil, fmt.Errorf("averaging scores: %w", err)
	}
	sum.AverageScore = match.Round2(avg)
	if sum.ApprovedCount, err = s.store.CountApprovalsByStatus(ctx, "approved"); err != nil {
		return sum, nil, fmt.Errorf("counting approvals: %w", err)
	}
	if sum.PendingReview, err = s.store.CountPendingReview(ctx); err != nil {
		return sum, nil, fmt.Errorf("counting pending review: %w", err)
	}

	recent, err := s.store.ListRecentActivityLogs(ctx, recentActivityLimit)
	if err != nil {
		return sum, nil, fmt.Errorf("listing activity: %w", err)
	}
	if recent == nil {
		recent = []database.ActivityLog{}
	}
	return sum, recent, nil
}

func (s *Server) handleAnalyticsSummary(c *gin.Context) {
	sum, recent, err := s.gatherSummary(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err, "gathering analytics")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":           sum,
		"recent_activities": recent,
	})
}
