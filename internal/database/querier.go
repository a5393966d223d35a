package database

import (
	"context"

	"github.com/google/uuid"
)

// Querier is the query surface of the package. The HTTP server, the
// match worker and the review command each consume the slice of it they
// need; tests stand in stub implementations.
type Querier interface {
	CreateResume(ctx context.Context, arg CreateResumeParams) (Resume, error)
	UpdateResumeParsed(ctx context.Context, arg UpdateResumeParsedParams) (Resume, error)
	MarkResumeParseFailed(ctx context.Context, arg MarkResumeParseFailedParams) (Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (Resume, error)
	ListResumes(ctx context.Context) ([]Resume, error)
	ListParsedResumes(ctx context.Context) ([]Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	CountResumes(ctx context.Context) (int64, error)
	CountParsedResumes(ctx context.Context) (int64, error)

	CreateJobPosting(ctx context.Context, arg CreateJobPostingParams) (JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (JobPosting, error)
	ListJobPostings(ctx context.Context) ([]JobPosting, error)
	ListJobPostingsWithCounts(ctx context.Context) ([]ListJobPostingsWithCountsRow, error)
	CloseJobPosting(ctx context.Context, id uuid.UUID) (JobPosting, error)
	CountJobPostings(ctx context.Context) (int64, error)

	CreateMatchRun(ctx context.Context, jobID uuid.UUID) (MatchRun, error)
	GetMatchRun(ctx context.Context, id uuid.UUID) (MatchRun, error)
	UpdateMatchRunStatus(ctx context.Context, arg UpdateMatchRunStatusParams) error
	ListMatchRunsByJob(ctx context.Context, jobID uuid.UUID) ([]MatchRun, error)

	CreateRanking(ctx context.Context, arg CreateRankingParams) error
	DeleteRankingsByJob(ctx context.Context, jobID uuid.UUID) error
	ListRankingsWithApprovals(ctx context.Context, jobID uuid.UUID) ([]ListRankingsWithApprovalsRow, error)
	ListShortlistByJob(ctx context.Context, jobID uuid.UUID) ([]Ranking, error)
	ListPendingRankingsByJob(ctx context.Context, jobID uuid.UUID) ([]Ranking, error)
	GetRankingByJobAndResume(ctx context.Context, arg GetRankingByJobAndResumeParams) (Ranking, error)
	CountRankings(ctx context.Context) (int64, error)
	AverageOverallScore(ctx context.Context) (float64, error)

	UpsertApproval(ctx context.Context, arg UpsertApprovalParams) (Approval, error)
	CountApprovalsByStatus(ctx context.Context, status string) (int64, error)
	CountPendingReview(ctx context.Context) (int64, error)

	CreateOrUpdateAnalysesResults(ctx context.Context, arg CreateOrUpdateAnalysesResultsParams) error
	GetAnalysesResultsByRun(ctx context.Context, runID uuid.UUID) (AnalysesResult, error)

	CreateActivityLog(ctx context.Context, arg CreateActivityLogParams) error
	ListRecentActivityLogs(ctx context.Context, limit int32) ([]ActivityLog, error)
}

var _ Querier = (*Queries)(nil)
