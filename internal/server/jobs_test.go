package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumesift/resumesift/internal/database"
)

const pythonJobDescription = `Senior Python Engineer

We are hiring for a Senior Python Engineer.
Python and PostgreSQL are required.
5+ years of experience.
Masters degree preferred.
`

func TestCreateJobParsesRequirements(t *testing.T) {
	env := newTestEnv()

	w := env.doJSON(t, http.MethodPost, "/api/jobs", map[string]string{
		"title":       "Senior Backend Engineer",
		"description": pythonJobDescription,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	job := decodeJSON[database.JobPosting](t, w)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "open", job.Status)

	require.Len(t, env.store.createdJobs, 1)
	created := env.store.createdJobs[0]
	assert.Contains(t, created.RequiredSkills, "Python")
	assert.Contains(t, created.RequiredSkills, "PostgreSQL")
	assert.Equal(t, 5.0, created.MinExperienceYears)
	assert.Equal(t, "masters", created.EducationLevel)
	assert.NotEmpty(t, created.Keywords)

	assert.Equal(t, []string{"job_created"}, env.store.activityTypes())
}

func TestCreateJobFallsBackToParsedTitle(t *testing.T) {
	env := newTestEnv()

	w := env.doJSON(t, http.MethodPost, "/api/jobs", map[string]string{
		"description": pythonJobDescription,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	job := decodeJSON[database.JobPosting](t, w)
	assert.Equal(t, "Senior Python Engineer", job.Title)
}

func TestCreateJobRequiresDescription(t *testing.T) {
	env := newTestEnv()

	w := env.doJSON(t, http.MethodPost, "/api/jobs", map[string]string{"title": "No description"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.store.createdJobs)
}

func TestListJobsCarriesRankingCounts(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	env.store.rankingsWithApprovals = map[uuid.UUID][]database.ListRankingsWithApprovalsRow{
		job.ID: {{CandidateName: "Ada"}, {CandidateName: "Bob"}},
	}

	w := env.do(http.MethodGet, "/api/jobs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	jobs := decodeJSON[[]database.ListJobPostingsWithCountsRow](t, w)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(2), jobs[0].RankingCount)
}

func TestCloseJob(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")

	w := env.do(http.MethodPost, "/api/jobs/"+job.ID.String()+"/close", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	closed := decodeJSON[database.JobPosting](t, w)
	assert.Equal(t, "closed", closed.Status)
	assert.Equal(t, []string{"job_closed"}, env.store.activityTypes())
}

func TestQueueMatchRun(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	seedParsedResume(env.store, "Ada", "ada@example.com")

	headers := adminHeaders()
	headers["X-Admin-Name"] = "casey"
	w := env.do(http.MethodPost, "/api/jobs/"+job.ID.String()+"/match", nil, headers)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	run := decodeJSON[database.MatchRun](t, w)
	assert.Equal(t, job.ID, run.JobID)
	assert.Equal(t, "queued", run.Status)

	require.Len(t, env.runs.published, 1)
	assert.Equal(t, run.ID, env.runs.published[0].RunID)
	assert.Equal(t, job.ID, env.runs.published[0].JobID)

	require.Len(t, env.store.activities, 1)
	assert.Equal(t, "match_run_queued", env.store.activities[0].ActionType)
	assert.Contains(t, string(env.store.activities[0].Details), "casey")
}

func TestQueueMatchRunClosedJob(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "closed")
	seedParsedResume(env.store, "Ada", "ada@example.com")

	w := env.do(http.MethodPost, "/api/jobs/"+job.ID.String()+"/match", nil, adminHeaders())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, env.runs.published)
	assert.Empty(t, env.store.runs)
}

func TestQueueMatchRunWithoutParsedResumes(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")

	// An unparseable upload alone is not matchable inventory.
	env.store.resumes = append(env.store.resumes, database.Resume{
		ID:           uuid.New(),
		UploadStatus: "parse_failed",
	})

	w := env.do(http.MethodPost, "/api/jobs/"+job.ID.String()+"/match", nil, adminHeaders())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, env.runs.published)
}

func TestQueueMatchRunPublishFailureMarksRunFailed(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	seedParsedResume(env.store, "Ada", "ada@example.com")
	env.runs.err = errors.New("broker unavailable")

	w := env.do(http.MethodPost, "/api/jobs/"+job.ID.String()+"/match", nil, adminHeaders())
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.Len(t, env.store.runStatuses, 1)
	assert.Equal(t, "failed", env.store.runStatuses[0].Status)
	assert.NotEmpty(t, env.store.runStatuses[0].Error)
}

func TestGetRunAndListRuns(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	run := database.MatchRun{ID: uuid.New(), JobID: job.ID, Status: "completed"}
	env.store.runs = append(env.store.runs, run)

	w := env.do(http.MethodGet, "/api/runs/"+run.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON[database.MatchRun](t, w)
	assert.Equal(t, "completed", got.Status)

	w = env.do(http.MethodGet, "/api/jobs/"+job.ID.String()+"/runs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	runs := decodeJSON[[]database.MatchRun](t, w)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)

	w = env.do(http.MethodGet, "/api/runs/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunAnalyses(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	run := database.MatchRun{ID: uuid.New(), JobID: job.ID, Status: "completed"}
	env.store.runs = append(env.store.runs, run)

	results, err := json.Marshal([]map[string]any{{"resume_id": uuid.NewString(), "match_score": 88}})
	require.NoError(t, err)
	env.store.analyses = map[uuid.UUID]database.AnalysesResult{
		run.ID: {ID: uuid.New(), RunID: run.ID, Results: results},
	}

	w := env.do(http.MethodGet, "/api/runs/"+run.ID.String()+"/analyses", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON[database.AnalysesResult](t, w)
	assert.Equal(t, run.ID, got.RunID)
	assert.Contains(t, string(got.Results), "match_score")

	// A run that never produced assessments has no analyses row.
	bare := database.MatchRun{ID: uuid.New(), JobID: job.ID, Status: "completed"}
	env.store.runs = append(env.store.runs, bare)
	w = env.do(http.MethodGet, "/api/runs/"+bare.ID.String()+"/analyses", nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)
}
