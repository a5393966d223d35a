package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/mailer"
)

// seedNotifyJob wires a job with one candidate per filtering rule:
// sendable, below score, unapproved, and approved but address-less.
func seedNotifyJob(env *testEnv) database.JobPosting {
	job := seedJob(env.store, "open")
	env.store.rankingsWithApprovals = map[uuid.UUID][]database.ListRankingsWithApprovalsRow{
		job.ID: {
			{ResumeID: uuid.New(), CandidateName: "Ada", CandidateEmail: "ada@example.com",
				OverallScore: 90, RankingPosition: 1, ApprovalStatus: "approved"},
			{ResumeID: uuid.New(), CandidateName: "Dana", CandidateEmail: "",
				OverallScore: 88, RankingPosition: 2, ApprovalStatus: "approved"},
			{ResumeID: uuid.New(), CandidateName: "Carol", CandidateEmail: "carol@example.com",
				OverallScore: 95, RankingPosition: 3, ApprovalStatus: "pending"},
			{ResumeID: uuid.New(), CandidateName: "Bob", CandidateEmail: "bob@example.com",
				OverallScore: 50, RankingPosition: 4, ApprovalStatus: "approved"},
		},
	}
	return job
}

func TestNotifySendsToApprovedHighScorers(t *testing.T) {
	env := newTestEnv()
	job := seedNotifyJob(env)

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template":      mailer.TemplateInterviewInvitation,
		"delay_seconds": 0,
	}, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decodeJSON[notifyReport](t, w)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed, "address-less candidate is a reported failure")
	require.Len(t, report.Recipients, 2, "low scores and unapproved candidates are filtered out")

	assert.Equal(t, "Ada", report.Recipients[0].Name)
	assert.True(t, report.Recipients[0].Sent)
	assert.Equal(t, "Dana", report.Recipients[1].Name)
	assert.False(t, report.Recipients[1].Sent)
	assert.Contains(t, report.Recipients[1].Error, "no email")

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "ada@example.com", env.mail.sent[0].to)
	assert.Equal(t, "Interview Invitation - Backend Engineer", env.mail.sent[0].subject)
	assert.Contains(t, env.mail.sent[0].body, "Ada")
	assert.Contains(t, env.mail.sent[0].body, "Acme Corp")

	assert.Equal(t, []string{"emails_sent"}, env.store.activityTypes())
}

func TestNotifyDryRunRendersWithoutSending(t *testing.T) {
	env := newTestEnv()
	job := seedNotifyJob(env)

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template": mailer.TemplateInterviewInvitation,
		"dry_run":  true,
	}, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeJSON[notifyReport](t, w)
	assert.True(t, report.DryRun)
	assert.Zero(t, report.Sent)
	require.Len(t, report.Recipients, 2)
	assert.Equal(t, "Interview Invitation - Backend Engineer", report.Recipients[0].Subject)

	assert.Empty(t, env.mail.sent)
	assert.Empty(t, env.store.activityTypes(), "dry runs leave no activity trail")
}

func TestNotifyFilterOverrides(t *testing.T) {
	env := newTestEnv()
	job := seedNotifyJob(env)

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template":       mailer.TemplateRejectionPolite,
		"min_score":      0,
		"approved_only":  false,
		"max_recipients": 1,
		"delay_seconds":  0,
	}, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeJSON[notifyReport](t, w)
	require.Len(t, report.Recipients, 1, "cap keeps the best-ranked candidate")
	assert.Equal(t, "Ada", report.Recipients[0].Name)
}

func TestNotifyCustomSubjectAndBody(t *testing.T) {
	env := newTestEnv()
	job := seedNotifyJob(env)

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template":      mailer.TemplateCustom,
		"subject":       "About the {position} opening",
		"body":          "<p>Hello {name}, greetings from {company}.</p>",
		"delay_seconds": 0,
	}, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "About the Backend Engineer opening", env.mail.sent[0].subject)
	assert.Equal(t, "<p>Hello Ada, greetings from Acme Corp.</p>", env.mail.sent[0].body)
}

func TestNotifyContinuesPastSendFailure(t *testing.T) {
	env := newTestEnv()
	job := seedJob(env.store, "open")
	env.store.rankingsWithApprovals = map[uuid.UUID][]database.ListRankingsWithApprovalsRow{
		job.ID: {
			{ResumeID: uuid.New(), CandidateName: "Ada", CandidateEmail: "ada@example.com",
				OverallScore: 90, RankingPosition: 1, ApprovalStatus: "approved"},
			{ResumeID: uuid.New(), CandidateName: "Bob", CandidateEmail: "bob@example.com",
				OverallScore: 85, RankingPosition: 2, ApprovalStatus: "approved"},
		},
	}
	env.mail.failFor = map[string]error{"ada@example.com": errors.New("mailbox unavailable")}

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template":      mailer.TemplateInterviewInvitation,
		"delay_seconds": 0,
	}, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeJSON[notifyReport](t, w)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Recipients[0].Error, "mailbox unavailable")
	assert.True(t, report.Recipients[1].Sent)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "bob@example.com", env.mail.sent[0].to)
}

func TestNotifyUnknownTemplate(t *testing.T) {
	env := newTestEnv()
	job := seedNotifyJob(env)

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template": "season_greetings",
	}, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.mail.sent)
}

func TestNotifyWithoutSMTP(t *testing.T) {
	store := &stubStore{}
	srv := New(Config{Addr: ":0", AdminToken: testAdminToken, UploadWorkers: 1},
		zap.NewNop(), store, &stubObjects{}, &stubRuns{}, nil)
	env := &testEnv{store: store, srv: srv}
	job := seedJob(store, "open")

	w := env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template": mailer.TemplateInterviewInvitation,
	}, adminHeaders())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Dry runs render fine without a mailer.
	w = env.doJSON(t, http.MethodPost, "/api/jobs/"+job.ID.String()+"/notify", map[string]any{
		"template": mailer.TemplateInterviewInvitation,
		"dry_run":  true,
	}, adminHeaders())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmailTemplatesListing(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/api/email-templates", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	templates := decodeJSON[[]map[string]string](t, w)
	require.Len(t, templates, 4)
	keys := make([]string, 0, len(templates))
	for _, tm := range templates {
		keys = append(keys, tm["key"])
	}
	assert.Equal(t, []string{
		mailer.TemplateInterviewInvitation,
		mailer.TemplateRejectionPolite,
		mailer.TemplateRequestMoreInfo,
		mailer.TemplateCustom,
	}, keys)
}
