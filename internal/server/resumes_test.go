package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/extract"
)

const adaResumeText = `Ada Lovelace
Email: ada@example.com
Phone: +1 555 0100

Summary
Backend engineer building Go services.

Experience
Senior Software Engineer at Analytical Engines (2019 - 2024)

Skills
Go, PostgreSQL, Docker

Education
B.Tech in Computer Science, 2015
`

func TestUploadResumeKeepsUnreadableFile(t *testing.T) {
	env := newTestEnv()

	// Garbage bytes behind a .pdf name: stored, row kept, parse fails.
	body, contentType := multipartFile(t, "file", "ada.pdf", []byte("not a real pdf"))
	w := env.do(http.MethodPost, "/api/resumes", body, map[string]string{"Content-Type": contentType})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resume := decodeJSON[database.Resume](t, w)
	assert.Equal(t, "ada.pdf", resume.OriginalFilename)
	assert.Equal(t, "parse_failed", resume.UploadStatus)
	assert.NotEmpty(t, resume.ParseError)

	require.Len(t, env.store.created, 1)
	created := env.store.created[0]
	assert.Equal(t, extract.MimePDF, created.Mime)
	assert.Equal(t, int64(len("not a real pdf")), created.SizeBytes)
	assert.True(t, strings.HasPrefix(created.ObjectKey, "resumes/"), created.ObjectKey)
	assert.Contains(t, env.objects.files, created.ObjectKey)

	require.Len(t, env.store.parseFailed, 1)
	assert.Empty(t, env.store.parsed)
	assert.Equal(t, []string{"resume_uploaded"}, env.store.activityTypes())
}

func TestUploadResumeRejectsUnsupportedType(t *testing.T) {
	env := newTestEnv()

	body, contentType := multipartFile(t, "file", "notes.txt", []byte("plain text"))
	w := env.do(http.MethodPost, "/api/resumes", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.store.created)
	assert.Empty(t, env.objects.files)
}

func TestUploadResumeRejectsMissingFile(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/api/resumes", strings.NewReader("{}"),
		map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadResumeRejectsOversizedFile(t *testing.T) {
	env := newTestEnv()

	big := bytes.Repeat([]byte("a"), maxUploadBytes+1)
	body, contentType := multipartFile(t, "file", "big.pdf", big)
	w := env.do(http.MethodPost, "/api/resumes", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, env.store.created)
}

func TestUploadResumeStorageFailure(t *testing.T) {
	env := newTestEnv()
	env.objects.uploadErr = errors.New("bucket unavailable")

	body, contentType := multipartFile(t, "file", "ada.pdf", []byte("data"))
	w := env.do(http.MethodPost, "/api/resumes", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.store.created, "no row without a stored file")
}

func TestProcessResumeParsesProfile(t *testing.T) {
	env := newTestEnv()

	resume, err := env.srv.processResume(context.Background(), zap.NewNop(),
		"ada.txt", extract.MimeText, []byte(adaResumeText))
	require.NoError(t, err)

	assert.Equal(t, "parsed", resume.UploadStatus)
	assert.Equal(t, "Ada Lovelace", resume.CandidateName)
	assert.Equal(t, "ada@example.com", resume.CandidateEmail)
	assert.NotEmpty(t, resume.Profile)

	require.Len(t, env.store.parsed, 1)
	assert.Greater(t, env.store.parsed[0].TotalExperienceYears, 0.0)
	assert.Equal(t, []string{"resume_uploaded"}, env.store.activityTypes())
}

func TestBulkUploadReportsPerFile(t *testing.T) {
	env := newTestEnv()

	archive := zipArchive(t, []zipEntry{
		{name: "batch/", data: nil},
		{name: "batch/ada.pdf", data: []byte("not a pdf")},
		{name: "batch/readme.txt", data: []byte("skip me")},
		{name: "batch/bob.docx", data: []byte("not a docx")},
	})
	body, contentType := multipartFile(t, "archive", "batch.zip", archive)
	w := env.do(http.MethodPost, "/api/resumes/bulk", body, map[string]string{"Content-Type": contentType})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decodeJSON[bulkReport](t, w)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 0, report.Succeeded)
	assert.Equal(t, 3, report.Failed)
	require.Len(t, report.Files, 3)

	assert.Equal(t, "ada.pdf", report.Files[0].Filename)
	assert.Equal(t, "parse_failed", report.Files[0].Status)
	assert.NotEmpty(t, report.Files[0].Error)

	assert.Equal(t, "readme.txt", report.Files[1].Filename)
	assert.Equal(t, "skipped", report.Files[1].Status)
	assert.Equal(t, "unsupported file type", report.Files[1].Error)

	assert.Equal(t, "bob.docx", report.Files[2].Filename)
	assert.Equal(t, "parse_failed", report.Files[2].Status)

	// Two rows landed, one activity per upload plus the batch summary.
	assert.Len(t, env.store.created, 2)
	types := env.store.activityTypes()
	assert.Len(t, types, 3)
	assert.Equal(t, "bulk_upload_completed", types[len(types)-1])
}

func TestBulkUploadRejectsArchiveWithoutResumes(t *testing.T) {
	env := newTestEnv()

	archive := zipArchive(t, []zipEntry{{name: "readme.txt", data: []byte("hello")}})
	body, contentType := multipartFile(t, "archive", "batch.zip", archive)
	w := env.do(http.MethodPost, "/api/resumes/bulk", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.store.created)
}

func TestBulkUploadRejectsInvalidArchive(t *testing.T) {
	env := newTestEnv()

	body, contentType := multipartFile(t, "archive", "batch.zip", []byte("definitely not a zip"))
	w := env.do(http.MethodPost, "/api/resumes/bulk", body, map[string]string{"Content-Type": contentType})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body2 := decodeJSON[map[string]string](t, w)
	assert.Contains(t, body2["error"], "zip")
}

func TestListResumesReturnsSummaries(t *testing.T) {
	env := newTestEnv()
	seedParsedResume(env.store, "Ada", "ada@example.com")

	w := env.do(http.MethodGet, "/api/resumes", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summaries := decodeJSON[[]map[string]any](t, w)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Ada", summaries[0]["candidate_name"])
	assert.Equal(t, "parsed", summaries[0]["upload_status"])
	_, leaked := summaries[0]["profile"]
	assert.False(t, leaked, "listing should not carry full profiles")
}

func TestGetResume(t *testing.T) {
	env := newTestEnv()
	r := seedParsedResume(env.store, "Ada", "ada@example.com")

	w := env.do(http.MethodGet, "/api/resumes/"+r.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON[database.Resume](t, w)
	assert.Equal(t, r.ID, got.ID)

	w = env.do(http.MethodGet, "/api/resumes/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteResumeRemovesRowAndFile(t *testing.T) {
	env := newTestEnv()
	r := seedParsedResume(env.store, "Ada", "ada@example.com")

	w := env.do(http.MethodDelete, "/api/resumes/"+r.ID.String(), nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, []string{r.ObjectKey}, env.objects.deleted)
	assert.Empty(t, env.store.resumes)

	w = env.do(http.MethodDelete, "/api/resumes/"+r.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
