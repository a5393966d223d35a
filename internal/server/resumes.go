package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/extract"
	"github.com/resumesift/resumesift/internal/objstore"
	"github.com/resumesift/resumesift/internal/parser"
)

// maxUploadBytes caps a single resume file at 10 MiB. Bulk archive
// entries above it are skipped rather than rejected.
const maxUploadBytes = 10 << 20

type resumeSummary struct {
	ID                   uuid.UUID `json:"id"`
	OriginalFilename     string    `json:"original_filename"`
	CandidateName        string    `json:"candidate_name"`
	CandidateEmail       string    `json:"candidate_email"`
	CandidatePhone       string    `json:"candidate_phone"`
	UploadStatus         string    `json:"upload_status"`
	TotalExperienceYears float64   `json:"total_experience_years"`
	CreatedAt            time.Time `json:"created_at"`
}

func summarize(r database.Resume) resumeSummary {
	return resumeSummary{
		ID:                   r.ID,
		OriginalFilename:     r.OriginalFilename,
		CandidateName:        r.CandidateName,
		CandidateEmail:       r.CandidateEmail,
		CandidatePhone:       r.CandidatePhone,
		UploadStatus:         r.UploadStatus,
		TotalExperienceYears: r.TotalExperienceYears,
		CreatedAt:            r.CreatedAt,
	}
}

func (s *Server) handleUploadResume(c *gin.Context) {
	log := s.logger(c)

	header, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if header.Size > maxUploadBytes {
		s.respondError(c, http.StatusRequestEntityTooLarge, "file exceeds the 10MiB limit")
		return
	}

	mime, ok := extract.MimeFromFilename(header.Filename)
	if !ok {
		s.respondError(c, http.StatusBadRequest, "unsupported file type, expected .pdf or .docx")
		return
	}

	f, err := header.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	resume, err := s.processResume(c.Request.Context(), log, header.Filename, mime, data)
	if err != nil {
		log.Error("processing upload", zap.String("filename", header.Filename), zap.Error(err))
		s.respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// processResume stores the raw file, creates the row, and attempts
// extraction and profile parsing. Extraction failures are not errors:
// the row survives as parse_failed so the file can be reviewed by hand.
func (s *Server) processResume(ctx context.Context, log *zap.Logger, filename, mime string, data []byte) (database.Resume, error) {
	id := uuid.New()
	key := objstore.ResumeKey(id, filename)

	if err := s.objects.Upload(ctx, key, mime, data); err != nil {
		return database.Resume{}, fmt.Errorf("storing file: %w", err)
	}

	_, err := s.store.CreateResume(ctx, database.CreateResumeParams{
		ID:               id,
		OriginalFilename: filename,
		Mime:             mime,
		SizeBytes:        int64(len(data)),
		StorageProvider:  s.objects.Provider(),
		ObjectKey:        key,
		StorageUrl:       s.objects.URL(key),
		UploadStatus:     "uploaded",
	})
	if err != nil {
		return database.Resume{}, fmt.Errorf("creating resume row: %w", err)
	}

	text, extractErr := extract.Text(mime, data)
	if extractErr != nil {
		log.Warn("extraction failed",
			zap.String("resume_id", id.String()),
			zap.String("filename", filename),
			zap.Error(extractErr),
		)
		failed, err := s.store.MarkResumeParseFailed(ctx, database.MarkResumeParseFailedParams{
			ID:         id,
			ParseError: extractErr.Error(),
		})
		if err != nil {
			return database.Resume{}, fmt.Errorf("marking parse failure: %w", err)
		}
		s.logActivity(ctx, log, "resume_uploaded", map[string]any{
			"resume_id": id,
			"filename":  filename,
			"status":    failed.UploadStatus,
		})
		return failed, nil
	}

	profile := parser.Parse(text)
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return database.Resume{}, fmt.Errorf("encoding profile: %w", err)
	}

	parsed, err := s.store.UpdateResumeParsed(ctx, database.UpdateResumeParsedParams{
		ID:                   id,
		CandidateName:        profile.Contact.Name,
		CandidateEmail:       profile.Contact.Email,
		CandidatePhone:       profile.Contact.Phone,
		TotalExperienceYears: profile.TotalExperienceYears,
		Profile:              profileJSON,
	})
	if err != nil {
		return database.Resume{}, fmt.Errorf("saving parsed profile: %w", err)
	}

	s.logActivity(ctx, log, "resume_uploaded", map[string]any{
		"resume_id": id,
		"filename":  filename,
		"status":    parsed.UploadStatus,
	})
	return parsed, nil
}

type bulkFileReport struct {
	Filename string    `json:"filename"`
	ResumeID uuid.UUID `json:"resume_id,omitempty"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
}

type bulkReport struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Files     []bulkFileReport `json:"files"`
}

type bulkEntry struct {
	name string
	mime string
	data []byte
	skip string // non-empty reason when the entry is not processed
}

func (s *Server) handleBulkUpload(c *gin.Context) {
	log := s.logger(c)

	header, err := c.FormFile("archive")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "multipart field 'archive' is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid zip archive")
		return
	}

	entries, err := readArchive(archive)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	processable := 0
	for _, e := range entries {
		if e.skip == "" {
			processable++
		}
	}
	if processable == 0 {
		s.respondError(c, http.StatusBadRequest, "archive contains no .pdf or .docx files")
		return
	}

	report := s.processBulk(c.Request.Context(), log, entries)

	s.logActivity(c.Request.Context(), log, "bulk_upload_completed", map[string]any{
		"archive":   header.Filename,
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})

	c.JSON(http.StatusOK, report)
}

// readArchive flattens the zip into per-file work items, tagging
// directories, unsupported types and oversized entries as skipped.
func readArchive(archive *zip.Reader) ([]bulkEntry, error) {
	var entries []bulkEntry
	for _, f := range archive.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		if strings.HasPrefix(name, ".") {
			continue
		}

		mime, ok := extract.MimeFromFilename(name)
		if !ok {
			entries = append(entries, bulkEntry{name: name, skip: "unsupported file type"})
			continue
		}
		if f.UncompressedSize64 > maxUploadBytes {
			entries = append(entries, bulkEntry{name: name, skip: "file exceeds the 10MiB limit"})
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		entries = append(entries, bulkEntry{name: name, mime: mime, data: data})
	}
	return entries, nil
}

// processBulk fans the archive entries over a bounded worker pool and
// assembles the per-file report in archive order.
func (s *Server) processBulk(ctx context.Context, log *zap.Logger, entries []bulkEntry) bulkReport {
	reports := make([]bulkFileReport, len(entries))

	sem := make(chan struct{}, s.cfg.UploadWorkers)
	var wg sync.WaitGroup
	for i, entry := range entries {
		if entry.skip != "" {
			reports[i] = bulkFileReport{Filename: entry.name, Status: "skipped", Error: entry.skip}
			continue
		}

		wg.Add(1)
		go func(i int, entry bulkEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resume, err := s.processResume(ctx, log, entry.name, entry.mime, entry.data)
			if err != nil {
				log.Error("processing archive entry", zap.String("filename", entry.name), zap.Error(err))
				reports[i] = bulkFileReport{Filename: entry.name, Status: "failed", Error: err.Error()}
				return
			}
			r := bulkFileReport{Filename: entry.name, ResumeID: resume.ID, Status: resume.UploadStatus}
			if resume.UploadStatus == "parse_failed" {
				r.Error = resume.ParseError
			}
			reports[i] = r
		}(i, entry)
	}
	wg.Wait()

	report := bulkReport{Total: len(reports), Files: reports}
	for _, r := range reports {
		if r.Status == "parsed" {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

func (s *Server) handleListResumes(c *gin.Context) {
	resumes, err := s.store.ListResumes(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err, "listing resumes")
		return
	}
	summaries := make([]resumeSummary, 0, len(resumes))
	for _, r := range resumes {
		summaries = append(summaries, summarize(r))
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleGetResume(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	resume, err := s.store.GetResume(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "resume")
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(c *gin.Context) {
	log := s.logger(c)
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(c.Request.Context(), id)
	if err != nil {
		s.respondStoreError(c, err, "resume")
		return
	}
	if err := s.store.DeleteResume(c.Request.Context(), id); err != nil {
		s.respondStoreError(c, err, "deleting resume")
		return
	}
	// Row is gone; a dangling object is tolerable.
	if err := s.objects.Delete(c.Request.Context(), resume.ObjectKey); err != nil {
		log.Warn("deleting stored file", zap.String("key", resume.ObjectKey), zap.Error(err))
	}

	c.Status(http.StatusNoContent)
}
