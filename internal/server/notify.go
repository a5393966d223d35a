package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/mailer"
)

type notifyRequest struct {
	Template string `json:"template" binding:"required"`
	// Subject and Body override the template's when set. Placeholders
	// still apply.
	Subject       string   `json:"subject"`
	Body          string   `json:"body"`
	MinScore      *float64 `json:"min_score"`
	MaxRecipients *int     `json:"max_recipients"`
	ApprovedOnly  *bool    `json:"approved_only"`
	DelaySeconds  *int     `json:"delay_seconds"`
	DryRun        bool     `json:"dry_run"`
}

type notifyResult struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Subject  string    `json:"subject"`
	Sent     bool      `json:"sent"`
	Error    string    `json:"error,omitempty"`
}

type notifyReport struct {
	JobID      uuid.UUID      `json:"job_id"`
	Template   string         `json:"template"`
	DryRun     bool           `json:"dry_run"`
	Sent       int            `json:"sent"`
	Failed     int            `json:"failed"`
	Recipients []notifyResult `json:"recipients"`
}

// handleNotify emails a filtered slice of a job's ranked candidates.
// One bad address never aborts the batch, every recipient gets its own
// result row. Dry runs render everything and dial nothing.
func (s *Server) handleNotify(c *gin.Context) {
	log := s.logger(c)
	jobID, ok := s.pathID(c, "id")
	if !ok {
		return
	}

	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "template is required")
		return
	}
	tmpl, ok := mailer.TemplateByKey(req.Template)
	if !ok {
		s.respondError(c, http.StatusBadRequest, "unknown template: "+req.Template)
		return
	}
	if s.mail == nil && !req.DryRun {
		s.respondError(c, http.StatusServiceUnavailable, "smtp is not configured")
		return
	}

	minScore := 70.0
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	maxRecipients := 5
	if req.MaxRecipients != nil {
		maxRecipients = *req.MaxRecipients
	}
	approvedOnly := true
	if req.ApprovedOnly != nil {
		approvedOnly = *req.ApprovedOnly
	}
	delay := 2 * time.Second
	if req.DelaySeconds != nil {
		delay = time.Duration(*req.DelaySeconds) * time.Second
	}

	ctx := c.Request.Context()
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		s.respondStoreError(c, err, "job")
		return
	}

	rows, err := s.store.ListRankingsWithApprovals(ctx, jobID)
	if err != nil {
		s.respondStoreError(c, err, "listing rankings")
		return
	}
	candidates := make([]mailer.Recipient, 0, len(rows))
	for _, r := range rows {
		candidates = append(candidates, mailer.Recipient{
			ResumeID: r.ResumeID,
			Name:     r.CandidateName,
			Email:    r.CandidateEmail,
			Score:    r.OverallScore,
			Approved: r.ApprovalStatus == "approved",
		})
	}
	selected := mailer.SelectRecipients(candidates, minScore, maxRecipients, approvedOnly)

	company := ""
	if s.mail != nil {
		company = s.mail.Company()
	}
	subjectTmpl := tmpl.Subject
	if req.Subject != "" {
		subjectTmpl = req.Subject
	}
	bodyTmpl := tmpl.HTML
	if req.Body != "" {
		bodyTmpl = req.Body
	}

	report := notifyReport{
		JobID:      jobID,
		Template:   tmpl.Key,
		DryRun:     req.DryRun,
		Recipients: make([]notifyResult, 0, len(selected)),
	}
	for i, r := range selected {
		name := r.Name
		if name == "" {
			name = "Candidate"
		}
		subject := mailer.Render(subjectTmpl, name, job.Title, company)
		body := mailer.Render(bodyTmpl, name, job.Title, company)

		result := notifyResult{ResumeID: r.ResumeID, Name: r.Name, Email: r.Email, Subject: subject}
		switch {
		case r.Email == "":
			result.Error = "candidate has no email address"
			report.Failed++
		case req.DryRun:
			// rendered, nothing dialed
		default:
			if err := s.mail.Send(r.Email, subject, body); err != nil {
				log.Warn("sending notification",
					zap.String("resume_id", r.ResumeID.String()),
					zap.Error(err),
				)
				result.Error = err.Error()
				report.Failed++
			} else {
				result.Sent = true
				report.Sent++
			}
			if delay > 0 && i < len(selected)-1 {
				time.Sleep(delay)
			}
		}
		report.Recipients = append(report.Recipients, result)
	}

	if !req.DryRun {
		s.logActivity(ctx, log, "emails_sent", map[string]any{
			"job_id":   jobID,
			"template": tmpl.Key,
			"sent":     report.Sent,
			"failed":   report.Failed,
			"sent_by":  adminName(c),
		})
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleEmailTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, mailer.Templates())
}
