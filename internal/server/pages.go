package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
)

//go:embed templates
var templatesFS embed.FS

// Each page combines the shared layout with its own content block.
var pageTemplates = func() map[string]*template.Template {
	pages := map[string]*template.Template{}
	for _, name := range []string{"dashboard", "jobs", "board", "upload"} {
		pages[name] = template.Must(template.ParseFS(templatesFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return pages
}()

// render buffers the page before writing so a template error can still
// answer with a clean 500.
func (s *Server) render(c *gin.Context, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger(c).Error("rendering page", zap.String("page", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderError(c *gin.Context, page string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	s.logger(c).Error("building page data", zap.String("page", page), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal error")
}

func (s *Server) handleDashboardPage(c *gin.Context) {
	sum, recent, err := s.gatherSummary(c.Request.Context())
	if err != nil {
		s.renderError(c, "dashboard", err)
		return
	}
	s.render(c, "dashboard", gin.H{
		"Summary":    sum,
		"Activities": recent,
	})
}

func (s *Server) handleJobsPage(c *gin.Context) {
	jobs, err := s.store.ListJobPostingsWithCounts(c.Request.Context())
	if err != nil {
		s.renderError(c, "jobs", err)
		return
	}
	s.render(c, "jobs", gin.H{"Jobs": jobs})
}

// handleBoardPage shows a job's approved shortlist. ?all=1 adds the
// full ranked table with approval states for review meetings.
func (s *Server) handleBoardPage(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	job, err := s.store.GetJobPosting(ctx, id)
	if err != nil {
		s.renderError(c, "board", err)
		return
	}
	shortlist, err := s.store.ListShortlistByJob(ctx, id)
	if err != nil {
		s.renderError(c, "board", err)
		return
	}

	showAll := c.Query("all") == "1"
	var rankings []database.ListRankingsWithApprovalsRow
	if showAll {
		if rankings, err = s.store.ListRankingsWithApprovals(ctx, id); err != nil {
			s.renderError(c, "board", err)
			return
		}
	}

	s.render(c, "board", gin.H{
		"Job":       job,
		"Shortlist": shortlist,
		"ShowAll":   showAll,
		"Rankings":  rankings,
	})
}

func (s *Server) handleUploadPage(c *gin.Context) {
	s.render(c, "upload", nil)
}
