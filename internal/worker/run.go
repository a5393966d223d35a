package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/ai"
	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/extract"
	"github.com/resumesift/resumesift/internal/jobspec"
	"github.com/resumesift/resumesift/internal/match"
	"github.com/resumesift/resumesift/internal/parser"
	"github.com/resumesift/resumesift/internal/queue"
)

// scored is one resume that made it through the pipeline.
type scored struct {
	resume  database.Resume
	scores  match.Scores
	overall float64
	aiScore float64
}

// executeRun scores every parsed resume against the run's job and
// replaces the job's rankings. A failing resume becomes an error entry
// in the run's assessment record and drops out of the rankings; only
// job- and storage-level failures fail the run.
func (w *Worker) executeRun(ctx context.Context, msg queue.RunMessage, log *zap.Logger) error {
	job, err := w.store.GetJobPosting(ctx, msg.JobID)
	if err != nil {
		return fmt.Errorf("loading job: %w", err)
	}

	resumes, err := w.store.ListParsedResumes(ctx)
	if err != nil {
		return fmt.Errorf("listing parsed resumes: %w", err)
	}

	req := requirementsFromJob(job)

	var ranked []scored
	var assessments []ai.Assessment

	for _, resume := range resumes {
		entryLog := log.With(zap.String("resume_id", resume.ID.String()))

		var profile parser.Profile
		if err := json.Unmarshal(resume.Profile, &profile); err != nil {
			entryLog.Warn("skipping resume, unreadable profile", zap.Error(err))
			assessments = append(assessments, errorAssessment(resume, "profile decode error: "+err.Error()))
			continue
		}

		data, err := retry(3, func() ([]byte, error) {
			return w.objects.Download(ctx, resume.ObjectKey)
		})
		if err != nil {
			entryLog.Warn("skipping resume, download failed", zap.Error(err))
			assessments = append(assessments, errorAssessment(resume, fmt.Sprintf("file download error: %v", err)))
			continue
		}

		text, err := extract.Text(resume.Mime, data)
		if err != nil {
			entryLog.Warn("skipping resume, text extraction failed", zap.Error(err))
			assessments = append(assessments, errorAssessment(resume, fmt.Sprintf("text extraction error: %v", err)))
			continue
		}

		scores := match.Score(profile, req)
		entry := scored{resume: resume, scores: scores, overall: scores.Overall}

		if w.assessor != nil {
			assessment := w.assess(ctx, job, text, resume, entryLog)
			assessments = append(assessments, assessment)
			if !assessment.IsErrorResult {
				entry.aiScore = float64(assessment.MatchScore)
				entry.overall = match.Blend(scores.Overall, entry.aiScore, true, w.cfg.AIWeight)
				entry.scores.Explanation.AISummary = assessment.Summary
				entry.scores.Explanation.AIRecommendation = assessment.Recommendation
			}
		}

		ranked = append(ranked, entry)
	}

	sortRanked(ranked)

	if err := w.store.DeleteRankingsByJob(ctx, msg.JobID); err != nil {
		return fmt.Errorf("clearing rankings: %w", err)
	}
	for i, entry := range ranked {
		explanation, err := json.Marshal(entry.scores.Explanation)
		if err != nil {
			return fmt.Errorf("marshalling explanation: %w", err)
		}
		if err := w.store.CreateRanking(ctx, database.CreateRankingParams{
			JobID:                msg.JobID,
			ResumeID:             entry.resume.ID,
			RunID:                msg.RunID,
			CandidateName:        entry.resume.CandidateName,
			CandidateEmail:       entry.resume.CandidateEmail,
			CandidatePhone:       entry.resume.CandidatePhone,
			OverallScore:         match.Round2(entry.overall),
			SkillsScore:          match.Round2(entry.scores.Skills),
			ExperienceScore:      match.Round2(entry.scores.Experience),
			EducationScore:       match.Round2(entry.scores.Education),
			KeywordScore:         match.Round2(entry.scores.Keywords),
			SemanticScore:        match.Round2(entry.scores.Semantic),
			AiScore:              match.Round2(entry.aiScore),
			RankingPosition:      int32(i + 1),
			MatchedSkills:        entry.scores.MatchedSkills,
			MissingSkills:        entry.scores.MissingSkills,
			TotalExperienceYears: entry.resume.TotalExperienceYears,
			Shortlisted:          entry.overall >= match.ShortlistCutoff,
			Explanation:          explanation,
		}); err != nil {
			return fmt.Errorf("inserting ranking: %w", err)
		}
	}

	if len(assessments) > 0 {
		resultsJSON, err := json.Marshal(assessments)
		if err != nil {
			return fmt.Errorf("marshalling analyses results: %w", err)
		}
		if _, err := retry(3, func() (struct{}, error) {
			return struct{}{}, w.store.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
				RunID:   msg.RunID,
				Results: resultsJSON,
			})
		}); err != nil {
			return fmt.Errorf("saving analyses results: %w", err)
		}
	}

	log.Info("rankings replaced",
		zap.Int("ranked", len(ranked)),
		zap.Int("assessments", len(assessments)))
	return nil
}

// assess runs the AI agent for one resume. Failures become error
// results, never run failures.
func (w *Worker) assess(ctx context.Context, job database.JobPosting, resumeText string, resume database.Resume, log *zap.Logger) ai.Assessment {
	prompt := ai.BuildPrompt(job.Title, job.Description, resumeText)

	raw, err := retry(2, func() (string, error) {
		return w.assessor.Assess(ctx, prompt)
	})
	if err != nil {
		log.Warn("agent failed", zap.Error(err))
		return errorAssessment(resume, fmt.Sprintf("agent error: %v", err))
	}

	assessment := ai.ParseAssessment(raw)
	assessment.ResumeID = resume.ID
	if assessment.CandidateEmail == "" {
		assessment.CandidateEmail = resume.CandidateEmail
	}
	return assessment
}

func errorAssessment(resume database.Resume, msg string) ai.Assessment {
	a := ai.ErrorAssessment(msg)
	a.ResumeID = resume.ID
	a.CandidateEmail = resume.CandidateEmail
	return a
}

// sortRanked orders by blended score descending; ties fall back to
// candidate name, then resume ID, so positions are total and stable
// across runs.
func sortRanked(ranked []scored) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].overall != ranked[j].overall {
			return ranked[i].overall > ranked[j].overall
		}
		if ranked[i].resume.CandidateName != ranked[j].resume.CandidateName {
			return ranked[i].resume.CandidateName < ranked[j].resume.CandidateName
		}
		return ranked[i].resume.ID.String() < ranked[j].resume.ID.String()
	})
}

// requirementsFromJob rebuilds the match engine's input from a stored
// job row.
func requirementsFromJob(job database.JobPosting) jobspec.Requirements {
	return jobspec.Requirements{
		Title:              job.Title,
		RawText:            job.Description,
		RequiredSkills:     job.RequiredSkills,
		PreferredSkills:    job.PreferredSkills,
		MinExperienceYears: int(job.MinExperienceYears),
		MaxExperienceYears: int(job.MaxExperienceYears),
		EducationLevel:     job.EducationLevel,
		Keywords:           job.Keywords,
	}
}
