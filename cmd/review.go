package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/match"
)

// Labels offered by the decision prompt.
const (
	promptApprove = "Approve"
	promptReject  = "Reject"
	promptSkip    = "Skip"
	promptQuit    = "Quit"
)

// errQuit ends the review session without an error.
var errQuit = errors.New("quit requested")

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Approve or reject ranked candidates from the terminal",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().String("job", "", "job posting id (prompts for one when omitted)")
	reviewCmd.Flags().String("admin-name", "admin", "name recorded with each decision")
	viper.BindPFlag("review.job", reviewCmd.Flags().Lookup("job"))
	viper.BindPFlag("review.admin-name", reviewCmd.Flags().Lookup("admin-name"))
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateReview(); err != nil {
		return err
	}

	log, err := getLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	store := database.New(db)

	job, err := pickJob(ctx, store, viper.GetString("review.job"))
	if err != nil {
		return reviewExit(err)
	}

	admin := viper.GetString("review.admin-name")
	return reviewExit(reviewJob(ctx, log, store, job, admin))
}

// reviewExit maps the quit sentinel and ctrl-c to a clean exit.
func reviewExit(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) {
		return nil
	}
	return err
}

// pickJob resolves the --job flag, or offers a selection of all
// postings when the flag is empty.
func pickJob(ctx context.Context, store *database.Queries, flag string) (database.JobPosting, error) {
	if flag != "" {
		id, err := uuid.Parse(flag)
		if err != nil {
			return database.JobPosting{}, fmt.Errorf("invalid job id %q", flag)
		}
		job, err := store.GetJobPosting(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return database.JobPosting{}, fmt.Errorf("job %s not found", id)
		}
		return job, err
	}

	jobs, err := store.ListJobPostings(ctx)
	if err != nil {
		return database.JobPosting{}, fmt.Errorf("listing jobs: %w", err)
	}
	if len(jobs) == 0 {
		return database.JobPosting{}, errors.New("no job postings to review")
	}

	items := make([]string, len(jobs))
	for i, job := range jobs {
		items[i] = fmt.Sprintf("%s (%s)", job.Title, job.Status)
	}

	prompt := promptui.Select{
		Label: "Select a job posting",
		Items: items,
		Size:  10,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return database.JobPosting{}, err
	}
	return jobs[i], nil
}

// reviewJob walks the pending candidates of one job until the queue is
// empty or the reviewer quits. The pending list is re-read after every
// decision so skipped candidates come back around.
func reviewJob(ctx context.Context, log *zap.Logger, store *database.Queries, job database.JobPosting, admin string) error {
	skipped := make(map[uuid.UUID]bool)

	for {
		pending, err := store.ListPendingRankingsByJob(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("listing pending candidates: %w", err)
		}

		remaining := pending[:0]
		for _, r := range pending {
			if !skipped[r.ResumeID] {
				remaining = append(remaining, r)
			}
		}
		if len(remaining) == 0 {
			fmt.Printf("No candidates awaiting review for %s.\n", job.Title)
			return nil
		}

		items := make([]string, 0, len(remaining)+1)
		for _, r := range remaining {
			items = append(items, fmt.Sprintf("#%d %s  %.1f%%", r.RankingPosition, r.CandidateName, r.OverallScore))
		}
		items = append(items, promptQuit)

		pick := promptui.Select{
			Label: fmt.Sprintf("%s: %d awaiting review", job.Title, len(remaining)),
			Items: items,
			Size:  10,
		}
		i, choice, err := pick.Run()
		if err != nil {
			return err
		}
		if choice == promptQuit {
			return errQuit
		}

		candidate := remaining[i]
		printCandidate(candidate)

		decision, err := askDecision()
		if err != nil {
			return err
		}
		switch decision {
		case promptQuit:
			return errQuit
		case promptSkip:
			skipped[candidate.ResumeID] = true
			continue
		}

		status := "approved"
		if decision == promptReject {
			status = "rejected"
		}

		note, err := askNote()
		if err != nil {
			return err
		}

		if err := recordDecision(ctx, log, store, job, candidate, status, admin, note); err != nil {
			return err
		}
		fmt.Printf("%s %s.\n\n", candidate.CandidateName, status)
	}
}

func askDecision() (string, error) {
	prompt := promptui.Select{
		Label: "Decision",
		Items: []string{promptApprove, promptReject, promptSkip, promptQuit},
	}
	_, choice, err := prompt.Run()
	return choice, err
}

func askNote() (string, error) {
	prompt := promptui.Prompt{Label: "Note (optional, enter to skip)"}
	note, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(note), nil
}

func recordDecision(ctx context.Context, log *zap.Logger, store *database.Queries, job database.JobPosting, r database.Ranking, status, admin, note string) error {
	_, err := store.UpsertApproval(ctx, database.UpsertApprovalParams{
		JobID:     job.ID,
		ResumeID:  r.ResumeID,
		Status:    status,
		DecidedBy: admin,
		Note:      note,
	})
	if err != nil {
		return fmt.Errorf("recording decision: %w", err)
	}

	details, _ := json.Marshal(map[string]any{
		"job_id":     job.ID,
		"resume_id":  r.ResumeID,
		"candidate":  r.CandidateName,
		"decided_by": admin,
	})
	if err := store.CreateActivityLog(ctx, database.CreateActivityLogParams{
		ActionType: "candidate_" + status,
		Details:    details,
	}); err != nil {
		log.Warn("recording activity", zap.Error(err))
	}
	return nil
}

// printCandidate renders one candidate card between prompts.
func printCandidate(r database.Ranking) {
	fmt.Printf("\n#%d %s\n", r.RankingPosition, r.CandidateName)
	if r.CandidateEmail != "" || r.CandidatePhone != "" {
		fmt.Printf("   %s\n", strings.TrimSpace(r.CandidateEmail+"  "+r.CandidatePhone))
	}
	fmt.Printf("   overall %.1f  skills %.1f  experience %.1f  education %.1f  keywords %.1f\n",
		r.OverallScore, r.SkillsScore, r.ExperienceScore, r.EducationScore, r.KeywordScore)
	if r.AiScore > 0 {
		fmt.Printf("   ai %.1f\n", r.AiScore)
	}
	fmt.Printf("   experience %.1f years\n", r.TotalExperienceYears)
	if len(r.MatchedSkills) > 0 {
		fmt.Printf("   matched: %s\n", strings.Join(r.MatchedSkills, ", "))
	}
	if len(r.MissingSkills) > 0 {
		fmt.Printf("   missing: %s\n", strings.Join(r.MissingSkills, ", "))
	}

	var ex match.Explanation
	if err := json.Unmarshal(r.Explanation, &ex); err == nil {
		if ex.Summary != "" {
			fmt.Printf("   %s\n", ex.Summary)
		}
		for _, s := range ex.Strengths {
			fmt.Printf("   + %s\n", s)
		}
		for _, w := range ex.Weaknesses {
			fmt.Printf("   - %s\n", w)
		}
		if ex.AISummary != "" {
			fmt.Printf("   ai: %s\n", ex.AISummary)
		}
	}
	fmt.Println()
}
