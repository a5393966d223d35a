// Package ai runs the Gemini-backed resume assessment agent and parses
// its JSON verdicts.
package ai

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/resumesift/resumesift/internal/logger"
)

const agentName = "resume-analyzer"

// assessUserID tags the throwaway sessions the worker runs under.
const assessUserID = "match-worker"

type Config struct {
	Model        string
	APIKey       string
	MaxLogLength int
}

// Analyzer drives one llmagent over short-lived in-memory sessions.
// It is safe for concurrent use by the worker pool.
type Analyzer struct {
	runner    *runner.Runner
	sessions  session.Service
	log       *zap.Logger
	maxLogLen int
}

func NewAnalyzer(ctx context.Context, cfg Config, log *zap.Logger) (*Analyzer, error) {
	model, err := gemini.NewModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}

	analyzer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Analyze Resume",
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        analyzer.Name(),
		Agent:          analyzer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = 200
	}

	return &Analyzer{
		runner:    r,
		sessions:  sessions,
		log:       log,
		maxLogLen: cfg.MaxLogLength,
	}, nil
}

// Assess runs the agent once over the prompt and returns its raw final
// output. The session is created per call and deleted afterwards.
func (a *Analyzer) Assess(ctx context.Context, prompt string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   agentName,
		UserID:    assessUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("creating agent session: %w", err)
	}
	defer func() {
		err := a.sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
		if err != nil {
			a.log.Warn("deleting agent session", zap.Error(err))
		}
	}()

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for ev, err := range stream {
		if err != nil {
			return "", err
		}
		if ev != nil && ev.IsFinalResponse() && len(ev.Content.Parts) > 0 {
			output = ev.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("empty agent response")
	}

	a.log.Debug("agent response",
		zap.String("output", logger.TruncateForLog(output, a.maxLogLen)))
	return output, nil
}
