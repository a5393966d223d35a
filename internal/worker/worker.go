// Package worker runs the consumer pool that executes queued match
// runs: download and extract every parsed resume, score it against the
// job, optionally collect a Gemini assessment, and replace the job's
// rankings.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/queue"
)

// Store is the slice of database.Querier a match run touches.
type Store interface {
	GetJobPosting(ctx context.Context, id uuid.UUID) (database.JobPosting, error)
	ListParsedResumes(ctx context.Context) ([]database.Resume, error)
	UpdateMatchRunStatus(ctx context.Context, arg database.UpdateMatchRunStatusParams) error
	DeleteRankingsByJob(ctx context.Context, jobID uuid.UUID) error
	CreateRanking(ctx context.Context, arg database.CreateRankingParams) error
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
	CreateActivityLog(ctx context.Context, arg database.CreateActivityLogParams) error
}

// ObjectStore downloads stored resume files.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// UpdatePublisher emits run status updates.
type UpdatePublisher interface {
	PublishUpdate(update queue.StatusUpdate) error
}

// Assessor runs the AI agent over one prompt. Nil means AI scoring is
// disabled and runs use the deterministic engine alone.
type Assessor interface {
	Assess(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	AMQPUrl string
	Count   int
	// AIWeight is the AI share of the blended overall score.
	AIWeight float64
}

type Worker struct {
	cfg      Config
	log      *zap.Logger
	store    Store
	objects  ObjectStore
	updates  UpdatePublisher
	assessor Assessor
}

func New(cfg Config, log *zap.Logger, store Store, objects ObjectStore, updates UpdatePublisher, assessor Assessor) *Worker {
	if cfg.Count <= 0 {
		cfg.Count = 3
	}
	return &Worker{
		cfg:      cfg,
		log:      log,
		store:    store,
		objects:  objects,
		updates:  updates,
		assessor: assessor,
	}
}

// Run starts the consumer pool and blocks until every consumer exits.
func (w *Worker) Run() error {
	var wg sync.WaitGroup
	errs := make([]error, w.cfg.Count)

	wg.Add(w.cfg.Count)
	for i := 0; i < w.cfg.Count; i++ {
		go func(n int) {
			defer wg.Done()
			errs[n] = w.consume(n + 1)
		}(i)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// consume gives each pool member its own connection and channel, then
// feeds queue messages through the run pipeline until the connection
// closes. Messages are auto-acked: a crashed run is re-triggered by an
// admin, not redelivered.
func (w *Worker) consume(id int) error {
	log := w.log.With(zap.Int("worker", id))

	conn, err := amqp.Dial(w.cfg.AMQPUrl)
	if err != nil {
		return fmt.Errorf("worker %d: dialing rabbitmq: %w", id, err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: opening channel: %w", id, err)
	}
	defer ch.Close()

	if err := queue.DeclareRunQueue(ch); err != nil {
		return fmt.Errorf("worker %d: declaring queue: %w", id, err)
	}

	msgs, err := ch.Consume(
		queue.RunQueue,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("worker %d: consuming: %w", id, err)
	}

	log.Info("worker consuming", zap.String("queue", queue.RunQueue))
	for msg := range msgs {
		w.handleMessage(context.Background(), msg.Body, log)
	}
	log.Info("worker stopped")
	return nil
}

// handleMessage wraps one run with status bookkeeping. A body that
// cannot name a run is dropped; everything else ends in completed or
// failed.
func (w *Worker) handleMessage(ctx context.Context, body []byte, log *zap.Logger) {
	var msg queue.RunMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.RunID == uuid.Nil {
		log.Error("dropping malformed run message", zap.Error(err), zap.ByteString("body", body))
		if msg.RunID != uuid.Nil {
			w.setStatus(ctx, msg.RunID, "failed", "match run failed", "malformed run message", log)
		}
		return
	}

	runLog := log.With(
		zap.String("run_id", msg.RunID.String()),
		zap.String("job_id", msg.JobID.String()),
	)
	runLog.Info("processing match run")

	w.setStatus(ctx, msg.RunID, "processing", "match run started", "", runLog)

	if err := w.executeRun(ctx, msg, runLog); err != nil {
		runLog.Error("match run failed", zap.Error(err))
		w.setStatus(ctx, msg.RunID, "failed", "match run failed", err.Error(), runLog)
		w.logActivity(ctx, "match_run_failed", msg, runLog)
		return
	}

	w.setStatus(ctx, msg.RunID, "completed", "match run completed", "", runLog)
	w.logActivity(ctx, "match_run_completed", msg, runLog)
	runLog.Info("match run completed")
}

// setStatus records the run state and publishes the matching update.
// Both are best effort around the run itself.
func (w *Worker) setStatus(ctx context.Context, runID uuid.UUID, status, message, errMsg string, log *zap.Logger) {
	if err := w.store.UpdateMatchRunStatus(ctx, database.UpdateMatchRunStatusParams{
		ID:     runID,
		Status: status,
		Error:  errMsg,
	}); err != nil {
		log.Warn("updating run status", zap.String("status", status), zap.Error(err))
	}

	if err := w.updates.PublishUpdate(queue.StatusUpdate{
		RunID:     runID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Warn("publishing run update", zap.String("status", status), zap.Error(err))
	}
}

func (w *Worker) logActivity(ctx context.Context, action string, msg queue.RunMessage, log *zap.Logger) {
	details, err := json.Marshal(map[string]string{
		"run_id": msg.RunID.String(),
		"job_id": msg.JobID.String(),
	})
	if err != nil {
		return
	}
	if err := w.store.CreateActivityLog(ctx, database.CreateActivityLogParams{
		ActionType: action,
		Details:    details,
	}); err != nil {
		log.Warn("recording activity", zap.String("action", action), zap.Error(err))
	}
}
