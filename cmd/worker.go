package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/ai"
	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/objstore"
	"github.com/resumesift/resumesift/internal/queue"
	"github.com/resumesift/resumesift/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the match run consumer pool",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateWorker(); err != nil {
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

	objects, err := objstore.New(cmd.Context(), objstore.Config{
		AccountID:     cfg.Storage.AccountID,
		Bucket:        cfg.Storage.Bucket,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("building object store client: %w", err)
	}

	broker, err := queue.Dial(cfg.AMQP.URL)
	if err != nil {
		return fmt.Errorf("connecting to rabbitmq: %w", err)
	}
	defer broker.Close()

	var assessor worker.Assessor
	if cfg.AI.Enabled {
		analyzer, err := ai.NewAnalyzer(cmd.Context(), ai.Config{
			Model:        cfg.AI.Model,
			APIKey:       cfg.AI.APIKey,
			MaxLogLength: cfg.AI.MaxLogLength,
		}, log)
		if err != nil {
			return fmt.Errorf("building analyzer: %w", err)
		}
		assessor = analyzer
	} else {
		log.Info("ai scoring disabled, runs use the deterministic engine only")
	}

	w := worker.New(worker.Config{
		AMQPUrl:  cfg.AMQP.URL,
		Count:    cfg.Worker.Count,
		AIWeight: cfg.AI.Weight,
	}, log, database.New(db), objects, broker, assessor)

	log.Info("starting consumer pool", zap.Int("workers", cfg.Worker.Count))
	return w.Run()
}
