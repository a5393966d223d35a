package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/database"
	"github.com/resumesift/resumesift/internal/mailer"
	"github.com/resumesift/resumesift/internal/objstore"
	"github.com/resumesift/resumesift/internal/queue"
	"github.com/resumesift/resumesift/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the hiring board pages",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
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

	var mail server.MailSender
	if cfg.SMTP.Host != "" && cfg.SMTP.SenderEmail != "" {
		mail = mailer.New(mailer.Config{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			SenderName:  cfg.SMTP.SenderName,
			SenderEmail: cfg.SMTP.SenderEmail,
			Company:     cfg.SMTP.Company,
		}, log)
	} else {
		log.Warn("smtp not configured, notification endpoint disabled")
	}

	srv := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		AdminToken:    cfg.Server.AdminToken,
		UploadWorkers: cfg.Worker.UploadWorkers,
	}, log, database.New(db), objects, broker, mail)

	log.Info("starting http server", zap.String("addr", cfg.Server.Addr))
	return srv.Run()
}
