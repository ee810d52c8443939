package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/repcheck/repcheck-api/internal/adapters/nats"
	"github.com/repcheck/repcheck-api/internal/adapters/postgres"
	"github.com/repcheck/repcheck-api/internal/adapters/summarizer"
	"github.com/repcheck/repcheck-api/internal/core/ports"
	"github.com/repcheck/repcheck-api/internal/pkg/config"
	"github.com/repcheck/repcheck-api/internal/pkg/logging"
	"github.com/repcheck/repcheck-api/internal/workflows"
)

func main() {
	cfg, err := config.Load("repcheck-summarizer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, updates will not be announced", "error", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.SummaryBackfillWorkflow)
	w.RegisterActivity(&workflows.SummaryActivities{
		Bills:      postgres.NewBillRepo(db),
		Summarizer: summarizer.New(cfg.Summarizer.Endpoint, cfg.Summarizer.APIKey),
		Publisher:  publisher,
	})

	slog.Info("summarizer worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
