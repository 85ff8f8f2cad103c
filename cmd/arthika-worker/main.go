package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arthika/internal/amqp"
	"arthika/internal/cli"
	"arthika/internal/log"
	"arthika/internal/sheets"
	gsheet "arthika/internal/sheets/google"
	memsheet "arthika/internal/sheets/memory"
	"arthika/internal/store"
	"arthika/internal/worker"
)

func main() {
	logger, cfg := cli.Bootstrap(log.ComponentWorker)

	logger.Info("Starting arthika-worker")

	// The worker always reads the SQLite store: an in-process memory
	// store would not see the server's writes.
	sqliteStore, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteStore.Close()

	var exporter sheets.CollectionExporter
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		exporter = sheetsClient
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		exporter = memsheet.New()
		logger.Info("Google Sheets disabled - exports stay in memory")
	}

	syncWorker := worker.NewSyncWorker(sqliteStore, exporter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot every collection on startup so the spreadsheet reflects
	// writes made while the worker was down.
	if err := syncWorker.ExportAll(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			handler := func(msg *amqp.LedgerSyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, msg)
			}
			if err := amqpClient.ConsumeLedgerSync(ctx, handler); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", "error", err)
				}
				cancel()
			}
		}()
	} else {
		logger.Info("AMQP disabled - relying on periodic export only")
	}

	// Periodic full export covers messages lost while the broker or
	// worker was unavailable.
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := syncWorker.ExportAll(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker shutdown complete")
}
