package main

import (
	"fmt"
	"os"

	"grievancehub/internal/auth"
	"grievancehub/internal/config"
	"grievancehub/internal/db"
	httphandler "grievancehub/internal/http"
	"grievancehub/internal/logger"
	"grievancehub/internal/repository"
	"grievancehub/internal/service"
	"grievancehub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	complaintRepo := repository.NewComplaintRepository(database)
	userRepo := repository.NewUserRepository(database)
	reportRepo := repository.NewReportRepository(database)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)

	lifecycleService := service.NewLifecycleService(complaintRepo, log)
	accountService := service.NewAccountService(userRepo, tokenIssuer)
	reportService := service.NewReportService(reportRepo)

	escalationWorker := worker.NewEscalationWorker(
		lifecycleService,
		cfg.Escalation.ThresholdDays,
		cfg.Escalation.CronSpec,
		log,
	)
	if err := escalationWorker.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start escalation worker")
	}
	defer escalationWorker.Stop()

	handler := httphandler.NewHandler(lifecycleService, accountService, reportService, log)
	router := httphandler.NewRouter(handler, tokenParser, database, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting grievancehub service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
