package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	adapthttp "healthhub/internal/adapter/http"
	"healthhub/internal/app"
	"healthhub/internal/config"
	"healthhub/internal/logger"
	"healthhub/internal/task"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, SentryDSN: cfg.SentryDSN})
	return cfg, nil
}

func targets(cfg *config.Config) app.Targets {
	d := cfg.Dashboard
	return app.Targets{
		StartWeight:  d.StartWeight,
		TargetWeight: d.TargetWeight,
		Calories:     d.Calories,
		SleepHours:   d.SleepHours,
		WaterGlasses: d.WaterGlasses,
		Steps:        d.Steps,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer sentry.Flush(2 * time.Second)
	slog.Info("configuration loaded", "env", cfg.Env, "version", Version)

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	runner := task.NewRunner(cfg.Tasks.MaxConcurrent, task.WithOnFinish(app.TaskFinished(b.events)))
	store := app.NewHealthStore(b.health, b.events)
	svc := adapthttp.Services{
		Identity:      app.NewIdentityService(b.users, cfg.Auth.DefaultUser),
		Store:         store,
		Navigator:     app.NewNavigator(store),
		Community:     app.NewCommunityService(),
		Sync:          app.NewSyncService(runner, cfg.Tasks.SyncDelay.Std()),
		Notifications: app.NewNotificationService(b.events),
		Exports:       app.NewExportService(b.health, b.artifacts, runner, cfg.Tasks.ExportDelay.Std(), cfg.S3.Prefix),
		Scans:         app.NewScanService(runner, cfg.Tasks.ScanDelay.Std()),
		Tasks:         runner,
	}
	h := adapthttp.New(svc, adapthttp.Options{
		AppName: cfg.AppName,
		Targets: targets(cfg),
		Notifications: adapthttp.NotificationOptions{
			PushPresentation: cfg.Notify.PushPresentation,
			SmallIcon:        cfg.Notify.SmallIcon,
			IconColor:        cfg.Notify.IconColor,
			Sound:            cfg.Notify.Sound,
		},
		TrustProxyHeader: cfg.Auth.TrustProxyHeader,
	}).Handler()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		slog.Info("server starting", "address", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := runner.Shutdown(shutdownCtx); err != nil {
		slog.Error("task runner shutdown error", "error", err)
	}
	slog.Info("shutdown complete")
	return nil
}
