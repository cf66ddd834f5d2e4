package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"farmtech/internal/cache"
	"farmtech/internal/config"
	"farmtech/internal/http/handlers"
	applog "farmtech/internal/log"
	"farmtech/internal/repos"
	"farmtech/internal/storage"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Warnf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	var sc cache.SearchCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			applog.Warnf("[cache] disabled: %v", err)
		} else {
			defer rc.Close()
			sc = rc
			applog.Infof("[cache] redis at %s", cfg.RedisAddr)
		}
	}

	up, err := storage.New(cfg)
	if err != nil {
		return err
	}
	if cfg.S3.Bucket != "" {
		applog.Infof("[upload] s3 bucket %s", cfg.S3.Bucket)
	} else {
		abs, _ := filepath.Abs(cfg.MediaDir)
		applog.Infof("[upload] local dir %s served at /media", abs)
	}

	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, sc, up))

	go func() {
		<-ctx.Done()
		applog.Infof("[server] shutting down")
		_ = app.Shutdown()
	}()

	applog.Infof("[server] listening on :%s", cfg.Port)
	return app.Listen(":" + cfg.Port)
}
