package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/config"
	"github.com/coursedesk/coursedesk/internal/app"
	"github.com/coursedesk/coursedesk/internal/catalogapi"
	"github.com/coursedesk/coursedesk/internal/webserver"
)

var (
	configFile = flag.String("c", "coursedesk.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop owned collections and reinstall seed data")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*configFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		return
	}

	webserver.Init(cfg, application)
	catalogapi.InitRouter()

	errch := make(chan error, 1)
	go func() {
		errch <- webserver.Listen()
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errch:
		if err != nil {
			zap.S().Errorf("web server error %s", err.Error())
		}
	case sig := <-sigch:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("web server shutdown error %s", err.Error())
		}
	}
}
