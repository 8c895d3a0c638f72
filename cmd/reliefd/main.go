package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph"
	"github.com/voidshard/reliefgraph/internal/server"
)

// getEnv returns the environment variable or the default if it's unset
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	logger, err := newLogger(getEnv("RELIEFD_ENV", "development"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := reliefgraph.DefaultConfig()
	if fpath := getEnv("RELIEFD_CONFIG", ""); fpath != "" {
		cfg, err = reliefgraph.LoadConfig(fpath)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", fpath), zap.Error(err))
		}
	}

	gen, err := reliefgraph.New(cfg, reliefgraph.WithLogger(logger.Named("generator")))
	if err != nil {
		logger.Fatal("failed to create generator", zap.Error(err))
	}

	origins := []string{}
	if v := getEnv("RELIEFD_CORS_ORIGINS", ""); v != "" {
		origins = strings.Split(v, ",")
	}

	srv := &http.Server{
		Addr:              getEnv("RELIEFD_ADDR", ":8080"),
		Handler:           server.New(gen, logger, server.NewMetrics("reliefgraph"), origins...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down cleanly", zap.Error(err))
	}
}
