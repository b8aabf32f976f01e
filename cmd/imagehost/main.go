// Package main starts the development image host, the HTTP collaborator
// the signup flow uploads avatars to.
package main

import (
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/avoronin/MiniFeed/internal/imagehost"
	"github.com/avoronin/MiniFeed/internal/logger"
)

func main() {
	addr := flag.String("a", "localhost:8081", "run on ip:port")
	baseURL := flag.String("b", "http://localhost:8081", "externally visible base URL")
	flag.Parse()

	log := logger.New()
	if err := log.Init("Info"); err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	handler := imagehost.NewHandler(*baseURL)
	router := imagehost.NewRouter(handler, zapLogger)

	zapLogger.Info("starting image host", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, router); err != nil {
		zapLogger.Fatal("image host stopped", zap.Error(err))
	}
}
