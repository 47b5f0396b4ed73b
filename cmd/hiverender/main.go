package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hiveblocks/hiverender/internal/server"
)

func main() {
	app, renderQueue := server.Setup()

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/preview", app.PreviewHandler).Methods("POST")

	router.HandleFunc("/drafts", app.CreateDraftHandler).Methods("POST")
	router.HandleFunc("/drafts/rerender", app.RerenderAllHandler).Methods("POST")
	router.HandleFunc("/drafts/{id}", app.GetDraftHandler).Methods("GET")
	router.HandleFunc("/drafts/{id}", app.SaveDraftHandler).Methods("PUT")
	router.HandleFunc("/drafts/{id}", app.DeleteDraftHandler).Methods("DELETE")
	router.HandleFunc("/drafts/{id}/history", app.DraftHistoryHandler).Methods("GET")
	router.HandleFunc("/drafts/{id}/diff", app.DraftDiffHandler).Methods("GET")

	handler := handlers.RecoveryHandler()(server.SlogLoggingMiddleware(router))

	srv := &http.Server{
		Addr:    app.Config.Host,
		Handler: handler,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server starting", "url", "http://"+app.Config.Host)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server first (stop accepting new requests)
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Shutdown render queue (wait for in-flight jobs)
	slog.Info("shutting down render queue...")
	if err := renderQueue.Shutdown(ctx); err != nil {
		slog.Error("render queue shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
