// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/handler"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIServer serves the Web App JSON API and the Telegram webhook.
type APIServer struct {
	server *http.Server
	port   int
}

type NewAPIServerOptions struct {
	Port int
	API  *handler.API
	// StaticDir holds the Web App front end. Empty disables static serving.
	StaticDir string
}

// NewAPIServer creates the HTTP server. Every request is traced by otelhttp.
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	mux := http.NewServeMux()
	opts.API.Register(mux)

	if opts.StaticDir != "" {
		index := filepath.Join(opts.StaticDir, "index.html")
		mux.HandleFunc("GET /webapp", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
		mux.Handle("GET /", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return &APIServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           otelhttp.NewHandler(handler.CORS(mux), "alienwaste-api"),
			ReadHeaderTimeout: 10 * time.Second,
		},
		port: opts.Port,
	}
}

// Start begins serving requests in the background.
func (s *APIServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("API server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("API server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the API server.
func (s *APIServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("API server stopped")
	return nil
}
