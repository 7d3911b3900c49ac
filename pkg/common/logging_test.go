package common

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestInterceptorLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	l := InterceptorLogger(logger)
	l.Log(context.Background(), logging.LevelWarn, "slow call", "grpc.method", "Check", "grpc.code", "OK")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("Level = %v, expected warn", entry.Level)
	}
	if entry.Message != "slow call" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Data["grpc.method"] != "Check" || entry.Data["grpc.code"] != "OK" {
		t.Errorf("unexpected fields: %v", entry.Data)
	}
}

func TestNewTracerProvider_WithoutExporter(t *testing.T) {
	tp, err := NewTracerProvider("alienwaste", "test", 1, "")
	if err != nil {
		t.Fatalf("NewTracerProvider() error = %v", err)
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
