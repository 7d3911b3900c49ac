// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"testing"

	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"google.golang.org/grpc/health/grpc_health_v1"
)

type toggleChecker struct {
	err error
}

func (c *toggleChecker) Check(context.Context) error {
	return c.err
}

func servingStatus(t *testing.T, s *GRPCServer) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	return resp.GetStatus()
}

func TestGRPCServer_HealthFollowsStore(t *testing.T) {
	checker := &toggleChecker{}
	s := NewGRPCServer(0, checker)
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	s.updateHealth(context.Background())
	if got := servingStatus(t, s); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, expected SERVING", got)
	}

	checker.err = errors.New("connection refused")
	s.updateHealth(context.Background())
	if got := servingStatus(t, s); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status = %v, expected NOT_SERVING", got)
	}

	checker.err = nil
	s.updateHealth(context.Background())
	if got := servingStatus(t, s); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, expected SERVING after recovery", got)
	}
}

func TestGRPCServer_MemoryStoreIsServing(t *testing.T) {
	s := NewGRPCServer(0, state.MemoryHealthChecker{})
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	s.updateHealth(context.Background())
	if got := servingStatus(t, s); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, expected SERVING", got)
	}
}
