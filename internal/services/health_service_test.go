package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loancalc/internal/shared/testutil"
	"loancalc/pkg/contracts"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService(logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, contracts.Version, status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	hs := NewHealthService(logger)

	healthy := &mockChecker{}
	healthy.On("Check", mock.Anything).Return(nil)
	hs.Register("renderer", healthy)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "ready", status.Status)
	assert.Equal(t, ServiceHealth{Status: "ready"}, status.Services["renderer"])

	hs.Register("metrics", HealthCheckFunc(func(context.Context) error {
		return errors.New("exporter not initialized")
	}))

	status = hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, ServiceHealth{Status: "not_ready", Message: "exporter not initialized"}, status.Services["metrics"])
	assert.True(t, logs.ContainsMessage("readiness check failed"))
	healthy.AssertNumberOfCalls(t, "Check", 2)
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService(nil)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	version := hs.Version()
	assert.Equal(t, contracts.Version, version["version"])
	assert.Equal(t, contracts.APIVersion, version["api_version"])
	assert.Contains(t, version, "git_commit")
}
