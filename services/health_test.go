package services

import (
	"context"
	"testing"
	"time"

	"hpo-ontology-gateway/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubChecker reports a fixed status
type stubChecker struct {
	name   string
	status HealthStatus
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) ComponentHealth {
	return ComponentHealth{
		Name:      s.name,
		Status:    s.status,
		Timestamp: time.Now(),
	}
}

// panicChecker always panics during its check
type panicChecker struct{}

func (p *panicChecker) Name() string { return "panicky" }

func (p *panicChecker) Check(ctx context.Context) ComponentHealth {
	panic("checker blew up")
}

func newQuietHealthService() *DefaultHealthService {
	return NewHealthService("test", NewStructuredLogger(LogLevelError, nil))
}

func TestHealthService_AllHealthy(t *testing.T) {
	service := newQuietHealthService()
	service.RegisterChecker(&stubChecker{name: "alpha", status: HealthStatusHealthy})
	service.RegisterChecker(&stubChecker{name: "beta", status: HealthStatusHealthy})

	health := service.CheckHealth(context.Background())

	assert.Equal(t, HealthStatusHealthy, health.Status)
	assert.Equal(t, "test", health.Version)
	require.Len(t, health.Components, 2)
	assert.Equal(t, HealthStatusHealthy, health.Components["alpha"].Status)
}

func TestHealthService_OneUnhealthyComponentDegradesSystem(t *testing.T) {
	service := newQuietHealthService()
	service.RegisterChecker(&stubChecker{name: "alpha", status: HealthStatusHealthy})
	service.RegisterChecker(&stubChecker{name: "beta", status: HealthStatusUnhealthy})

	health := service.CheckHealth(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Equal(t, HealthStatusHealthy, health.Components["alpha"].Status)
	assert.Equal(t, HealthStatusUnhealthy, health.Components["beta"].Status)
}

func TestHealthService_PanickingCheckerIsContained(t *testing.T) {
	service := newQuietHealthService()
	service.RegisterChecker(&panicChecker{})

	health := service.CheckHealth(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Contains(t, health.Components["panicky"].Message, "panicked")
}

func TestOntologySourceChecker_HealthySource(t *testing.T) {
	client := new(MockOntologyClient)
	client.On("HealthCheck", mock.Anything).Return(nil)

	checker := NewOntologySourceChecker("ontology_source", client)
	health := checker.Check(context.Background())

	assert.Equal(t, "ontology_source", health.Name)
	assert.Equal(t, HealthStatusHealthy, health.Status)
	assert.Empty(t, health.Message)
}

func TestOntologySourceChecker_UnreachableSource(t *testing.T) {
	client := new(MockOntologyClient)
	client.On("HealthCheck", mock.Anything).
		Return(errors.NewTransportError(errors.ErrCodeOntologyAPIFailed, "source unreachable", nil))

	checker := NewOntologySourceChecker("ontology_source", client)
	health := checker.Check(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Contains(t, health.Message, "source unreachable")
}
