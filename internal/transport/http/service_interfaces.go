package http

import (
	"context"

	"emrdash/internal/dataprocessing"
	"emrdash/internal/services"
	"emrdash/pkg/contracts"
	api "emrdash/pkg/contracts/api/v1"
	"emrdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers use
type DashboardServiceInterface interface {
	Options(ctx context.Context, sel domain.Selection) (api.OptionsResponse, error)
	Pending(ctx context.Context) domain.Selection
	Apply(ctx context.Context, sel domain.Selection) (*domain.DashboardView, error)
	State(ctx context.Context) domain.DashboardState
	Export(ctx context.Context) ([]byte, error)
	Chart(ctx context.Context, id string) ([]byte, error)
	DatasetStatus() dataprocessing.LoadStatus
}

// HealthServiceInterface defines the health operations
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() contracts.VersionInfo
}

var (
	_ DashboardServiceInterface = (*services.DashboardService)(nil)
	_ HealthServiceInterface    = (*services.HealthService)(nil)
)
