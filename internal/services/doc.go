// Package services implements the business logic between the HTTP handlers
// and the dataset.
//
// DashboardService owns the single dashboard session. It loads the dataset
// through the one-shot loader, computes cascade options for a pending
// selection, applies selections, renders charts and exports CSV. Each
// operation runs in its own span and records the dashboard instruments.
//
// HealthService reports liveness and readiness. Readiness follows the
// dataset load status.
package services
