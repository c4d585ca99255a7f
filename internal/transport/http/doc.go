// Package http contains the HTTP handlers of the dashboard.
//
// DashboardHandler serves the JSON API under /api/dashboard: cascade
// options, apply, the current view, the CSV export and chart PNGs.
// PageHandler serves the server-rendered HTML dashboard at / and its form
// submit at /apply. HealthHandler serves the health and version endpoints.
//
// Errors are written as RFC 7807 problem details through the shared
// errors.ErrorHandler. The HTML page never shows a problem document; load
// failures become a static message on the page.
package http
