// Package app wires configuration, the dataset loader, services, the router
// and the HTTP server together and manages their lifecycle.
//
// # Initialization Flow
//
//	1. Initialize logging and OpenTelemetry
//	2. Resolve the source workbook and create the loader
//	3. Create the WebSocket hub and the services
//	4. Set up middleware, routes and the HTTP server
//
// Run loads the dataset once, then serves until the context is cancelled or
// the process receives SIGINT or SIGTERM.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
package app
