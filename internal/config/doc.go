// Package config provides configuration management for the health service.
//
// Configuration is loaded once at startup from environment variables using
// the env package. Every value has a default, so the service starts with an
// empty environment.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
