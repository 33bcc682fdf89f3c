package configs

import (
	"fmt"
	"time"
)

// HTTP defines configuration for the HTTP server serving the placement
// API. The Port specifies which port the server will bind to.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// ShutdownTimeout bounds how long graceful shutdown waits for
	// in-flight requests before the server is forcibly closed.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Addr returns the listen address in the ":port" form expected by
// http.Server.
func (c HTTP) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
