package cfg

import "time"

// ServerOptions is the root server configuration.
//
//optionsgen:config
type ServerOptions struct {
	// Port is the TCP port the server binds to.
	//optionsgen:display name="Listen port" description="TCP port the server binds to"
	Port int

	Host string

	//optionsgen:display name="Shutdown grace"
	Grace *time.Duration

	Endpoints []Endpoint

	Limits map[string]int

	Fallback *Endpoint

	internalState string
}

// Endpoint is one upstream endpoint.
//
//optionsgen:subclass
type Endpoint struct {
	URL string

	Weight int
}

// NewEndpoint returns an endpoint with defaults applied.
func NewEndpoint() *Endpoint {
	return &Endpoint{Weight: 1}
}
