package identity

import "time"

// Config holds identity service client configuration.
type Config struct {
	// BaseURL is the root of the CampusConnect REST API, e.g. "https://api.campus.edu/api".
	BaseURL string `env:"CAMPUSCONNECT_API_URL" envDefault:"http://localhost:5001/api"`

	// Timeout bounds every request to the service. The service itself
	// imposes no deadline, so the client owns it.
	Timeout time.Duration `env:"CAMPUSCONNECT_API_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5001/api",
		Timeout: 10 * time.Second,
	}
}
