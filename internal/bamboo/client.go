// Package bamboo is a small client for the BambooHR time tracking and time
// off endpoints, bound to a single employee.
package bamboo

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/punchclock/internal/constants"
)

// Config holds the credentials and connection settings of a Client.
type Config struct {
	EmployeeID string
	APIKey     string
	BaseURL    string
	// Timeout bounds every request; zero uses constants.DefaultTimeout.
	Timeout time.Duration
	// RequestsPerSecond paces outgoing calls; zero or less disables pacing.
	RequestsPerSecond float64
	// HTTPClient overrides the default client, Timeout is then ignored.
	HTTPClient *http.Client
}

// Client talks to BambooHR on behalf of one employee.
type Client struct {
	employeeID string
	transport  *Transport
}

// New builds a client from cfg. The configuration is copied and never
// changes for the lifetime of the client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	return &Client{
		employeeID: cfg.EmployeeID,
		transport:  NewTransport(baseURL, cfg.APIKey, httpClient, limiter),
	}
}

// EmployeeID returns the employee the client acts for.
func (c *Client) EmployeeID() string {
	return c.employeeID
}

func formatDate(d time.Time) string {
	return d.Format(constants.DateFormat)
}
