package remote

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config holds the peer-service endpoints shared by the HTTP clients.
type Config struct {
	ProductBaseURL string
	CompanyBaseURL string
	PartnerBaseURL string

	// Timeout is the fixed per-call budget. There is no retry.
	Timeout time.Duration

	// BatchConcurrency bounds the fan-out of batch product fetches.
	BatchConcurrency int
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	for _, base := range []string{c.ProductBaseURL, c.CompanyBaseURL, c.PartnerBaseURL} {
		u, err := url.Parse(base)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return errors.New("remote: base URLs must be absolute http(s) URLs")
		}
	}
	if c.Timeout <= 0 {
		return errors.New("remote: timeout must be positive")
	}
	if c.BatchConcurrency <= 0 {
		return errors.New("remote: batch concurrency must be positive")
	}
	return nil
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}
