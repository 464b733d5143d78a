package config

import (
	"fmt"
	"time"
)

// File represents the structure of the .supercrawl configuration file.
// Every field is optional; unset fields keep the value from the layer below.
type File struct {
	// APIURL is the root URL of the backend REST API.
	APIURL string `yaml:"api_url,omitempty"`

	// UserID is the owner of created projects.
	UserID string `yaml:"user_id,omitempty"`

	// Timeout is a Go duration string such as "30s" or "2m".
	Timeout string `yaml:"timeout,omitempty"`

	// Proxy is a SOCKS5 proxy address.
	Proxy string `yaml:"proxy,omitempty"`

	// Concurrency is the stats fan-out limit.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Apply copies the set fields of f into c.
func (f *File) Apply(c *Config) error {
	if f.APIURL != "" {
		c.APIURL = f.APIURL
	}
	if f.UserID != "" {
		c.UserID = f.UserID
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, f.Timeout)
		}
		c.Timeout = d
	}
	if f.Proxy != "" {
		c.Proxy = f.Proxy
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	return nil
}
