package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultAPIURL is where the SuperCrawl backend listens in local development.
	DefaultAPIURL = "http://localhost:5000"

	// DefaultUserID is the placeholder owner of created projects.
	// The backend does not authenticate users yet.
	DefaultUserID = "test-user-id"

	// DefaultTimeout bounds each CLI command. The API client itself has no
	// timeout; the CLI applies this one as a context deadline.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of projects fetched at once by the
	// stats command.
	DefaultConcurrency = 4

	// DefaultDevServerAddr is the listen address of the local stand-in backend.
	DefaultDevServerAddr = "127.0.0.1:5000"

	// AppName is the application name used for XDG directory paths.
	AppName = "supercrawl"
)

// Config holds all configuration options for supercrawl.
// It is populated by Load and CLI flags, and passed down explicitly.
//
// Design decision: We use a single flat struct. The number of options is
// small and every command reads the same handful of them.
type Config struct {
	// APIURL is the root URL of the backend REST API.
	APIURL string

	// UserID is sent as the owner of created projects.
	UserID string

	// Timeout bounds each command that talks to the backend.
	Timeout time.Duration

	// Proxy routes backend traffic through a SOCKS5 proxy when set.
	// Format: "host:port" or "socks5://[user:pass@]host:port".
	Proxy string

	// Headers are extra HTTP headers sent with every request, e.g. an API key
	// for a gateway in front of the backend. Only settable from the config file.
	Headers map[string]string

	// Concurrency is the number of projects fetched at once by stats.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string

	// JSONReport selects JSON output for the issues command.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for the issues command.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the issues report.
	// When empty, the report is written to stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIURL:      DefaultAPIURL,
		UserID:      DefaultUserID,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Headers:     make(map[string]string),
	}
}

// XDGDataDir returns the XDG data directory for supercrawl.
// On Linux: ~/.local/share/supercrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for supercrawl.
// On Linux: ~/.config/supercrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIURL
	}

	if strings.TrimSpace(c.UserID) == "" {
		return ErrEmptyUserID
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Proxy != "" && !validProxy(c.Proxy) {
		return ErrInvalidProxy
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// validProxy accepts "host:port" and socks5:// or socks5h:// URLs.
func validProxy(p string) bool {
	if strings.Contains(p, "://") {
		u, err := url.Parse(p)
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "socks5" || u.Scheme == "socks5h"
	}
	host, port, err := net.SplitHostPort(p)
	return err == nil && host != "" && port != ""
}
