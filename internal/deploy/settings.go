package deploy

import (
	"strings"
	"time"

	"github.com/Laisky/miridev-mcp/library/config"
)

const (
	// DefaultAPIBaseURL is the miri.dev API root; uploads go to <base>/deploy.
	DefaultAPIBaseURL = "https://www.miri.dev/api"
	// DefaultMaxFileBytes caps a single file at 25 MiB.
	DefaultMaxFileBytes int64 = 25 * 1024 * 1024
	DefaultMaxRedirects       = 1
	DefaultTimeout            = 120 * time.Second
)

// DefaultExtensions lists the deployable file extensions.
var DefaultExtensions = []string{
	"html", "css", "js", "json", "txt", "md",
	"png", "jpg", "jpeg", "gif", "svg", "ico",
	"woff", "woff2", "ttf", "eot",
}

// DefaultExcludes lists doublestar patterns that never get deployed.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.*",
	"**/.*/**",
	"**/.DS_Store",
	"**/Thumbs.db",
	"**/desktop.ini",
}

// Settings configures the deploy pipeline.
type Settings struct {
	APIBaseURL   string
	MaxRedirects int
	Timeout      time.Duration
	MaxFileBytes int64
	Minify       bool
	Extensions   []string
	Excludes     []string
}

// DeployURL returns the upload endpoint.
func (s Settings) DeployURL() string {
	return strings.TrimRight(s.APIBaseURL, "/") + "/deploy"
}

// LoadSettings reads deploy settings and applies defaults.
func LoadSettings(get config.Getter) Settings {
	settings := Settings{
		APIBaseURL:   config.String(get, "settings.deploy.api_base_url", DefaultAPIBaseURL),
		MaxRedirects: config.Int(get, "settings.deploy.max_redirects", DefaultMaxRedirects),
		Timeout:      time.Duration(config.Int(get, "settings.deploy.timeout_seconds", int(DefaultTimeout/time.Second))) * time.Second,
		MaxFileBytes: config.Int64(get, "settings.deploy.max_file_bytes", DefaultMaxFileBytes),
		Minify:       config.Bool(get, "settings.deploy.minify", false),
		Extensions:   config.StringSlice(get, "settings.deploy.extensions", DefaultExtensions),
		Excludes:     config.StringSlice(get, "settings.deploy.excludes", DefaultExcludes),
	}

	return settings.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.APIBaseURL == "" {
		s.APIBaseURL = DefaultAPIBaseURL
	}
	if s.MaxRedirects < 0 {
		s.MaxRedirects = 0
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxFileBytes <= 0 {
		s.MaxFileBytes = DefaultMaxFileBytes
	}
	if len(s.Extensions) == 0 {
		s.Extensions = DefaultExtensions
	}
	if s.Excludes == nil {
		s.Excludes = DefaultExcludes
	}

	return s
}
