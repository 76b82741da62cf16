package remote

import (
	"encoding/json"
	"net"
	"net/url"
	"os"

	"github.com/splitbill/receipt-extract/internal/common"
)

const (
	// DefaultLoopbackURL serves simulator and same-host testing.
	DefaultLoopbackURL = "http://127.0.0.1:8787/v1/receipt"
	// PublicFallbackURL is the documented production endpoint used when the
	// configured host is loopback but the caller cannot reach loopback
	// (physical-device testing).
	PublicFallbackURL = "https://api.splitbill.app/v1/receipt"
)

// settingsFile is the persisted user setting consulted between the explicit
// configuration and the bundled default.
type settingsFile struct {
	ExtractionEndpoint string `json:"extraction_endpoint"`
}

// ResolveEndpoint picks the remote service URL. Priority: explicit
// environment-style configuration, persisted user setting, bundled
// configuration key, documented loopback default. A loopback host is swapped
// for the public production URL when the configuration allows it.
func ResolveEndpoint(cfg common.RemoteConfig) string {
	endpoint := cfg.ExplicitURL
	if endpoint == "" {
		endpoint = readPersistedEndpoint(cfg.SettingsPath)
	}
	if endpoint == "" {
		endpoint = cfg.BundledURL
	}
	if endpoint == "" {
		endpoint = DefaultLoopbackURL
	}
	if cfg.AllowPublicFallback && isLoopbackHost(endpoint) {
		return PublicFallbackURL
	}
	return endpoint
}

func readPersistedEndpoint(path string) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var s settingsFile
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s.ExtractionEndpoint
}

func isLoopbackHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
