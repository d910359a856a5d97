// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deviceid

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// cacheFile is the fixed key the identifier is persisted under,
// matching the website's localStorage key.
const cacheFile = "mythenpark_device_id"

// Attributes are the stable device/browser characteristics the
// fingerprint is derived from. None of them is secret; the result is
// a spoofable best-effort deduplication key, not a credential.
type Attributes struct {
	UserAgent      string
	Language       string
	TimezoneOffset int // minutes from UTC
	ScreenWidth    int
	ScreenHeight   int
	ColorDepth     int
}

// Fingerprint encodes the attributes into a storable identifier.
// Deterministic: the same attributes always produce the same id.
func Fingerprint(a Attributes) string {
	components := []string{
		a.UserAgent,
		a.Language,
		fmt.Sprintf("%d", a.TimezoneOffset),
		fmt.Sprintf("%dx%d", a.ScreenWidth, a.ScreenHeight),
		fmt.Sprintf("%d", a.ColorDepth),
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(components, "|")))
}

// Provider hands out a stable device identifier, persisting it so the
// same device reuses it across sessions. If the cache directory is
// unusable the provider degrades to a fresh identifier per call -
// deduplication stops working for the session, but nothing crashes.
type Provider struct {
	attrs Attributes
	path  string

	mu       sync.Mutex
	cached   string
	warnOnce sync.Once
}

// NewProvider creates a provider that caches the identifier under
// cacheDir.
func NewProvider(attrs Attributes, cacheDir string) *Provider {
	return &Provider{attrs: attrs, path: filepath.Join(cacheDir, cacheFile)}
}

// DeviceID returns the persisted identifier, creating and persisting
// it on first call. A previously persisted value is returned
// unchanged, never regenerated.
func (p *Provider) DeviceID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}

	if data, err := os.ReadFile(p.path); err == nil && len(data) > 0 {
		p.cached = strings.TrimSpace(string(data))
		return p.cached
	}

	id := Fingerprint(p.attrs)
	if err := p.persist(id); err != nil {
		p.warnOnce.Do(func() {
			slog.Warn("device id cache unavailable, using per-session identifiers", "error", err)
		})
		// Degraded mode: fresh identifier per call, nothing cached.
		return uuid.NewString()
	}
	p.cached = id
	return id
}

func (p *Provider) persist(id string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, []byte(id), 0o600)
}

// HashIP creates a salted one-way hash of a client IP, recorded on
// vote records as a secondary anti-abuse signal. Never used on its
// own to reject a vote.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// 64 bits is enough for correlation
	return hex.EncodeToString(sum[:8])
}
