// Package dictionary loads the American to British term mapping and compiles
// it into whole-word, case-insensitive replacement rules.
//
// A dictionary is read from an HTTP(S) URL, a local JSON file or a stored
// snapshot. The JSON document must be a single object whose keys are American
// terms and whose values are British terms. Key order is preserved so rules
// are always applied in the same order.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultURL is the published US to UK dictionary.
const DefaultURL = "https://raw.githubusercontent.com/markuskempus/StreamlitTextSplitApp/main/us_to_uk_dictionary.json"

// SnapshotSource is the source string that selects the stored snapshot.
const SnapshotSource = "snapshot:"

// maxBodySize bounds the dictionary response body.
const maxBodySize = 32 << 20

// Config holds configuration options for the loader.
type Config struct {
	// UserAgent is the User-Agent header value sent with HTTP requests
	UserAgent string
	// Timeout specifies the maximum duration to wait for the dictionary request
	Timeout time.Duration
}

// DefaultConfig returns a default configuration with reasonable values.
func DefaultConfig() *Config {
	return &Config{
		UserAgent: "Mozilla/5.0 (compatible; ukify/1.0)",
		Timeout:   10 * time.Second,
	}
}

// SnapshotReader returns a previously stored mapping.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (TermMapping, error)
}

// Dictionary is a loaded mapping together with its compiled rules.
type Dictionary struct {
	// Source is where the mapping was read from
	Source string
	// Mapping holds the terms in source order
	Mapping TermMapping
	// Rules holds one compiled rule per term, in the same order
	Rules Rules
	// Checksum identifies the mapping contents
	Checksum string
	// LoadedAt is when the mapping was read
	LoadedAt time.Time
}

// Loader reads dictionaries from their sources.
type Loader struct {
	// Config contains the configuration options for this loader
	Config *Config
	// client is the HTTP client used for making requests
	client *http.Client
	// snapshots serves the "snapshot:" source when set
	snapshots SnapshotReader
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithSnapshots enables the "snapshot:" source.
func WithSnapshots(r SnapshotReader) Option {
	return func(l *Loader) { l.snapshots = r }
}

// NewLoader creates a new loader with the given configuration.
// If config is nil, default configuration will be used.
func NewLoader(config *Config, opts ...Option) *Loader {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Loader{
		Config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the mapping from source and compiles it.
//
// Parameters:
//   - ctx: Controls cancellation of the underlying request
//   - source: An http(s) URL, a local file path or SnapshotSource
//
// Returns:
//   - The loaded dictionary with one rule per mapping key, in source order
//   - A *FetchError when the source cannot be read, a *ParseError when the
//     body is not a JSON object of strings
func (l *Loader) Load(ctx context.Context, source string) (*Dictionary, error) {
	var mapping TermMapping

	switch {
	case source == SnapshotSource:
		m, err := l.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		mapping = m
	default:
		body, err := l.read(ctx, source)
		if err != nil {
			return nil, err
		}
		m, err := ParseMapping(body)
		if err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}
		mapping = m
	}

	return &Dictionary{
		Source:   source,
		Mapping:  mapping,
		Rules:    Compile(mapping),
		Checksum: mapping.Checksum(),
		LoadedAt: time.Now(),
	}, nil
}

func (l *Loader) loadSnapshot(ctx context.Context) (TermMapping, error) {
	if l.snapshots == nil {
		return nil, &FetchError{Source: SnapshotSource, Err: errors.New("no snapshot store configured")}
	}
	m, err := l.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, &FetchError{Source: SnapshotSource, Err: err}
	}
	return m, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return l.fetchURL(ctx, source)
	}

	body, err := os.ReadFile(source)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	return body, nil
}

// fetchURL fetches the dictionary body from an HTTP(S) URL.
func (l *Loader) fetchURL(ctx context.Context, urlStr string) ([]byte, error) {
	if l.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{Source: urlStr, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", l.Config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: urlStr, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: urlStr, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{Source: urlStr, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return body, nil
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
