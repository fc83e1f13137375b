package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ErrCatalogUnavailable is returned when no candidate produced an ok,
// JSON-parseable body.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// maxCatalogBytes bounds how much of a response body is read.
const maxCatalogBytes = 32 << 20

// Source fetches the raw catalog from an ordered list of candidates. Each
// candidate is tried once; there is no retry beyond exhausting the list.
type Source struct {
	candidates []string
	client     *http.Client
	timeout    time.Duration
	log        *logger.Logger
}

type SourceOption func(*Source)

// WithHTTPClient overrides the client used for http(s) candidates.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *Source) { s.client = c }
}

// WithAttemptTimeout bounds each individual candidate attempt.
func WithAttemptTimeout(d time.Duration) SourceOption {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *logger.Logger) SourceOption {
	return func(s *Source) { s.log = logger.OrNop(l) }
}

// NewSource creates a Source over candidates. Candidates starting with
// http:// or https:// are fetched with GET; anything else is a file path.
func NewSource(candidates []string, opts ...SourceOption) *Source {
	s := &Source{
		candidates: append([]string(nil), candidates...),
		client:     http.DefaultClient,
		timeout:    10 * time.Second,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the first ok, JSON-parseable body and the candidate it came
// from. When every candidate fails the error wraps ErrCatalogUnavailable.
func (s *Source) Fetch(ctx context.Context) ([]byte, string, error) {
	if len(s.candidates) == 0 {
		return nil, "", fmt.Errorf("%w: no candidates configured", ErrCatalogUnavailable)
	}

	tm := timeout.New[[]byte](timeout.Config{DefaultTimeout: s.timeout})

	var lastErr error
	for _, candidate := range s.candidates {
		body, err := tm.Execute(ctx, s.timeout, func(ctx context.Context) ([]byte, error) {
			return s.fetchOne(ctx, candidate)
		})
		if err == nil && !json.Valid(body) {
			err = fmt.Errorf("%s: body is not valid JSON", candidate)
		}
		if err != nil {
			s.log.Warn("catalog candidate failed", "candidate", candidate, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		s.log.Info("catalog loaded", "candidate", candidate, "bytes", len(body))
		return body, candidate, nil
	}
	return nil, "", fmt.Errorf("%w (tried %s): %v", ErrCatalogUnavailable, strings.Join(s.candidates, ", "), lastErr)
}

func (s *Source) fetchOne(ctx context.Context, candidate string) ([]byte, error) {
	if isHTTP(candidate) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", candidate, err)
		}
		req.Header.Set("Accept", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", candidate, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("fetching %s: status %d", candidate, resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", candidate, err)
		}
		return body, nil
	}

	path := strings.TrimPrefix(candidate, "file://")
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return body, nil
}

func isHTTP(candidate string) bool {
	lc := strings.ToLower(candidate)
	return strings.HasPrefix(lc, "http://") || strings.HasPrefix(lc, "https://")
}
