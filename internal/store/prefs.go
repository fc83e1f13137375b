package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/alexanderramin/courseplan/internal/repository"
)

// ErrNoPrefs means onboarding has not been completed.
var ErrNoPrefs = errors.New("no catalog preferences saved")

// PrefsCookieMaxAge is one year in seconds.
const PrefsCookieMaxAge = 365 * 24 * 60 * 60

// PrefsStore persists onboarding answers under catalogPrefs and mirrors them
// into a cookie of the same name.
type PrefsStore struct {
	kv  repository.KVRepo
	log *logger.Logger
	now func() time.Time
}

func NewPrefsStore(kv repository.KVRepo, l *logger.Logger) *PrefsStore {
	return &PrefsStore{kv: kv, log: logger.OrNop(l), now: time.Now}
}

// SavePrefs stamps savedAt and version, writes the blob and returns the
// stamped prefs with the cookie that mirrors them. A failed write is logged;
// the cookie is still returned.
func (s *PrefsStore) SavePrefs(ctx context.Context, prefs domain.CatalogPrefs) (domain.CatalogPrefs, *http.Cookie) {
	prefs.SavedAt = s.now().UTC().Format(time.RFC3339)
	prefs.Version = domain.PrefsVersion

	data, err := json.Marshal(prefs)
	if err != nil {
		s.log.Error("encoding catalog prefs failed", "error", err)
		return prefs, nil
	}
	if err := s.kv.Put(ctx, domain.KeyCatalogPrefs, string(data)); err != nil {
		s.log.Error("saving catalog prefs failed", "key", domain.KeyCatalogPrefs, "error", err)
	}
	return prefs, PrefsCookie(data)
}

// LoadPrefs returns the stored answers. A missing or unreadable blob yields
// ErrNoPrefs.
func (s *PrefsStore) LoadPrefs(ctx context.Context) (domain.CatalogPrefs, error) {
	raw, err := s.kv.Get(ctx, domain.KeyCatalogPrefs)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("reading catalog prefs failed", "error", err)
		}
		return domain.CatalogPrefs{}, ErrNoPrefs
	}
	var prefs domain.CatalogPrefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.log.Warn("discarding corrupt catalog prefs", "error", err)
		return domain.CatalogPrefs{}, ErrNoPrefs
	}
	return prefs, nil
}

// PrefsCookie builds the catalogPrefs cookie for an encoded prefs blob.
func PrefsCookie(encoded []byte) *http.Cookie {
	return &http.Cookie{
		Name:     domain.KeyCatalogPrefs,
		Value:    escapeCookieValue(string(encoded)),
		Path:     "/",
		MaxAge:   PrefsCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

// PrefsFromRequest decodes the catalogPrefs cookie. It returns ErrNoPrefs when
// the cookie is absent and a wrapped decode error when it is malformed.
func PrefsFromRequest(r *http.Request) (domain.CatalogPrefs, error) {
	c, err := r.Cookie(domain.KeyCatalogPrefs)
	if err != nil {
		return domain.CatalogPrefs{}, ErrNoPrefs
	}
	return DecodePrefsCookie(c.Value)
}

// escapeCookieValue percent-encodes s with spaces as %20, matching what a
// browser's encodeURIComponent writes. A literal '+' is already %2B here, so
// every '+' left by QueryEscape stands for a space.
func escapeCookieValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DecodePrefsCookie reverses PrefsCookie's encoding. It also accepts the
// older form that wrote spaces as '+'.
func DecodePrefsCookie(value string) (domain.CatalogPrefs, error) {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return domain.CatalogPrefs{}, fmt.Errorf("unescaping prefs cookie: %w", err)
	}
	var prefs domain.CatalogPrefs
	if err := json.Unmarshal([]byte(decoded), &prefs); err != nil {
		return domain.CatalogPrefs{}, fmt.Errorf("decoding prefs cookie: %w", err)
	}
	return prefs, nil
}
