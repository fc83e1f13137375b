package domain

// PrefsVersion is the onboarding answers schema version.
const PrefsVersion = 1

type LanguagePref struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Intent string `json:"intent"`
}

// CatalogPrefs are the onboarding answers saved under catalogPrefs.
type CatalogPrefs struct {
	Grade      int          `json:"grade"`
	MathCourse string       `json:"mathCourse"`
	Language   LanguagePref `json:"language"`
	SavedAt    string       `json:"savedAt"`
	Version    int          `json:"version"`
}

// Complete reports whether the answers are enough to skip onboarding.
func (p CatalogPrefs) Complete() bool {
	return p.Grade >= 9 && p.Grade <= 12 && p.SavedAt != ""
}
