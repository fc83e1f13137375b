package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// FormatPrefs renders saved onboarding answers.
func FormatPrefs(p domain.CatalogPrefs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", Dim("Grade:   "), p.Grade)
	fmt.Fprintf(&b, "%s %s\n", Dim("Math:    "), orDash(p.MathCourse))
	lang := orDash(p.Language.Name)
	if p.Language.Name != "" && p.Language.Level != "" {
		lang += " (" + p.Language.Level + ")"
	}
	if p.Language.Intent != "" {
		lang += ", " + p.Language.Intent
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Language:"), lang)
	fmt.Fprintf(&b, "%s %s", Dim("Saved:   "), orDash(p.SavedAt))
	return RenderBox("Onboarding", b.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
