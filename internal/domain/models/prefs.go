package models

// Theme and language values accepted by the preference store.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	LangFR = "fr"
	LangEN = "en"
)

// Preferences is the process-wide presentation state.
type Preferences struct {
	Theme string `json:"theme"`
	Lang  string `json:"lang"`
}

// DefaultPreferences returns the startup state.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark, Lang: LangFR}
}

// PreferencesUpdate is a partial update; empty fields are left unchanged.
type PreferencesUpdate struct {
	Theme string `json:"theme" validate:"omitempty,oneof=dark light"`
	Lang  string `json:"lang" validate:"omitempty,oneof=fr en"`
}

// PreferencesChanged is published whenever the store changes.
type PreferencesChanged struct {
	ID       string      `json:"id"`
	Previous Preferences `json:"previous"`
	Current  Preferences `json:"current"`
	At       int64       `json:"at"`
}

// NormalizeLang keeps the first two letters of tag; anything but "en" is "fr".
func NormalizeLang(tag string) string {
	if len(tag) > 2 {
		tag = tag[:2]
	}
	if tag == LangEN {
		return LangEN
	}
	return LangFR
}

// NormalizeTheme maps anything but "light" to "dark".
func NormalizeTheme(theme string) string {
	if theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}
