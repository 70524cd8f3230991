// Package form holds the migration questionnaire a user fills in.
package form

import (
	"net/url"
	"strings"
)

// Form is one submission of the migration questionnaire. Every field is free
// text except the two Yes/No choices; nothing is validated.
type Form struct {
	DatabaseSize    string `json:"database_size"`
	DowntimeWindow  string `json:"downtime_window"`
	UpgradeRequired bool   `json:"upgrade_required"`
	CurrentVersion  string `json:"current_version"`
	TargetVersion   string `json:"target_version"`
	TargetPlatform  string `json:"target_platform"`
	IncludeNonProd  bool   `json:"include_nonprod"`
}

// Field names shared by the HTML form, the JSON API and the CLI.
const (
	FieldDatabaseSize    = "database_size"
	FieldDowntimeWindow  = "downtime_window"
	FieldUpgradeRequired = "upgrade_required"
	FieldCurrentVersion  = "current_version"
	FieldTargetVersion   = "target_version"
	FieldTargetPlatform  = "target_platform"
	FieldIncludeNonProd  = "include_nonprod"
)

// Defaults are the values the form is pre-filled with.
func Defaults() Form {
	return Form{
		DatabaseSize:    "2TB",
		DowntimeWindow:  "5 hours",
		UpgradeRequired: true,
		CurrentVersion:  "12.2",
		TargetVersion:   "19c",
		TargetPlatform:  "Exadata Cloud Service",
		IncludeNonProd:  true,
	}
}

// FromValues reads a submitted form. Missing text fields keep their defaults;
// a choice is true only when it reads "Yes".
func FromValues(v url.Values) Form {
	f := Defaults()
	text := func(key string, dst *string) {
		if _, ok := v[key]; ok {
			*dst = v.Get(key)
		}
	}
	text(FieldDatabaseSize, &f.DatabaseSize)
	text(FieldDowntimeWindow, &f.DowntimeWindow)
	text(FieldCurrentVersion, &f.CurrentVersion)
	text(FieldTargetVersion, &f.TargetVersion)
	text(FieldTargetPlatform, &f.TargetPlatform)
	if _, ok := v[FieldUpgradeRequired]; ok {
		f.UpgradeRequired = IsYes(v.Get(FieldUpgradeRequired))
	}
	if _, ok := v[FieldIncludeNonProd]; ok {
		f.IncludeNonProd = IsYes(v.Get(FieldIncludeNonProd))
	}
	return f
}

// IsYes reports whether a choice reads "Yes".
func IsYes(s string) bool {
	return strings.TrimSpace(s) == "Yes"
}

// YesNo renders a choice the way the form shows it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
