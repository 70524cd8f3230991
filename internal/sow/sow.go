// Package sow renders the migration Statement of Work as plain text and as
// Word and PDF downloads.
package sow

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dgallion1/sowgen/internal/form"
	"github.com/rotisserie/eris"
)

// Column widths of the phase table in the text rendering.
const (
	phaseWidth  = 30
	descWidth   = 56
	effortWidth = 12
)

//go:embed sow.txt.tmpl
var templates embed.FS

var sowTmpl = template.Must(template.New("sow.txt.tmpl").Funcs(template.FuncMap{
	"row":  tableRow,
	"rule": tableRule,
}).ParseFS(templates, "sow.txt.tmpl"))

// Scope holds the values interpolated into the SOW.
type Scope struct {
	DatabaseSize   string
	CurrentVersion string
	TargetVersion  string
	Downtime       string
	Platform       string
	// Excerpt is the combined excerpt of the customer's document, if any.
	Excerpt string
}

// ScopeFromForm maps a questionnaire submission onto a Scope.
func ScopeFromForm(f form.Form, excerpt string) Scope {
	return Scope{
		DatabaseSize:   f.DatabaseSize,
		CurrentVersion: f.CurrentVersion,
		TargetVersion:  f.TargetVersion,
		Downtime:       f.DowntimeWindow,
		Platform:       f.TargetPlatform,
		Excerpt:        excerpt,
	}
}

// Render fills the SOW template. The total effort is always the sum of the
// fixed phase table, whatever the scope says.
func Render(scope Scope) (string, error) {
	phases, err := Phases()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = sowTmpl.Execute(&sb, struct {
		Scope  Scope
		Phases []Phase
		Total  int
	}{scope, phases, TotalHours(phases)})
	if err != nil {
		return "", eris.Wrap(err, "render sow")
	}
	return sb.String(), nil
}

func tableRow(phase, desc, effort string) string {
	return fmt.Sprintf("| %-*s | %-*s | %-*s |", phaseWidth, phase, descWidth, desc, effortWidth, effort)
}

func tableRule() string {
	return "|" + strings.Repeat("-", phaseWidth+2) +
		"|" + strings.Repeat("-", descWidth+2) +
		"|" + strings.Repeat("-", effortWidth+2) + "|"
}

// isTableRule reports whether line is the separator under the table header.
func isTableRule(line string) bool {
	return strings.HasPrefix(line, "|-")
}

// tableCells splits a rendered table row into its trimmed cells with
// markdown emphasis removed.
func tableCells(line string) []string {
	parts := strings.Split(strings.Trim(line, "|"), "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(p), "**", "")
	}
	return cells
}
