package sow

import (
	_ "embed"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed phases.yaml
var phasesYAML []byte

// Phase is one row of the SOW estimate table.
type Phase struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Hours       int    `yaml:"hours" json:"hours"`
}

var loadPhases = sync.OnceValues(func() ([]Phase, error) {
	return parsePhases(phasesYAML)
})

// Phases returns the fixed phase table.
func Phases() ([]Phase, error) {
	phases, err := loadPhases()
	if err != nil {
		return nil, err
	}
	return append([]Phase(nil), phases...), nil
}

func parsePhases(data []byte) ([]Phase, error) {
	var doc struct {
		Phases []Phase `yaml:"phases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "decode phase table")
	}
	if len(doc.Phases) == 0 {
		return nil, eris.New("phase table is empty")
	}
	return doc.Phases, nil
}

// TotalHours sums the hours of phases.
func TotalHours(phases []Phase) int {
	total := 0
	for _, p := range phases {
		total += p.Hours
	}
	return total
}
