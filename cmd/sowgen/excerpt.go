package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/sowgen/internal/excerpt"
)

// Run executes the excerpt command.
func (c *ExcerptCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	titles := c.Section
	if len(titles) == 0 {
		titles = deps.Config.PDFSectionTitles
	}
	if len(titles) == 0 {
		titles = excerpt.DefaultSectionTitles
	}
	fmt.Fprintln(deps.Stdout, deps.Excerpts.ExtractText(deps.Ctx, filepath.Base(c.File), data, titles))
	return nil
}
