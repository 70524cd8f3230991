package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/sowgen/internal/form"
	"github.com/dgallion1/sowgen/internal/pipeline"
	"github.com/dgallion1/sowgen/internal/sow"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	req := pipeline.Request{
		Form: form.Form{
			DatabaseSize:    c.DBSize,
			DowntimeWindow:  c.Downtime,
			UpgradeRequired: form.IsYes(c.Upgrade),
			CurrentVersion:  c.CurrentVersion,
			TargetVersion:   c.TargetVersion,
			TargetPlatform:  c.Platform,
			IncludeNonProd:  form.IsYes(c.NonProd),
		},
		IncludeGuide: !c.NoGuide,
		SeedURL:      c.Seed,
		Titles:       c.Section,
	}
	if c.Document != "" {
		data, err := os.ReadFile(c.Document)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		req.Filename, req.Document = filepath.Base(c.Document), data
	}

	res, err := deps.generator().Generate(deps.Ctx, req)
	if err != nil {
		return err
	}
	for _, n := range res.Notices {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", n)
	}

	files := map[string][]byte{
		"oracle_migration_guide.txt": []byte(res.Guide),
		"oracle_migration_sow.txt":   []byte(res.SOW),
	}
	if c.DOCX {
		var buf bytes.Buffer
		if err := sow.WriteDOCX(&buf, res.SOW); err != nil {
			return err
		}
		files["oracle_migration_sow.docx"] = buf.Bytes()
	}
	if c.PDF {
		var buf bytes.Buffer
		if err := sow.WritePDF(&buf, res.SOW); err != nil {
			return err
		}
		files["oracle_migration_sow.pdf"] = buf.Bytes()
	}

	for name, data := range files {
		path := filepath.Join(c.Out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Fprintln(deps.Stdout, path)
	}
	return nil
}
