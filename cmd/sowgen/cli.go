package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/dgallion1/sowgen/internal/config"
	"github.com/dgallion1/sowgen/internal/excerpt"
	"github.com/dgallion1/sowgen/internal/guide"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    config.Config
	Log       *slog.Logger
	Guides    *guide.Fetcher
	Excerpts  *excerpt.Extractor
	Completer llm.Completer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Generate the migration guide and SOW files"`
	Excerpt  ExcerptCmd  `cmd:"" help:"Print the combined section and table excerpt of a document"`
	Guide    GuideCmd    `cmd:"" help:"Print the fetched Oracle migration guide text"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	DBSize         string   `name:"db-size" default:"2TB" help:"Database size"`
	Downtime       string   `default:"5 hours" help:"Downtime window"`
	Upgrade        string   `default:"Yes" enum:"Yes,No" help:"Is upgrade required (Yes/No)"`
	CurrentVersion string   `default:"12.2" help:"Current DB version"`
	TargetVersion  string   `default:"19c" help:"Target DB version"`
	Platform       string   `default:"Exadata Cloud Service" help:"Target platform"`
	NonProd        string   `name:"nonprod" default:"Yes" enum:"Yes,No" help:"Include non-prod environments (Yes/No)"`
	NoGuide        bool     `help:"Do not reference the Oracle migration guide"`
	Seed           string   `help:"Guide seed URL (defaults to GUIDE_URL)"`
	Document       string   `short:"d" type:"existingfile" help:"Planning document to excerpt (.pdf, .docx, .md or .txt)"`
	Section        []string `short:"s" help:"Section title to extract (repeatable)"`
	Out            string   `short:"o" default:"." type:"existingdir" help:"Output directory"`
	DOCX           bool     `name:"docx" help:"Also write the SOW as .docx"`
	PDF            bool     `name:"pdf" help:"Also write the SOW as .pdf"`
}

// ExcerptCmd is the "excerpt" subcommand.
type ExcerptCmd struct {
	File    string   `arg:"" type:"existingfile" help:"Document path (.pdf, .docx, .md or .txt)"`
	Section []string `short:"s" help:"Section title to extract (repeatable)"`
}

// GuideCmd is the "guide" subcommand.
type GuideCmd struct {
	URL string `arg:"" optional:"" help:"Seed URL (defaults to GUIDE_URL)"`
}

func (d *Dependencies) generator() *pipeline.Generator {
	g := pipeline.NewGenerator(d.Guides, d.Excerpts, d.Completer, pipeline.NewResultStore(d.Config.ResultTTL), d.Log)
	if d.Config.GuideURL != "" {
		g.SeedURL = d.Config.GuideURL
	}
	if len(d.Config.PDFSectionTitles) > 0 {
		g.Titles = d.Config.PDFSectionTitles
	}
	return g
}
