package main

import (
	"fmt"

	"github.com/dgallion1/sowgen/internal/guide"
)

// Run executes the guide command.
func (c *GuideCmd) Run(deps *Dependencies) error {
	seed := c.URL
	if seed == "" {
		seed = deps.Config.GuideURL
	}
	if seed == "" {
		seed = guide.DefaultSeedURL
	}
	fmt.Fprintln(deps.Stdout, deps.Guides.FetchText(deps.Ctx, seed))
	return nil
}
