package llm

import (
	"fmt"
	"strings"

	"github.com/dgallion1/sowgen/internal/form"
)

const guideIntro = `You are an expert Oracle Cloud migration consultant. You have access to Oracle's official migration planning guide:
%s

Using this as reference, create a 3-part Oracle DB migration guide:
1. Planning
2. Execution
3. Post-Migration Validation

Include insights drawn from the Oracle guide content and walk through key subtopics and best practices.
`

const excerptBlock = `
The customer also provided excerpts from their own planning document. Reflect its scope, requirements and constraints in the guide:
%s
`

// BuildGuidePrompt assembles the instruction sent to the model from the form
// values, the fetched guide text and the optional document excerpt.
func BuildGuidePrompt(f form.Form, guideText, excerpt string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, guideIntro, guideText)
	if strings.TrimSpace(excerpt) != "" {
		fmt.Fprintf(&sb, excerptBlock, excerpt)
	}
	sb.WriteString("\nUse the following inputs:\n")
	fmt.Fprintf(&sb, "- DB size: %s\n", f.DatabaseSize)
	fmt.Fprintf(&sb, "- Downtime: %s\n", f.DowntimeWindow)
	fmt.Fprintf(&sb, "- Upgrade required: %s\n", form.YesNo(f.UpgradeRequired))
	fmt.Fprintf(&sb, "- Current version: %s\n", f.CurrentVersion)
	fmt.Fprintf(&sb, "- Target version: %s\n", f.TargetVersion)
	fmt.Fprintf(&sb, "- Target platform: %s\n", f.TargetPlatform)
	fmt.Fprintf(&sb, "- Include non-prod: %s\n", form.YesNo(f.IncludeNonProd))
	sb.WriteString("\nProvide a thorough, professional guide.")
	return sb.String()
}
