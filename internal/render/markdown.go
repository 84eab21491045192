// Package render formats analysis profiles as human-readable reports.
// Purely presentational: it never fails and treats every empty list as
// "none identified" rather than an error.
package render

import (
	"fmt"
	"sort"
	"strings"

	domain "github.com/repolens/repolens/internal/domain/analysis"
)

const (
	noneIdentified = "_None identified._"
	noDependencies = "_No dependencies found._"
)

// Markdown renders one profile as a markdown document.
func Markdown(p *domain.AnalysisProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capability Profile: %s/%s\n\n", p.Owner, p.Repo)
	fmt.Fprintf(&b, "%s\n\n", p.URL)

	b.WriteString("## Purpose\n\n")
	fmt.Fprintf(&b, "%s\n\n", p.Purpose)

	b.WriteString("## Tech Stack\n\n")
	if len(p.TechStack) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		for _, label := range p.TechStack {
			fmt.Fprintf(&b, "- %s\n", label)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Architecture\n\n")
	fmt.Fprintf(&b, "%s\n\n", p.Architecture)

	b.WriteString("## Languages\n\n")
	if len(p.Languages) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		writeLanguages(&b, p.Languages)
		b.WriteString("\n")
	}

	b.WriteString("## Capabilities\n\n")
	if len(p.Capabilities) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		for _, c := range p.Capabilities {
			fmt.Fprintf(&b, "### %s\n\n", c.Name)
			fmt.Fprintf(&b, "%s\n\n", c.Rationale)
			if len(c.UseCases) > 0 {
				fmt.Fprintf(&b, "Use cases: %s\n\n", strings.Join(c.UseCases, ", "))
			}
			if c.Example != "" {
				fmt.Fprintf(&b, "```js\n%s\n```\n\n", c.Example)
			}
		}
	}

	b.WriteString("## Super Powers\n\n")
	if len(p.SuperPowers) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		for _, sp := range p.SuperPowers {
			fmt.Fprintf(&b, "- **%s** — %s\n", sp.Label, sp.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Entry Points\n\n")
	if len(p.EntryPoints) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		for _, e := range p.EntryPoints {
			fmt.Fprintf(&b, "- `%s`\n", e)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Dependencies\n\n")
	if len(p.Dependencies) == 0 {
		b.WriteString(noDependencies + "\n\n")
	} else {
		fmt.Fprintf(&b, "%d declared packages.\n\n", len(p.Dependencies))
		for _, d := range p.Dependencies {
			fmt.Fprintf(&b, "- `%s` %s (%s)\n", d.Name, d.Version, d.Kind)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Gotchas\n\n")
	if len(p.Gotchas) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	} else {
		for _, g := range p.Gotchas {
			fmt.Fprintf(&b, "- %s\n", g)
		}
		b.WriteString("\n")
	}

	if !p.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "---\n\nAnalyzed at %s.\n", p.AnalyzedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	return b.String()
}

// writeLanguages prints the histogram as percentages, largest first.
// Percentages of a non-empty histogram sum to ~100 up to rounding.
func writeLanguages(b *strings.Builder, langs map[string]int64) {
	type entry struct {
		name  string
		bytes int64
	}
	var total int64
	entries := make([]entry, 0, len(langs))
	for name, n := range langs {
		entries = append(entries, entry{name, n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].bytes != entries[j].bytes {
			return entries[i].bytes > entries[j].bytes
		}
		return entries[i].name < entries[j].name
	})
	if total == 0 {
		for _, e := range entries {
			fmt.Fprintf(b, "- %s: 0.0%%\n", e.name)
		}
		return
	}
	for _, e := range entries {
		pct := float64(e.bytes) / float64(total) * 100
		fmt.Fprintf(b, "- %s: %.1f%%\n", e.name, pct)
	}
}
