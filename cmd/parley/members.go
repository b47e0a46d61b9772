package main

import (
	"context"
	"fmt"
	"io"

	"github.com/parley-ai/parley/internal/mcp"
	"github.com/parley-ai/parley/internal/tui"
)

// sectionTitles maps each catalog kind to its listing heading.
var sectionTitles = map[mcp.CatalogKind]string{
	mcp.CatalogTools:     "Tools",
	mcp.CatalogPrompts:   "Prompts",
	mcp.CatalogResources: "Resources",
}

// runMembers prints every catalog section the server exposes. A
// failure in one section is reported inline and the remaining
// sections still print; many servers implement only tools/list and
// reject the other queries.
func runMembers(ctx context.Context, stdout io.Writer, session *mcp.Session) error {
	for _, kind := range mcp.Kinds() {
		title := sectionTitles[kind]

		descs, err := session.List(ctx, kind)
		if err != nil {
			fmt.Fprint(stdout, tui.Section(title, []string{fmt.Sprintf("(unavailable: %v)", err)}))
			continue
		}

		entries := make([]string, 0, len(descs))
		for _, d := range descs {
			entries = append(entries, tui.Entry(d.Name, d.Description))
		}
		fmt.Fprint(stdout, tui.Section(title, entries))
	}
	return nil
}
