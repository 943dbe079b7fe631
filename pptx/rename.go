package pptx

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"decktint/rels"
	"decktint/theme"
)

// RenameScheme rewrites the color scheme name of the selected theme parts
// and writes the result to a new package. The same staging, entry
// preservation and atomic output rules as Transform apply; only theme
// definition parts are touched.
func RenameScheme(input, output, newName string, themeFilter []string, strict bool) (int, error) {
	if err := theme.ValidateName(newName); err != nil {
		return 0, err
	}
	if err := checkPackage(input); err != nil {
		return 0, err
	}

	staging, entries, err := stage(input)
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(staging)

	if strict {
		graph := rels.BuildGraph(staging)
		if err := graph.ValidateFilter(themeFilter); err != nil {
			return 0, err
		}
	}

	filter := themeFilterSet(themeFilter)
	renamed := 0
	for _, e := range entries {
		if e.dir || !theme.IsThemeEntry(e.name) {
			continue
		}
		if filter != nil && !filter[path.Base(e.name)] {
			continue
		}

		dest := filepath.Join(staging, filepath.FromSlash(e.name))
		doc, err := os.ReadFile(dest)
		if err != nil {
			continue
		}
		out, ok := theme.RenameScheme(doc, newName)
		if !ok {
			continue
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			return renamed, fmt.Errorf("write part %s: %w", e.name, err)
		}
		renamed++
	}

	if renamed == 0 {
		return 0, fmt.Errorf("no color schemes renamed")
	}

	if err := repack(staging, entries, output); err != nil {
		return renamed, err
	}
	return renamed, nil
}
