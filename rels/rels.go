// Package rels resolves the typed relationship documents that link
// presentation parts together and builds the theme attribution graph
// from them.
package rels

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Relationship type URIs used by presentation packages.
const (
	TypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	TypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	TypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
)

// Resolve parses one relationship document and returns the bare file name of
// the first relationship target carrying the wanted type, in document order.
//
// Relationship documents are best-effort metadata: a document that does not
// parse, or that lacks a matching entry, reports absence rather than an
// error.
func Resolve(doc []byte, relType string) (string, bool) {
	parsed, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", false
	}

	node := xmlquery.FindOne(parsed, "//*[local-name()='Relationship'][@Type='"+relType+"']")
	if node == nil {
		return "", false
	}

	target := node.SelectAttr("Target")
	if target == "" {
		return "", false
	}

	// Targets look like "../theme/theme1.xml"; the graph keys everything by
	// bare file name since each part family lives in its own flat directory.
	return path.Base(target), true
}

// Graph records which theme each slide master uses and which master each
// slide layout follows. It is built once per run and read-only afterwards.
type Graph struct {
	masterTheme  map[string]string
	layoutMaster map[string]string
}

// BuildGraph walks the staged package's master and layout relationship
// directories and builds the theme graph. Missing directories and
// unreadable documents yield partial or empty mappings, never an error:
// parts absent from the graph simply have no known theme.
func BuildGraph(root string) *Graph {
	return &Graph{
		masterTheme:  resolveDir(filepath.Join(root, "ppt", "slideMasters", "_rels"), TypeTheme),
		layoutMaster: resolveDir(filepath.Join(root, "ppt", "slideLayouts", "_rels"), TypeSlideMaster),
	}
}

// resolveDir resolves every relationship document in one _rels directory,
// keyed by the owning part's file name.
func resolveDir(relsDir, relType string) map[string]string {
	mapping := make(map[string]string)

	files, err := filepath.Glob(filepath.Join(relsDir, "*.xml.rels"))
	if err != nil {
		return mapping
	}

	for _, relsFile := range files {
		owner := strings.TrimSuffix(filepath.Base(relsFile), ".rels")

		doc, err := os.ReadFile(relsFile)
		if err != nil {
			continue
		}

		target, ok := Resolve(doc, relType)
		if !ok {
			continue
		}
		mapping[owner] = target
	}

	return mapping
}

// ThemeForMaster reports the theme file a slide master uses.
func (g *Graph) ThemeForMaster(master string) (string, bool) {
	theme, ok := g.masterTheme[master]
	return theme, ok
}

// MasterForLayout reports the slide master a layout follows.
func (g *Graph) MasterForLayout(layout string) (string, bool) {
	master, ok := g.layoutMaster[layout]
	return master, ok
}

// ThemeForLayout resolves a layout's theme through its master.
func (g *Graph) ThemeForLayout(layout string) (string, bool) {
	master, ok := g.layoutMaster[layout]
	if !ok {
		return "", false
	}
	return g.ThemeForMaster(master)
}

// Themes returns the sorted set of theme files reachable from any master.
func (g *Graph) Themes() []string {
	seen := make(map[string]bool)
	for _, theme := range g.masterTheme {
		seen[theme] = true
	}

	themes := make([]string, 0, len(seen))
	for theme := range seen {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	return themes
}

// ValidateFilter checks that every filter entry names a theme the graph
// knows about. Short names ("theme1") and file names ("theme1.xml") are
// both accepted.
func (g *Graph) ValidateFilter(filter []string) error {
	if len(filter) == 0 {
		return nil
	}

	known := make(map[string]bool)
	for _, theme := range g.masterTheme {
		known[theme] = true
		known[strings.TrimSuffix(theme, ".xml")] = true
	}

	var notFound []string
	for _, name := range filter {
		if !known[name] && !known[strings.TrimSuffix(name, ".xml")] {
			notFound = append(notFound, name)
		}
	}
	if len(notFound) == 0 {
		return nil
	}

	available := g.Themes()
	for i, theme := range available {
		available[i] = strings.TrimSuffix(theme, ".xml")
	}
	return fmt.Errorf("theme(s) not found: %s (available: %s)",
		strings.Join(notFound, ", "), strings.Join(available, ", "))
}
