// Package theme reads the color themes carried by a presentation package.
//
// The inventory is independent of the rewrite pipeline: it opens the
// package read-only and never touches anything on disk.
package theme

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"decktint/model"
)

// IsThemeEntry reports whether an archive entry is a theme definition part.
func IsThemeEntry(name string) bool {
	return path.Dir(name) == "ppt/theme" &&
		strings.HasPrefix(path.Base(name), "theme") &&
		strings.HasSuffix(name, ".xml")
}

// Read reads every theme definition in a presentation package, ordered by
// file name so the listing is stable regardless of where the archive
// physically stores each theme.
//
// A part that fails to parse, or that carries no color scheme, is skipped.
// An empty result is not an error; the caller decides what zero themes
// means.
func Read(pptxPath string) ([]model.Theme, error) {
	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	defer zr.Close()

	var entries []string
	for _, f := range zr.File {
		if IsThemeEntry(f.Name) {
			entries = append(entries, f.Name)
		}
	}
	sort.Strings(entries)

	themes := make([]model.Theme, 0, len(entries))
	for _, entry := range entries {
		rc, err := zr.Open(entry)
		if err != nil {
			continue
		}
		doc, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		th, err := parse(doc, path.Base(entry))
		if err != nil {
			continue
		}
		themes = append(themes, th)
	}

	return themes, nil
}

// parse extracts one theme's display names and color slots.
func parse(doc []byte, fileName string) (model.Theme, error) {
	parsed, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return model.Theme{}, fmt.Errorf("parse theme xml: %w", err)
	}

	root := xmlquery.FindOne(parsed, "//*[local-name()='theme']")
	if root == nil {
		return model.Theme{}, fmt.Errorf("no theme element")
	}
	name := root.SelectAttr("name")
	if name == "" {
		name = fileName
	}

	scheme := xmlquery.FindOne(parsed, "//*[local-name()='clrScheme']")
	if scheme == nil {
		return model.Theme{}, fmt.Errorf("no color scheme")
	}
	schemeName := scheme.SelectAttr("name")
	if schemeName == "" {
		schemeName = "Unknown"
	}

	var colors model.ColorScheme
	for _, slot := range model.SchemeColorNames {
		elem := xmlquery.FindOne(scheme, "*[local-name()='"+slot+"']")
		colors.SetColor(slot, slotColor(elem))
	}

	return model.Theme{
		FileName:   fileName,
		Name:       name,
		SchemeName: schemeName,
		Colors:     colors,
	}, nil
}

// slotColor extracts the color value of one slot element: an explicit RGB
// value wins, a system color falls back to its last resolved color, and
// anything else defaults to black.
func slotColor(slot *xmlquery.Node) string {
	if slot == nil {
		return "000000"
	}

	if srgb := xmlquery.FindOne(slot, "*[local-name()='srgbClr']"); srgb != nil {
		if val := srgb.SelectAttr("val"); val != "" {
			return val
		}
	}

	if sys := xmlquery.FindOne(slot, "*[local-name()='sysClr']"); sys != nil {
		if last := sys.SelectAttr("lastClr"); last != "" {
			return last
		}
	}

	return "000000"
}
