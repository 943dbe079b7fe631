package theme

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// themeXML builds a theme document with the stock Office palette.
func themeXML(themeName, schemeName string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="` + themeName + `">` +
		`<a:themeElements><a:clrScheme name="` + schemeName + `">` +
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
		`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
		`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
		`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
		`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
		`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme></a:themeElements></a:theme>`)
}

type fileEntry struct {
	name    string
	content []byte
}

// writePackage assembles a zip with the entries in the given order.
func writePackage(t *testing.T, files []fileEntry) string {
	t.Helper()

	pkg := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(pkg)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.name)
		require.NoError(t, err)
		_, err = w.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return pkg
}

func TestRead(t *testing.T) {
	pkg := writePackage(t, []fileEntry{
		{"ppt/theme/theme2.xml", themeXML("Facet", "Facet Colors")},
		{"ppt/theme/theme1.xml", themeXML("Office Theme", "Office")},
		{"docProps/core.xml", []byte("<coreProperties/>")},
	})

	themes, err := Read(pkg)
	require.NoError(t, err)
	require.Len(t, themes, 2)

	// Ordered by file name even though theme2 is stored first.
	assert.Equal(t, "theme1.xml", themes[0].FileName)
	assert.Equal(t, "Office Theme", themes[0].Name)
	assert.Equal(t, "Office", themes[0].SchemeName)
	assert.Equal(t, "4472C4", themes[0].Colors.Accent1)
	assert.Equal(t, "000000", themes[0].Colors.Dk1)
	assert.Equal(t, "FFFFFF", themes[0].Colors.Lt1)

	assert.Equal(t, "theme2.xml", themes[1].FileName)
	assert.Equal(t, "Facet", themes[1].Name)
	assert.Equal(t, "Facet Colors", themes[1].SchemeName)
}

func TestRead_SkipsUnparsableTheme(t *testing.T) {
	pkg := writePackage(t, []fileEntry{
		{"ppt/theme/theme1.xml", []byte("<broken")},
		{"ppt/theme/theme2.xml", themeXML("Office Theme", "Office")},
	})

	themes, err := Read(pkg)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "theme2.xml", themes[0].FileName)
}

func TestRead_NoThemes(t *testing.T) {
	pkg := writePackage(t, []fileEntry{
		{"ppt/slides/slide1.xml", []byte("<sld/>")},
	})

	themes, err := Read(pkg)
	require.NoError(t, err)
	assert.NotNil(t, themes)
	assert.Empty(t, themes)
}

func TestRead_NotAPackage(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "nope.pptx")
	require.NoError(t, os.WriteFile(pkg, []byte("plain text"), 0o644))

	_, err := Read(pkg)
	assert.Error(t, err)
}

func TestParse_Fallbacks(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>` +
		`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
		`<a:themeElements><a:clrScheme>` +
		`<a:dk1><a:srgbClr val="111111"/></a:dk1>` +
		`</a:clrScheme></a:themeElements></a:theme>`)

	th, err := parse(doc, "theme3.xml")
	require.NoError(t, err)
	assert.Equal(t, "theme3.xml", th.Name)
	assert.Equal(t, "Unknown", th.SchemeName)
	assert.Equal(t, "111111", th.Colors.Dk1)
	assert.Equal(t, "000000", th.Colors.Accent1)
}

func TestParse_NoScheme(t *testing.T) {
	doc := []byte(`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Bare"/>`)

	_, err := parse(doc, "theme1.xml")
	assert.Error(t, err)
}

func TestIsThemeEntry(t *testing.T) {
	assert.True(t, IsThemeEntry("ppt/theme/theme1.xml"))
	assert.True(t, IsThemeEntry("ppt/theme/theme12.xml"))
	assert.False(t, IsThemeEntry("ppt/theme/theme1.xml.rels"))
	assert.False(t, IsThemeEntry("ppt/theme/_rels/theme1.xml.rels"))
	assert.False(t, IsThemeEntry("ppt/slides/slide1.xml"))
	assert.False(t, IsThemeEntry("theme1.xml"))
}
