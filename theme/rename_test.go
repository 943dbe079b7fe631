package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Brand Colors"))
	assert.NoError(t, ValidateName(strings.Repeat("x", 255)))

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("x", 256)))
	for _, c := range []string{".", "/", `\`, "?", ":", "*"} {
		assert.Error(t, ValidateName("bad"+c+"name"), "character %q", c)
	}
}

func TestRenameScheme_OnlyNameChanges(t *testing.T) {
	doc := themeXML("Office Theme", "Office")

	out, ok := RenameScheme(doc, "Brand")
	require.True(t, ok)

	want := bytes.Replace(doc,
		[]byte(`<a:clrScheme name="Office">`),
		[]byte(`<a:clrScheme name="Brand">`), 1)
	assert.Equal(t, want, out)
}

func TestRenameScheme_ThemeRootSharesName(t *testing.T) {
	doc := themeXML("Office", "Office")

	out, ok := RenameScheme(doc, "Brand")
	require.True(t, ok)

	// The theme element keeps its display name; only the scheme renames.
	s := string(out)
	assert.Equal(t, 1, strings.Count(s, `name="Office"`))
	assert.Less(t, strings.Index(s, `name="Office"`), strings.Index(s, "clrScheme"))
	assert.Contains(t, s, `<a:clrScheme name="Brand">`)
}

func TestRenameScheme_AlreadyNamed(t *testing.T) {
	doc := themeXML("Office Theme", "Office")

	out, ok := RenameScheme(doc, "Office")
	assert.True(t, ok)
	assert.Equal(t, doc, out)
}

func TestRenameScheme_NoScheme(t *testing.T) {
	doc := []byte(`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="X"/>`)

	out, ok := RenameScheme(doc, "Brand")
	assert.False(t, ok)
	assert.Equal(t, doc, out)
}

func TestRenameScheme_Unparsable(t *testing.T) {
	doc := []byte("<broken")

	out, ok := RenameScheme(doc, "Brand")
	assert.False(t, ok)
	assert.Equal(t, doc, out)
}
