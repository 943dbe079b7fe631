package theme

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// invalidNameChars are the characters PowerPoint rejects in scheme names.
const invalidNameChars = `./\?:*`

// ValidateName checks whether a string is usable as a color scheme name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("name exceeds 255 characters")
	}
	if i := strings.IndexAny(name, invalidNameChars); i >= 0 {
		return fmt.Errorf("name contains invalid character %q (not allowed: . / \\ ? : *)", name[i])
	}
	return nil
}

// RenameScheme replaces a theme document's color scheme name and reports
// whether a rename happened. Only the name attribute changes; every other
// byte of the document keeps its original form.
//
// Documents that do not parse, carry no color scheme, or name it with an
// empty string come back unchanged.
func RenameScheme(doc []byte, newName string) ([]byte, bool) {
	parsed, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return doc, false
	}

	scheme := xmlquery.FindOne(parsed, "//*[local-name()='clrScheme']")
	if scheme == nil {
		return doc, false
	}
	current := scheme.SelectAttr("name")
	if current == "" {
		return doc, false
	}
	if current == newName {
		// Already named as requested; count it as renamed so callers do
		// not report a scheme they selected as skipped.
		return doc, true
	}

	// Replace the name attribute in the raw bytes so the rest of the
	// document stays untouched. The search starts at the clrScheme tag:
	// the theme root often carries the same display name and must keep it.
	idx := bytes.Index(doc, []byte("clrScheme"))
	if idx < 0 {
		return doc, false
	}
	oldAttr := []byte(`name="` + current + `"`)
	newAttr := []byte(`name="` + newName + `"`)
	tail := bytes.Replace(doc[idx:], oldAttr, newAttr, 1)
	if bytes.Equal(tail, doc[idx:]) {
		return doc, false
	}

	out := make([]byte, 0, idx+len(tail))
	out = append(out, doc[:idx]...)
	out = append(out, tail...)
	return out, true
}
