// Package rewrite performs the attribute-level scheme color substitution
// on individual XML documents.
package rewrite

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"decktint/model"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// SchemeColors rewrites scheme color references in one XML document
// according to the mapping and reports how many references changed.
//
// Each substitution looks up the element's original value, so chained
// mappings never cascade: {accent1→accent3, accent3→accent4} turns
// [accent1, accent3] into [accent3, accent4], and a circular mapping is a
// clean swap. Elements whose value has no mapping entry are left alone.
//
// A document that fails to parse, and a document in which nothing matched,
// come back as the original byte slice with a zero count. Callers can rely
// on that: untouched documents are byte-identical to their input.
func SchemeColors(doc []byte, mapping model.Mapping) ([]byte, int) {
	if len(mapping) == 0 {
		return doc, 0
	}

	parsed, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return doc, 0
	}
	if rootElement(parsed) == nil {
		// The parser tolerates bare text; without a root element this is
		// not an XML document and must pass through untouched.
		return doc, 0
	}

	changed := 0
	for _, node := range xmlquery.Find(parsed, "//*[local-name()='schemeClr']") {
		for i := range node.Attr {
			if node.Attr[i].Name.Local != "val" {
				continue
			}
			if replacement, ok := mapping[node.Attr[i].Value]; ok {
				node.Attr[i].Value = replacement
				changed++
			}
			break
		}
	}

	if changed == 0 {
		return doc, 0
	}
	return serialize(parsed), changed
}

// rootElement returns the document's root element, if any.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// serialize renders the document back to bytes, keeping its declaration or
// supplying a standard one. Re-serialization may normalize incidental
// formatting; documents with zero substitutions never reach it.
func serialize(doc *xmlquery.Node) []byte {
	out := doc.OutputXML(false)
	if !strings.HasPrefix(out, "<?xml") {
		out = xmlHeader + out
	}
	return []byte(out)
}
