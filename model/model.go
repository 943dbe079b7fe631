package model

import (
	"fmt"
	"sort"
	"strings"
)

// SchemeColorNames lists the twelve scheme color slots in their
// conventional order.
var SchemeColorNames = []string{
	"dk1", "lt1", "dk2", "lt2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

// ValidSchemeColors is the set of recognized scheme color names.
var ValidSchemeColors = map[string]bool{
	"dk1":      true,
	"lt1":      true,
	"dk2":      true,
	"lt2":      true,
	"accent1":  true,
	"accent2":  true,
	"accent3":  true,
	"accent4":  true,
	"accent5":  true,
	"accent6":  true,
	"hlink":    true,
	"folHlink": true,
}

// Mapping maps source scheme color names to their replacements. A mapping
// is built once by ParseMapping and treated as read-only afterwards.
type Mapping map[string]string

// ParseMapping parses a mapping string of the form "src:dst,src:dst".
//
// Every source and target must be one of the twelve scheme color names.
// A source given twice with different targets is a conflict; repeating an
// identical pair is tolerated.
func ParseMapping(s string) (Mapping, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("mapping cannot be empty")
	}

	m := make(Mapping)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid mapping %q: expected source:target", pair)
		}

		source := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])
		if source == "" || target == "" {
			return nil, fmt.Errorf("invalid mapping %q: source and target cannot be empty", pair)
		}

		if !ValidSchemeColors[source] {
			return nil, fmt.Errorf("invalid source color %q: must be one of %s", source, validNames())
		}
		if !ValidSchemeColors[target] {
			return nil, fmt.Errorf("invalid target color %q: must be one of %s", target, validNames())
		}

		if existing, ok := m[source]; ok {
			if existing != target {
				return nil, fmt.Errorf("conflicting mappings for %q: %s and %s", source, existing, target)
			}
			continue
		}
		m[source] = target
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("no mappings given")
	}
	return m, nil
}

// Pairs renders the mapping as "src→dst" strings sorted by source name.
func (m Mapping) Pairs() []string {
	sources := make([]string, 0, len(m))
	for source := range m {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	pairs := make([]string, len(sources))
	for i, source := range sources {
		pairs[i] = fmt.Sprintf("%s→%s", source, m[source])
	}
	return pairs
}

func validNames() string {
	return strings.Join(SchemeColorNames, ", ")
}

// NormalizeThemeNames converts short theme identifiers ("theme1") to their
// file-name form ("theme1.xml"). Already-qualified names pass through.
func NormalizeThemeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, name := range names {
		if strings.HasSuffix(name, ".xml") {
			out[i] = name
		} else {
			out[i] = name + ".xml"
		}
	}
	return out
}

type ColorScheme struct {
	Dk1      string `json:"dk1"`
	Lt1      string `json:"lt1"`
	Dk2      string `json:"dk2"`
	Lt2      string `json:"lt2"`
	Accent1  string `json:"accent1"`
	Accent2  string `json:"accent2"`
	Accent3  string `json:"accent3"`
	Accent4  string `json:"accent4"`
	Accent5  string `json:"accent5"`
	Accent6  string `json:"accent6"`
	Hlink    string `json:"hlink"`
	FolHlink string `json:"folHlink"`
}

// Color returns the hex value stored in the named slot.
func (c ColorScheme) Color(name string) string {
	switch name {
	case "dk1":
		return c.Dk1
	case "lt1":
		return c.Lt1
	case "dk2":
		return c.Dk2
	case "lt2":
		return c.Lt2
	case "accent1":
		return c.Accent1
	case "accent2":
		return c.Accent2
	case "accent3":
		return c.Accent3
	case "accent4":
		return c.Accent4
	case "accent5":
		return c.Accent5
	case "accent6":
		return c.Accent6
	case "hlink":
		return c.Hlink
	case "folHlink":
		return c.FolHlink
	}
	return ""
}

// SetColor stores a hex value in the named slot. Unknown names are ignored.
func (c *ColorScheme) SetColor(name, value string) {
	switch name {
	case "dk1":
		c.Dk1 = value
	case "lt1":
		c.Lt1 = value
	case "dk2":
		c.Dk2 = value
	case "lt2":
		c.Lt2 = value
	case "accent1":
		c.Accent1 = value
	case "accent2":
		c.Accent2 = value
	case "accent3":
		c.Accent3 = value
	case "accent4":
		c.Accent4 = value
	case "accent5":
		c.Accent5 = value
	case "accent6":
		c.Accent6 = value
	case "hlink":
		c.Hlink = value
	case "folHlink":
		c.FolHlink = value
	}
}

type Theme struct {
	FileName   string      `json:"file_name"`
	Name       string      `json:"theme_name"`
	SchemeName string      `json:"color_scheme_name"`
	Colors     ColorScheme `json:"colors"`
}
