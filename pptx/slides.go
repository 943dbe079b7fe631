package pptx

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ParseSlideRange parses a slide selection like "1,3,5-8" into a sorted,
// deduplicated list of slide numbers. An empty string selects every slide.
func ParseSlideRange(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	slides := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if strings.Contains(part, "-") {
			bounds := strings.Split(part, "-")
			if len(bounds) != 2 {
				return nil, fmt.Errorf("invalid range %q (expected a form like 1-5)", part)
			}
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid slide number %q", bounds[0])
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid slide number %q", bounds[1])
			}
			if start < 1 {
				return nil, fmt.Errorf("invalid slide number %d (must be at least 1)", start)
			}
			if start > end {
				return nil, fmt.Errorf("invalid range %d-%d (start after end)", start, end)
			}
			for i := start; i <= end; i++ {
				slides[i] = true
			}
			continue
		}

		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid slide number %q", part)
		}
		if num < 1 {
			return nil, fmt.Errorf("invalid slide number %d (must be at least 1)", num)
		}
		slides[num] = true
	}

	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides specified")
	}

	nums := make([]int, 0, len(slides))
	for num := range slides {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	return nums, nil
}

// buildSlideMapping maps visual slide numbers to entry names by reading the
// presentation manifest's slide list in order. File names are not trusted:
// slide order comes from the manifest, not from slideN numbering.
func buildSlideMapping(root string) (map[int]string, error) {
	manifest, err := os.ReadFile(filepath.Join(root, "ppt", "presentation.xml"))
	if err != nil {
		return nil, fmt.Errorf("read presentation manifest: %w", err)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(manifest))
	if err != nil {
		return nil, fmt.Errorf("parse presentation manifest: %w", err)
	}

	slideNodes := xmlquery.Find(doc, "//*[local-name()='sldIdLst']/*[local-name()='sldId']")
	if len(slideNodes) == 0 {
		return nil, fmt.Errorf("no slides in presentation manifest")
	}

	relsDoc, err := os.ReadFile(filepath.Join(root, "ppt", "_rels", "presentation.xml.rels"))
	if err != nil {
		return nil, fmt.Errorf("read presentation relationships: %w", err)
	}
	parsedRels, err := xmlquery.Parse(bytes.NewReader(relsDoc))
	if err != nil {
		return nil, fmt.Errorf("parse presentation relationships: %w", err)
	}

	mapping := make(map[int]string)
	for i, node := range slideNodes {
		// A sldId element carries both a numeric id and a prefixed
		// relationship id; only the prefixed one points at a part.
		rid := ""
		for _, attr := range node.Attr {
			if attr.Name.Local != "id" {
				continue
			}
			if attr.Name.Space != "" {
				rid = attr.Value
				break
			}
		}
		if rid == "" {
			continue
		}

		target := ""
		if rel := xmlquery.FindOne(parsedRels, "//*[local-name()='Relationship'][@Id='"+rid+"']"); rel != nil {
			target = rel.SelectAttr("Target")
		}
		if target == "" {
			continue
		}
		mapping[i+1] = path.Clean(path.Join("ppt", target))
	}
	return mapping, nil
}

// validateSlideNumbers rejects requests for slides the presentation does
// not have, reporting every missing number at once.
func validateSlideNumbers(mapping map[int]string, nums []int) error {
	var missing []string
	for _, num := range nums {
		if _, ok := mapping[num]; !ok {
			missing = append(missing, strconv.Itoa(num))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("slide(s) %s do not exist (presentation has %d slides)",
		strings.Join(missing, ", "), len(mapping))
}

// slideContent expands the requested slides into the full set of entry
// names their rewrite may touch: the slide parts themselves plus the
// charts, chart companions, diagram parts and notes slides reachable
// through each slide's relationship document.
func slideContent(root string, mapping map[int]string, nums []int) map[string]bool {
	parts := make(map[string]bool)

	for _, num := range nums {
		slide, ok := mapping[num]
		if !ok {
			continue
		}
		parts[slide] = true

		relsDoc, err := os.ReadFile(relsPath(root, slide))
		if err != nil {
			continue
		}
		parsed, err := xmlquery.Parse(bytes.NewReader(relsDoc))
		if err != nil {
			continue
		}

		for _, rel := range xmlquery.Find(parsed, "//*[local-name()='Relationship']") {
			relType := rel.SelectAttr("Type")
			target := rel.SelectAttr("Target")
			if target == "" {
				continue
			}

			switch {
			case strings.HasSuffix(relType, "/chart"):
				chart := resolveTarget(slide, target)
				parts[chart] = true
				for _, companion := range chartCompanions(root, chart) {
					parts[companion] = true
				}
			case isDiagramType(relType):
				parts[resolveTarget(slide, target)] = true
			case strings.HasSuffix(relType, "/notesSlide"):
				parts[resolveTarget(slide, target)] = true
			}
		}
	}

	return parts
}

// diagramTypeSuffixes are the five relationship kinds a diagram splits into.
var diagramTypeSuffixes = []string{
	"/diagramData",
	"/diagramLayout",
	"/diagramColors",
	"/diagramQuickStyle",
	"/diagramDrawing",
}

func isDiagramType(relType string) bool {
	for _, suffix := range diagramTypeSuffixes {
		if strings.HasSuffix(relType, suffix) {
			return true
		}
	}
	return false
}

// chartCompanions lists the XML parts a chart links to, such as its colors
// and style documents. Embedded workbook data is not XML and stays out.
func chartCompanions(root, chart string) []string {
	doc, err := os.ReadFile(relsPath(root, chart))
	if err != nil {
		return nil
	}
	parsed, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	var companions []string
	for _, rel := range xmlquery.Find(parsed, "//*[local-name()='Relationship']") {
		target := rel.SelectAttr("Target")
		if target == "" {
			continue
		}
		resolved := resolveTarget(chart, target)
		if strings.HasSuffix(resolved, ".xml") {
			companions = append(companions, resolved)
		}
	}
	return companions
}

// resolveTarget resolves a relationship target like "../charts/chart1.xml"
// against the directory of the owning part, yielding an entry name.
func resolveTarget(owner, target string) string {
	return path.Clean(path.Join(path.Dir(owner), target))
}

// relsPath locates a staged part's companion relationship document.
func relsPath(root, name string) string {
	return filepath.Join(root, filepath.FromSlash(path.Dir(name)), "_rels", path.Base(name)+".rels")
}
