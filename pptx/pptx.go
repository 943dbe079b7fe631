package pptx

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"decktint/model"
	"decktint/rels"
	"decktint/rewrite"
)

// Scope selects which part families a rewrite touches.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeContent Scope = "content"
	ScopeMaster  Scope = "master"
)

// ParseScope validates a scope flag value. An empty string means ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeContent, ScopeMaster:
		return Scope(s), nil
	}
	return "", fmt.Errorf("invalid scope %q (valid: all, content, master)", s)
}

var contentPrefixes = []string{
	"ppt/slides/",
	"ppt/charts/",
	"ppt/diagrams/",
	"ppt/notesSlides/",
}

var masterPrefixes = []string{
	"ppt/slideMasters/",
	"ppt/slideLayouts/",
	"ppt/notesMasters/",
	"ppt/handoutMasters/",
}

func (s Scope) prefixes() []string {
	switch s {
	case ScopeContent:
		return contentPrefixes
	case ScopeMaster:
		return masterPrefixes
	}
	return append(append([]string{}, contentPrefixes...), masterPrefixes...)
}

// Options control one package transformation.
type Options struct {
	// Mapping holds the scheme color replacements. An empty mapping copies
	// the package unchanged.
	Mapping model.Mapping

	// ThemeFilter restricts the rewrite to parts attributable to the named
	// themes. Short and file-name forms are accepted; nil means all themes.
	ThemeFilter []string

	// Slides restricts the rewrite to the numbered slides and the content
	// attached to them. Nil means every slide.
	Slides []int

	// Scope restricts the rewrite to a part family. Empty means ScopeAll.
	Scope Scope

	// Jobs bounds how many parts are rewritten concurrently. Values below
	// one mean sequential.
	Jobs int

	// StrictThemes rejects filter entries that name no theme in the
	// package instead of silently matching nothing.
	StrictThemes bool

	// Progress, when set, receives coarse stage updates. It is never
	// called from more than one goroutine at a time.
	Progress func(stage, message string)
}

// Result reports what one transformation touched.
type Result struct {
	Scanned       int // candidate parts examined
	Changed       int // parts rewritten
	Replacements  int // individual color references changed
	SlidesMatched int // requested slides still eligible after filtering
}

// Transform rewrites scheme color references in a presentation package and
// writes the result to a new package at output.
//
// The input archive is staged to a temporary directory, the theme graph is
// built once, each candidate part is classified and rewritten, and the
// staged tree is repacked with the input's exact entry set and order.
// Untouched parts are carried over byte for byte.
func Transform(input, output string, opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string, string) {}
	}

	scope, err := ParseScope(string(opts.Scope))
	if err != nil {
		return nil, err
	}
	if err := checkPackage(input); err != nil {
		return nil, err
	}

	staging, entries, err := stage(input)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(staging)
	progress("stage", fmt.Sprintf("extracted %d entries", len(entries)))

	graph := rels.BuildGraph(staging)
	if opts.StrictThemes {
		if err := graph.ValidateFilter(opts.ThemeFilter); err != nil {
			return nil, err
		}
	}

	var slideMap map[int]string
	var slideParts map[string]bool
	if len(opts.Slides) > 0 {
		slideMap, err = buildSlideMapping(staging)
		if err != nil {
			return nil, err
		}
		if err := validateSlideNumbers(slideMap, opts.Slides); err != nil {
			return nil, err
		}
		slideParts = slideContent(staging, slideMap, opts.Slides)
	}

	cls := classifier{
		root:     staging,
		graph:    graph,
		filter:   themeFilterSet(opts.ThemeFilter),
		prefixes: scope.prefixes(),
		only:     slideParts,
	}

	var candidates []string
	for _, e := range entries {
		if !e.dir && cls.include(e.name) {
			candidates = append(candidates, e.name)
		}
	}

	res := &Result{Scanned: len(candidates)}
	if len(opts.Slides) > 0 {
		res.SlidesMatched = matchedSlides(slideMap, opts.Slides, candidates)
	}
	progress("classify", fmt.Sprintf("%d candidate parts", len(candidates)))

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := make(chan struct{}, jobs)
	for _, name := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()

			dest := filepath.Join(staging, filepath.FromSlash(name))
			doc, err := os.ReadFile(dest)
			if err != nil {
				return
			}
			out, n := rewrite.SchemeColors(doc, opts.Mapping)
			if n == 0 {
				return
			}
			if err := os.WriteFile(dest, out, 0o644); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("write part %s: %w", name, err)
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			res.Changed++
			res.Replacements += n
			progress("rewrite", fmt.Sprintf("%s: %d references", name, n))
			mu.Unlock()
		}(name)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	if err := repack(staging, entries, output); err != nil {
		return nil, err
	}
	progress("repack", fmt.Sprintf("wrote %s", output))

	return res, nil
}

// classifier decides which staged parts a run may rewrite.
type classifier struct {
	root     string
	graph    *rels.Graph
	filter   map[string]bool // theme file names, nil means no filter
	prefixes []string
	only     map[string]bool // slide-content restriction, nil means unrestricted
}

// include applies the allow-list, the scope, the slide restriction, and the
// theme filter to one entry name.
func (c *classifier) include(name string) bool {
	if !strings.HasSuffix(name, ".xml") {
		return false
	}

	allowed := false
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(name, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	if c.only != nil && !c.only[name] {
		return false
	}

	if c.filter == nil {
		return true
	}

	// Slides, layouts and masters answer to the theme filter when their
	// theme can be resolved; anything unresolved is included rather than
	// silently dropped. Charts, diagrams and notes carry no theme of
	// their own and are always included.
	switch {
	case strings.HasPrefix(name, "ppt/slides/"):
		if theme := c.slideTheme(name); theme != "" {
			return c.filter[theme]
		}
	case strings.HasPrefix(name, "ppt/slideLayouts/"):
		if theme, ok := c.graph.ThemeForLayout(path.Base(name)); ok {
			return c.filter[theme]
		}
	case strings.HasPrefix(name, "ppt/slideMasters/"):
		if theme, ok := c.graph.ThemeForMaster(path.Base(name)); ok {
			return c.filter[theme]
		}
	}
	return true
}

// slideTheme follows slide to layout to master to theme; empty means the
// chain could not be resolved.
func (c *classifier) slideTheme(name string) string {
	doc, err := os.ReadFile(relsPath(c.root, name))
	if err != nil {
		return ""
	}
	layout, ok := rels.Resolve(doc, rels.TypeSlideLayout)
	if !ok {
		return ""
	}
	theme, ok := c.graph.ThemeForLayout(layout)
	if !ok {
		return ""
	}
	return theme
}

// themeFilterSet normalizes filter entries to file-name form for matching.
func themeFilterSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range model.NormalizeThemeNames(names) {
		set[name] = true
	}
	return set
}

// matchedSlides counts how many requested slides survived classification.
func matchedSlides(mapping map[int]string, nums []int, candidates []string) int {
	set := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		set[name] = true
	}
	matched := 0
	for _, num := range nums {
		if set[mapping[num]] {
			matched++
		}
	}
	return matched
}
