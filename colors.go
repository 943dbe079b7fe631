package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"decktint/config"
	"decktint/logger"
	"decktint/model"
	"decktint/pptx"
	"decktint/theme"
)

var (
	listJSON     bool
	swapPreset   string
	swapThemes   []string
	swapSlides   string
	swapScope    string
	swapJobs     int
	swapYes      bool
	renameThemes []string
	renameYes    bool
)

var colorCmd = &cobra.Command{
	Use:     "color",
	Aliases: []string{"colour"},
	Short:   "Inspect and rewrite theme colors",
	Long:    "Inspect the color schemes of a presentation and rewrite scheme color references.",
}

var colorListCmd = &cobra.Command{
	Use:   "list <input.pptx>",
	Short: "List the color schemes defined by a presentation",
	Long:  "List every theme in the package with its color scheme name and the twelve scheme color slots.",
	Args:  cobra.ExactArgs(1),
	RunE:  runColorList,
}

var colorSwapCmd = &cobra.Command{
	Use:   "swap [mapping] <input.pptx> <output.pptx>",
	Short: "Swap scheme colors throughout a presentation",
	Long: "Rewrite scheme color references per a mapping like \"accent1:accent3,dk1:lt1\".\n" +
		"Each reference is replaced at most once, so swapping two colors never\n" +
		"cascades. The mapping argument can be replaced by --preset.",
	Args: cobra.RangeArgs(2, 3),
	RunE: runColorSwap,
}

var colorRenameCmd = &cobra.Command{
	Use:   "rename <new-name> <input.pptx> <output.pptx>",
	Short: "Rename the color scheme of a presentation's themes",
	Long:  "Give the color scheme of every selected theme a new display name.",
	Args:  cobra.ExactArgs(3),
	RunE:  runColorRename,
}

func init() {
	colorListCmd.Flags().BoolVar(&listJSON, "json", false, "Emit the theme inventory as JSON")

	colorSwapCmd.Flags().StringVar(&swapPreset, "preset", "", "Use a named mapping preset from decktint.config")
	colorSwapCmd.Flags().StringSliceVar(&swapThemes, "theme", nil, "Restrict the rewrite to the named themes (e.g. theme1,theme2)")
	colorSwapCmd.Flags().StringVar(&swapSlides, "slides", "", "Restrict the rewrite to a slide selection (e.g. 1,3,5-8)")
	colorSwapCmd.Flags().StringVar(&swapScope, "scope", "all", "Part families to rewrite: all, content or master")
	colorSwapCmd.Flags().IntVar(&swapJobs, "jobs", 4, "Number of parts to rewrite concurrently")
	colorSwapCmd.Flags().BoolVar(&swapYes, "yes", false, "Overwrite the output file without asking")

	colorRenameCmd.Flags().StringSliceVar(&renameThemes, "theme", nil, "Restrict the rename to the named themes")
	colorRenameCmd.Flags().BoolVar(&renameYes, "yes", false, "Overwrite the output file without asking")

	colorCmd.AddCommand(colorListCmd)
	colorCmd.AddCommand(colorSwapCmd)
	colorCmd.AddCommand(colorRenameCmd)
	rootCmd.AddCommand(colorCmd)
}

var themeHeaderStyle = lipgloss.NewStyle().Bold(true)

var schemeColorLabels = map[string]string{
	"dk1":      "Dark 1",
	"lt1":      "Light 1",
	"dk2":      "Dark 2",
	"lt2":      "Light 2",
	"accent1":  "Accent 1",
	"accent2":  "Accent 2",
	"accent3":  "Accent 3",
	"accent4":  "Accent 4",
	"accent5":  "Accent 5",
	"accent6":  "Accent 6",
	"hlink":    "Hyperlink",
	"folHlink": "Followed Hyperlink",
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color("#" + hex)).Render("  ")
}

func runColorList(cmd *cobra.Command, args []string) error {
	themes, err := theme.Read(args[0])
	if err != nil {
		return err
	}

	if listJSON {
		out, err := json.MarshalIndent(themes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(themes) == 0 {
		fmt.Println("No themes found.")
		return nil
	}

	for i, t := range themes {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(themeHeaderStyle.Render(fmt.Sprintf("%s (%s)", t.Name, t.FileName)))
		fmt.Printf("  Color scheme: %s\n", t.SchemeName)
		for _, name := range model.SchemeColorNames {
			hex := t.Colors.Color(name)
			fmt.Printf("  %s %-8s %-18s #%s\n", swatch(hex), name, schemeColorLabels[name], hex)
		}
	}
	return nil
}

func runColorSwap(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var mappingArg, input, output string
	switch len(args) {
	case 3:
		mappingArg, input, output = args[0], args[1], args[2]
	case 2:
		input, output = args[0], args[1]
	}

	if swapPreset != "" {
		if mappingArg != "" {
			return fmt.Errorf("cannot combine a mapping argument with --preset")
		}
		mappingArg, err = cfg.Preset(swapPreset)
		if err != nil {
			return err
		}
	}
	if mappingArg == "" {
		return fmt.Errorf("no mapping given (pass one as an argument or use --preset)")
	}

	mapping, err := model.ParseMapping(mappingArg)
	if err != nil {
		return err
	}

	slides, err := pptx.ParseSlideRange(swapSlides)
	if err != nil {
		return err
	}

	scopeValue := swapScope
	if !cmd.Flags().Changed("scope") && cfg.DefaultScope != "" {
		scopeValue = cfg.DefaultScope
	}
	scope, err := pptx.ParseScope(scopeValue)
	if err != nil {
		return err
	}

	jobs := swapJobs
	if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
		jobs = cfg.Jobs
	}

	if err := confirmOverwrite(cmd, output, swapYes); err != nil {
		return err
	}

	fmt.Printf("Processing %s...\n", input)
	fmt.Printf("  Mappings: %s\n", strings.Join(mapping.Pairs(), ", "))
	if len(swapThemes) > 0 {
		fmt.Printf("  Themes: %s\n", strings.Join(model.NormalizeThemeNames(swapThemes), ", "))
	}
	if len(slides) > 0 {
		fmt.Printf("  Slides: %s\n", joinInts(slides))
	}
	if scope != pptx.ScopeAll {
		fmt.Printf("  Scope: %s\n", scope)
	}

	res, err := pptx.Transform(input, output, pptx.Options{
		Mapping:      mapping,
		ThemeFilter:  swapThemes,
		Slides:       slides,
		Scope:        scope,
		Jobs:         jobs,
		StrictThemes: true,
		Progress: func(stage, message string) {
			logger.Debug(message, "stage", stage)
		},
	})
	if err != nil {
		return err
	}

	if len(slides) > 0 && res.SlidesMatched == 0 {
		logger.Warn("no requested slide matched the theme filter")
	}
	fmt.Printf("✓ Successfully processed %d of %d files\n", res.Changed, res.Scanned)
	if len(slides) > 0 {
		fmt.Printf("  Slides matched: %d\n", res.SlidesMatched)
	}
	fmt.Printf("✓ Output saved to %s\n", output)
	return nil
}

func runColorRename(cmd *cobra.Command, args []string) error {
	newName, input, output := args[0], args[1], args[2]

	if err := confirmOverwrite(cmd, output, renameYes); err != nil {
		return err
	}

	renamed, err := pptx.RenameScheme(input, output, newName, renameThemes, true)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Renamed %d color scheme(s) to %q\n", renamed, newName)
	fmt.Printf("✓ Output saved to %s\n", output)
	return nil
}

// confirmOverwrite asks before clobbering an existing output file unless
// the command runs with --yes.
func confirmOverwrite(cmd *cobra.Command, output string, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if _, err := os.Stat(output); err != nil {
		return nil
	}

	fmt.Printf("%s already exists. Overwrite? [y/N] ", output)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		return fmt.Errorf("aborted")
	}
	return nil
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
