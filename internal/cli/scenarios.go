package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/treelab/internal/markup"
	"github.com/roach88/treelab/internal/scenario"
)

// ScenariosOptions holds flags for the scenarios command.
type ScenariosOptions struct {
	*RootOptions
	Show string // scenario id to show in full
}

// ScenarioSummary is one catalog entry in JSON output.
type ScenarioSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Level    string `json:"level,omitempty"`
	Checks   int    `json:"checks"`
	MaxScore int    `json:"max_score"`
	Default  bool   `json:"default,omitempty"`
}

// ScenarioDetail is the JSON payload of scenarios --show.
type ScenarioDetail struct {
	ScenarioSummary
	Description string        `json:"description,omitempty"`
	Starter     string        `json:"starter"`
	Target      string        `json:"target"`
	CheckList   []CheckDetail `json:"check_list"`
}

// CheckDetail describes one check without its predicate.
type CheckDetail struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenariosOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List practice scenarios",
		Long: `List the scenario catalog: the builtin scenarios plus any loaded with --catalog.

With --show, print one scenario's checks with its starter and target markup.

Examples:
  treelab scenarios
  treelab scenarios --show level-2-hero
  treelab scenarios --catalog ./scenarios --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Show, "show", "", "show one scenario in full")

	return cmd
}

func runScenarios(opts *ScenariosOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	catalog, err := opts.LoadCatalog()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}

	if opts.Show != "" {
		s, ok := catalog.Get(opts.Show)
		if !ok {
			return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("unknown scenario %q", opts.Show), nil)
		}
		detail := scenarioDetail(catalog, s)
		if formatter.JSON() {
			return formatter.Success(detail)
		}
		writeScenarioDetail(formatter.Writer, detail)
		return nil
	}

	summaries := make([]ScenarioSummary, 0, catalog.Len())
	for _, s := range catalog.All() {
		summaries = append(summaries, summarize(catalog, s))
	}
	if formatter.JSON() {
		return formatter.Success(summaries)
	}
	for _, s := range summaries {
		marker := " "
		if s.Default {
			marker = "*"
		}
		fmt.Fprintf(formatter.Writer, "%s %-24s %-32s %d checks\n", marker, s.ID, s.Title, s.Checks)
	}
	return nil
}

func summarize(catalog *scenario.Catalog, s *scenario.Scenario) ScenarioSummary {
	return ScenarioSummary{
		ID:       s.ID,
		Title:    s.Title,
		Level:    s.Level,
		Checks:   len(s.Checks),
		MaxScore: s.MaxScore(),
		Default:  s.ID == catalog.DefaultID(),
	}
}

func scenarioDetail(catalog *scenario.Catalog, s *scenario.Scenario) ScenarioDetail {
	checks := make([]CheckDetail, len(s.Checks))
	for i, c := range s.Checks {
		checks[i] = CheckDetail{ID: c.ID, Label: c.Label, Weight: c.Weight}
	}
	return ScenarioDetail{
		ScenarioSummary: summarize(catalog, s),
		Description:     s.Description,
		Starter:         markup.Serialize(s.Starter),
		Target:          markup.Serialize(s.Target),
		CheckList:       checks,
	}
}

func writeScenarioDetail(w io.Writer, d ScenarioDetail) {
	fmt.Fprintln(w, boldText("%s: %s", d.ID, d.Title))
	if d.Description != "" {
		fmt.Fprintln(w, d.Description)
	}
	fmt.Fprintln(w, "\nChecks:")
	for _, c := range d.CheckList {
		fmt.Fprintf(w, "  %-16s %-40s %s\n", c.ID, c.Label, formatWeight(c.Weight))
	}
	fmt.Fprintf(w, "  max score: %d\n", d.MaxScore)
	fmt.Fprintln(w, "\nStarter:")
	fmt.Fprintln(w, "  "+d.Starter)
	fmt.Fprintln(w, "\nTarget:")
	fmt.Fprintln(w, "  "+d.Target)
}
