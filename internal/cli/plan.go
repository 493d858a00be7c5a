package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/optio/pkg/errors"
	"github.com/matzehuels/optio/pkg/pipeline"
	"github.com/matzehuels/optio/pkg/transform"
)

// planOpts holds the flags of the plan command.
type planOpts struct {
	trace       string // forward-trace this text
	traceSet    bool
	json        bool
	interactive bool
}

// planReport is the JSON form of the plan command's output.
type planReport struct {
	Plan   pipeline.Plan    `json:"plan"`
	Stages []pipeline.Stage `json:"stages,omitempty"`
}

// planCommand creates the plan command for inspecting what a passphrase derives.
func (c *CLI) planCommand() *cobra.Command {
	var (
		keys keyOpts
		opts planOpts
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the parameters and transform order for a passphrase",
		Long: `Show the seed, the transform parameters and the transform order that a
passphrase derives.

With --trace, the given text is run forward through the plan and the text
after every stage is shown. Add --interactive to browse the stages.`,
		Example: `  optio plan -k test
  optio plan -k test --trace "Hello, World!"
  optio plan -k test --trace "Hello, World!" --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.traceSet = cmd.Flags().Changed("trace")
			key, _, err := c.resolveKey(keys)
			if err != nil {
				return err
			}
			return c.runPlan(cmd, key, opts)
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&opts.trace, "trace", "", "show every intermediate stage for this text")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "browse traced stages interactively (requires --trace)")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")

	return cmd
}

func (c *CLI) runPlan(cmd *cobra.Command, key string, opts planOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	plan := pipeline.NewPlan(key)
	var stages []pipeline.Stage
	if opts.traceSet {
		stages = plan.Trace(opts.trace, key, transform.Forward)
	}
	prog.done("Derived plan", "stages", len(stages))

	w := cmd.OutOrStdout()
	switch {
	case opts.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(planReport{Plan: plan, Stages: stages})
	case opts.interactive:
		if !opts.traceSet {
			return errors.New(errors.ErrCodeInvalidInput, "--interactive requires --trace")
		}
		p := tea.NewProgram(NewStageListModel(opts.trace, stages),
			tea.WithInput(cmd.InOrStdin()), tea.WithOutput(w))
		_, err := p.Run()
		return err
	}

	printPlan(w, plan)
	if opts.traceSet {
		printNewline(w)
		printStages(w, opts.trace, stages)
	}
	return nil
}

// printPlan prints the seed and one table row per transform in plan order.
func printPlan(w io.Writer, plan pipeline.Plan) {
	printKeyValue(w, "seed", strconv.FormatUint(uint64(plan.Seed), 10))
	printKeyValue(w, "transforms", strconv.Itoa(len(plan.Order)))
	printNewline(w)

	rows := make([][]string, len(plan.Order))
	for i, k := range plan.Order {
		rows[i] = []string{strconv.Itoa(i + 1), k.String(), plan.Params.Describe(k)}
	}

	fmt.Fprintln(w, newTable([]string{"#", "Transform", "Parameters"}, rows).Render())
}

// printStages prints the traced text after every stage.
func printStages(w io.Writer, input string, stages []pipeline.Stage) {
	fmt.Fprintln(w, StyleTitle.Render("Trace"))
	printKeyValue(w, "input", strconv.Quote(input))

	rows := make([][]string, len(stages))
	for i, s := range stages {
		rows[i] = []string{strconv.Itoa(i + 1), s.Kind.String(), strconv.Quote(s.Output)}
	}
	fmt.Fprintln(w, newTable([]string{"#", "Transform", "Output"}, rows).Render())
}

// newTable builds the table style shared by the plan and trace output.
func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleNumber
			case col == 2:
				return StyleDim
			}
			return StyleValue
		})
}
