package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fsh/qplanarity/pkg/graph"
	"github.com/fsh/qplanarity/pkg/planar"
	"github.com/fsh/qplanarity/pkg/session"
)

func (c *CLI) checkCommand() *cobra.Command {
	var (
		strict    bool
		crossings bool
	)

	cmd := &cobra.Command{
		Use:   "check <puzzle.json>",
		Short: "Report which lines of a puzzle cross",
		Long: `Load a puzzle file, compute every crossing of its drawing and report how
many lines are untangled. Puzzles without positions are laid out on a circle
first.`,
		Example: `  qplanarity check puzzle.json
  qplanarity check --crossings --strict solved.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			puzzle, err := graph.ReadPuzzleFile(args[0])
			if err != nil {
				return err
			}
			if !puzzle.HasPositions() {
				logger.Warn("puzzle has no positions, using the configured layout")
			}

			sess, err := session.FromPuzzle(ctx, puzzle, session.Options{
				Layout:  cfg.LayoutOptions(),
				Workers: cfg.Tracker.Workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := sess.Progress()
			printStats(out, sess.Vertices(), p.Total, p.Tangled())
			printKeyValue(out, "progress", progressBar(p, 20))
			if crossings && !p.Solved() {
				printCrossings(out, sess.Crossings())
			}

			if sess.Release(ctx) {
				printSuccess(out, "Solved: no lines cross")
				return nil
			}
			printWarning(out, "%d lines still tangled", p.Tangled())
			if strict {
				return fmt.Errorf("puzzle %s is not solved: %s", args[0], p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error unless the drawing is planar")
	cmd.Flags().BoolVar(&crossings, "crossings", false, "list every tangled line and what it crosses")
	return cmd
}

// printCrossings renders the crossing relation as a table, one row per
// tangled edge.
func printCrossings(w io.Writer, crossings map[planar.Edge][]planar.Edge) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for _, e := range slices.SortedFunc(maps.Keys(crossings), planar.Compare) {
		others := make([]string, len(crossings[e]))
		for i, o := range crossings[e] {
			others[i] = o.String()
		}
		rows = append(rows, []string{e.String(), fmt.Sprint(len(others)), strings.Join(others, " ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Line", "Count", "Crosses").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleTangled
			}
			return StyleValue
		})
	fmt.Fprintln(w, t.Render())
}
