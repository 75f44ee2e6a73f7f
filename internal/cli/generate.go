package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fsh/qplanarity/pkg/graph"
	"github.com/fsh/qplanarity/pkg/session"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  puzzleFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a scrambled planar graph",
		Long: `Generate a random connected planar graph, place its vertices on a
circle in scrambled order and write the puzzle as JSON.

Without --output the puzzle is written to stdout.`,
		Example: `  # 40 vertices with a fixed seed
  qplanarity generate -n 40 --seed 7 -o puzzle.json

  # Sparse graph with large holes, printed to stdout
  qplanarity generate --denseness 0.1 --sparseness 0.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			prog := newProgress(logger)
			var spinner *Spinner
			if output != "" {
				spinner = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Generating %d vertices...", cfg.Generator.Nodes))
				spinner.Start()
			}
			sess, err := session.New(ctx, sessionOptions(cfg, logger))
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %d vertices", sess.Vertices()))

			puzzle := sess.Puzzle()
			if output == "" {
				return graph.WritePuzzle(puzzle, cmd.OutOrStdout())
			}
			if err := graph.WritePuzzleFile(puzzle, output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := sess.Progress()
			printSuccess(out, "Generated puzzle %s", StyleHighlight.Render(puzzle.ID))
			printStats(out, puzzle.Vertices, len(puzzle.Edges), p.Tangled())
			printDetail(out, "seed %d", *cfg.Generator.Seed)
			printFile(out, output)
			printNextStep(out, "Untangle it", fmt.Sprintf("%s play %s", appName, output))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
