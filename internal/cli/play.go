package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fsh/qplanarity/pkg/graph"
	"github.com/fsh/qplanarity/pkg/session"
)

func (c *CLI) playCommand() *cobra.Command {
	var (
		flags   puzzleFlags
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "play [puzzle.json]",
		Short: "Untangle a puzzle in the terminal",
		Long: `Play a puzzle interactively. Select a vertex with tab, nudge it with the
arrow keys and watch tangled lines (red) turn green. Without a file a new
puzzle is generated from the config and flags.

The terminal is taken over while playing, so logs go to --log-file or are
discarded.`,
		Example: `  qplanarity play -n 12
  qplanarity play puzzle.json --log-file play.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			logger, closeLog, err := newFileLogger(logFile, c.Logger.GetLevel())
			if err != nil {
				return err
			}
			defer closeLog()

			var sess *session.Session
			if len(args) == 1 {
				puzzle, err := graph.ReadPuzzleFile(args[0])
				if err != nil {
					return err
				}
				sess, err = session.FromPuzzle(ctx, puzzle, session.Options{
					Layout:  cfg.LayoutOptions(),
					Workers: cfg.Tracker.Workers,
					Logger:  logger,
				})
				if err != nil {
					return err
				}
			} else {
				sess, err = session.New(ctx, sessionOptions(cfg, logger))
				if err != nil {
					return err
				}
			}

			final, err := tea.NewProgram(newPlayModel(ctx, sess),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}

			m := final.(playModel)
			out := cmd.OutOrStdout()
			if m.solved {
				printSuccess(out, "Untangled %s in %d moves", StyleHighlight.Render(shortID(sess.ID)), sess.Moves())
				return nil
			}
			printInfo(out, "Stopped after %d moves: %s", sess.Moves(), m.progress)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while playing")
	return cmd
}
