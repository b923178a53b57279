package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/loadboard/pkg/tui"
	"github.com/vango-dev/loadboard/pkg/workload"
)

func tuiCmd(flags *rootFlags) *cobra.Command {
	var (
		group   string
		logFile string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse groups in the terminal",
		Long: `Browse groups and their yearly totals in the terminal.

Logs go to --log-file; without it they are discarded so they do not
draw over the screen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			logger := cfg.Log.NewLogger(w)

			groups, err := loadGroups(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			catalog := workload.NewCatalog(groups)
			store := workload.NewStore(catalog)
			defer store.Close()
			if group != "" {
				if _, err := catalog.Get(group); err != nil {
					return err
				}
				store.Select(group)
			}

			model := tui.New(store, tui.Options{Logger: logger})
			program := tea.NewProgram(model, tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

			dir := cfg.Data.Dir
			if !(watch || cfg.Data.Watch) || dir == "" {
				_, err := program.Run()
				return err
			}
			return runWatched(cmd.Context(), program, model, dir, catalog, logger)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Group to select first")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the fixture directory on change")
	return cmd
}

// runWatched runs program while a watcher feeds it reloads. The group rows
// are reconciled on the watcher goroutine before the program is told to
// redraw. The watcher stops when the program exits.
func runWatched(ctx context.Context, program *tea.Program, model *tui.Model, dir string, catalog *workload.Catalog, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	watcher := workload.NewWatcher(dir, catalog,
		workload.WithWatchLogger(logger),
		workload.OnReload(func([]workload.Group) {
			if err := model.Reload(); err != nil {
				logger.Warn("group reload failed", "error", err)
			}
			program.Send(tui.ReloadMsg{})
		}),
	)
	g.Go(func() error {
		return watcher.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	return g.Wait()
}
