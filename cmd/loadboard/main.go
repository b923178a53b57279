package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/loadboard/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "loadboard",
		Short: "Weekly training load dashboard",
		Long: `Loadboard serves the weekly training load dashboard.

Group fixtures are read from a directory, an S3 bucket or the
bundled set, rendered as a live web page and kept in sync with
connected browsers. The same data can be browsed in a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configDir, "config", "c", ".", "Directory containing loadboard.json")
	pf.StringVarP(&flags.dataDir, "data", "d", "", "Fixture directory (overrides data.dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		serveCmd(flags),
		tuiCmd(flags),
		extractCmd(),
		groupsCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// printError renders structured errors with their hint and location.
func printError(w io.Writer, err error) {
	var le *errors.Error
	if stderrors.As(err, &le) {
		fmt.Fprintln(w, le.Format())
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}
