package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/loadboard/pkg/workload"
)

func extractCmd() *cobra.Command {
	var (
		id     string
		name   string
		order  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "extract <records.txt>",
		Short: "Convert a raw weekly export into a group fixture",
		Long: `Convert a raw weekly export into a YAML group fixture.

The export holds six lines per week: aerob, aralash, anaerob and
sakrash distances, then the sport and maxsus markers. Use "-" to
read standard input.

Examples:
  loadboard extract stg-3.txt --name="3-Guruh" --order=3 -o groups/stg-3.yaml
  cat export.txt | loadboard extract - --id=stg-4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			var in io.Reader = cmd.InOrStdin()
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			if id == "" {
				if src == "-" {
					return fmt.Errorf("--id is required when reading standard input")
				}
				id = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			}

			data, err := workload.ParseRecords(in, src)
			if err != nil {
				return err
			}
			g := workload.Group{ID: id, Name: name, Data: data}
			if g.Name == "" {
				g.Name = id
			}
			if err := g.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return workload.WriteYAML(out, g, order)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Group id (default: file name without extension)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (default: the id)")
	cmd.Flags().IntVar(&order, "order", 0, "Position in the group list")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the fixture to a file instead of stdout")
	return cmd
}
