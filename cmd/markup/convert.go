package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/codec"
)

func convertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a tree between JSON and YAML",
		Long: `Read a tree, check it, and write it in the format of the output file.

The tree is built in full first, so invalid tags and duplicate
identifiers are reported before anything is written.

Examples:
  markup convert page.json page.yaml
  markup convert page.yml page.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := codec.FormatFromPath(args[1]); err != nil {
				return err
			}
			arena, root, err := a.load(args[0])
			if err != nil {
				return err
			}
			if err := codec.WriteFile(args[1], arena.ToMap(root)); err != nil {
				return err
			}
			a.success("Converted %s -> %s", args[0], args[1])
			a.info("%d elements", arena.Len())
			return nil
		},
	}

	return cmd
}
