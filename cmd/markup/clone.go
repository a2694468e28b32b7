package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/codec"
	"github.com/vango-dev/markup/pkg/markup"
)

func cloneCmd(a *app) *cobra.Command {
	var (
		format string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "clone <file>",
		Short: "Print a copy of a tree with fresh identifiers",
		Long: `Clone the tree and print the copy as a structured map.

Every id in the copy gets a "_clone<N>" suffix that is unused in the
source. With --policy all, every attribute value is suffixed.

Examples:
  markup clone page.json
  markup clone page.json --format yaml --policy all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := codec.Format(format)
			if f != codec.JSON && f != codec.YAML {
				return usageError("--format must be json or yaml, got %q", format)
			}

			var extra []markup.Option
			if policy != "" {
				p := markup.ClonePolicy(policy)
				if p != markup.CloneIDs && p != markup.CloneAll {
					return usageError("--policy must be ids or all, got %q", policy)
				}
				extra = append(extra, markup.WithClonePolicy(p))
			}

			arena, root, err := a.load(args[0], extra...)
			if err != nil {
				return err
			}
			c, err := arena.Clone(markup.NoNode, root)
			if err != nil {
				return err
			}
			return codec.Encode(a.stdout, arena.ToMap(c), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&policy, "policy", "", "Clone policy: ids or all (default from markup.json)")

	return cmd
}
