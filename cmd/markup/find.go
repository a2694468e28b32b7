package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/render"
)

func findCmd(a *app) *cobra.Command {
	var (
		tag  string
		attr string
	)

	cmd := &cobra.Command{
		Use:   "find <file>",
		Short: "Print the elements matching a tag or attribute",
		Long: `Search a tree depth-first and print every match in document order.

Examples:
  markup find page.json --tag h1
  markup find page.json --attr class=myClass`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (tag == "") == (attr == "") {
				return usageError("exactly one of --tag or --attr is required")
			}
			var key, value string
			if attr != "" {
				var ok bool
				key, value, ok = strings.Cut(attr, "=")
				if !ok || key == "" {
					return usageError("--attr must look like key=value, got %q", attr)
				}
			}

			arena, root, err := a.load(args[0])
			if err != nil {
				return err
			}

			var matches []markup.NodeID
			if tag != "" {
				matches = arena.FindByTag(root, tag)
			} else {
				matches = arena.FindByAttr(root, key, value)
			}

			if len(matches) == 0 {
				a.warn("No matching elements")
				return nil
			}
			for _, id := range matches {
				fmt.Fprint(a.stdout, render.Render(arena, id, 0))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Tag name to match")
	cmd.Flags().StringVar(&attr, "attr", "", "Attribute to match, as key=value")

	return cmd
}
