package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a tree as indented text",
		Long: `Load a tree and print its text form.

Each element prints as an opening tag with its attributes, its text,
its children indented four more spaces, and a closing tag.

Examples:
  markup render page.json
  markup render page.yaml --indent 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if indent < 0 {
				return usageError("--indent must not be negative, got %d", indent)
			}
			arena, root, err := a.load(args[0])
			if err != nil {
				return err
			}
			r := render.NewRenderer(render.RendererConfig{Sink: render.Discard, Observer: a.collector, Logger: a.logger})
			fmt.Fprint(a.stdout, r.Render(arena, root, indent))
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 0, "Spaces before the top-level element")

	return cmd
}
