package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperoop/internal/demo"
	"github.com/vango-dev/hyperoop/pkg/render"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [app]",
		Short: "Print the markup of an app's first render",
		Long: `Render an example app once without a DOM and print its HTML.

Examples:
  hyperoop render
  hyperoop render todo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			name := cfg.Preview.App
			if len(args) == 1 {
				name = args[0]
			}

			app, err := demo.New(name, cfg.History.Depth)
			if err != nil {
				return err
			}
			node, err := renderOnce(app)
			if err != nil {
				return err
			}

			markup, err := render.HTML(node)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), markup)
			return nil
		},
	}
	return cmd
}

// renderOnce runs one headless pass and returns the resolved tree.
func renderOnce(app *demo.App) (*vdom.VNode, error) {
	r := render.New(nil, app.View, app.Actions)
	return r.Render()
}
