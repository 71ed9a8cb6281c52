package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperoop/internal/demo"
	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/snapshot"
)

func snapshotCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage pre-rendered snapshots",
		Long: `Snapshots are pre-rendered markup that "serve --recycle" mounts before
the first render pass. They are kept in the snapshot directory, or in S3
when snapshot.bucket is set in hyperoop.json.`,
	}

	cmd.AddCommand(
		snapshotSaveCmd(flags),
		snapshotListCmd(flags),
		snapshotShowCmd(flags),
		snapshotDeleteCmd(flags),
	)
	return cmd
}

func snapshotSaveCmd(flags *globalFlags) *cobra.Command {
	var appName string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Render an app and save its markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if appName == "" {
				appName = cfg.Preview.App
			}

			app, err := demo.New(appName, cfg.History.Depth)
			if err != nil {
				return err
			}
			node, err := renderOnce(app)
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)
			if err := snapshot.Capture(cmd.Context(), store, args[0], node); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Saved %s from %s", args[0], appName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&appName, "app", "a", "", "App to render (default from hyperoop.json)")
	return cmd
}

func snapshotListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				info(out, "No snapshots")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func snapshotShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Mount a snapshot and print the parsed markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			body := memdom.NewDocument().Body()
			if err := snapshot.Mount(cmd.Context(), store, args[0], body); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body.InnerHTML())
			return nil
		},
	}
}

func snapshotDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}
}
