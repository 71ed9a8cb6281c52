package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// backendModules are the dependencies reported by "version --deps".
var backendModules = []string{
	"github.com/aws/aws-sdk-go-v2/service/s3",
	"github.com/redis/go-redis/v9",
	"go.etcd.io/bbolt",
	"github.com/gorilla/websocket",
	"github.com/go-chi/chi/v5",
}

func versionCmd() *cobra.Command {
	var short, deps bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "hyperoop %s (%s, built %s)\n", version, commit, date)
			fmt.Fprintf(out, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if deps {
				writeDeps(out)
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	cmd.Flags().BoolVar(&deps, "deps", false, "Also print the versions of the storage and transport modules")

	return cmd
}

func writeDeps(w io.Writer) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Fprintln(w, "deps: unavailable")
		return
	}
	for _, dep := range info.Deps {
		for _, path := range backendModules {
			if dep.Path != path {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			fmt.Fprintf(w, "  %s %s\n", strings.TrimPrefix(path, "github.com/"), dep.Version)
		}
	}
}
