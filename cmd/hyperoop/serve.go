package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperoop/internal/demo"
	"github.com/vango-dev/hyperoop/pkg/preview"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		appName string
		depth   int
		recycle string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an app in the preview server",
		Long: `Serve an example app. The app is rendered on the server and every
render pass is streamed to connected browsers over a websocket.

With --recycle the named snapshot is mounted first and the first pass
patches it in place instead of building the DOM from scratch.

Examples:
  hyperoop serve
  hyperoop serve --app todo-hist --depth 20
  hyperoop serve --recycle counter-home --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if appName != "" {
				cfg.Preview.App = appName
			}
			if cmd.Flags().Changed("depth") {
				cfg.History.Depth = depth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			app, err := demo.New(cfg.Preview.App, cfg.History.Depth)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := preview.Options{
				Title:   "hyperoop · " + app.Name,
				History: app.History(),
				Logger:  logger,
			}
			if recycle != "" {
				store, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				markup, err := store.Load(ctx, recycle)
				closeStore(store)
				if err != nil {
					return err
				}
				opts.Markup = string(markup)
			}
			if cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				opts.Registry = reg
				opts.MetricsNamespace = cfg.Metrics.Namespace
				opts.MetricsPath = cfg.Metrics.Path
			}

			server, err := preview.New(app.View, app.Actions, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if useColor {
				fmt.Fprint(out, banner)
				fmt.Fprintln(out)
			}
			success(out, "Serving %s at %s", app.Name, cfg.PreviewURL())
			if recycle != "" {
				info(out, "Recycling snapshot %s", recycle)
			}
			return serve(ctx, server, cfg.PreviewAddress())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from hyperoop.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from hyperoop.json)")
	cmd.Flags().StringVarP(&appName, "app", "a", "", "App to serve: counter, todo or todo-hist")
	cmd.Flags().IntVar(&depth, "depth", 0, "Undo history depth for todo-hist, overriding hyperoop.json (0 or less is unbounded)")
	cmd.Flags().StringVar(&recycle, "recycle", "", "Snapshot to mount before the first render")

	return cmd
}

// serve runs the loop and the HTTP server until ctx is cancelled.
func serve(ctx context.Context, server *preview.Server, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- server.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-loopDone
	return nil
}
