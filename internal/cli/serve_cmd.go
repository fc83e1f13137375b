package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/courseplan/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and planner state over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.ListenAddr
			}
			srv := server.NewServer(server.RouterConfig{
				Handlers: &server.Handlers{
					Catalog: app.Catalog,
					Planner: app.Planner,
					Prefs:   app.Prefs,
				},
				Log: app.Log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			serve := app.Serve
			if serve == nil {
				serve = func(ctx context.Context, addr string, _ http.Handler) error {
					return srv.Run(ctx, addr)
				}
			}
			return serve(ctx, addr, srv.Engine)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
