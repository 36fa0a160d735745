package main

import (
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/strops"
	httpadapter "github.com/aretw0/strops/internal/adapters/http"
	"github.com/aretw0/strops/internal/platform"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the operations over HTTP (with Prometheus metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") && a.cfg.Listen != "" {
				listen = a.cfg.Listen
			}

			metrics := httpadapter.NewMetrics()
			svc := a.newService(platform.WithObserver(metrics))
			handler := httpadapter.NewHandler(svc, metrics, strings.TrimSpace(strops.Version))

			ctx := lifecycle.NewSignalContext(cmd.Context())
			return httpadapter.ListenAndServe(ctx, listen, handler, a.logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "Address to listen on")
	return cmd
}
