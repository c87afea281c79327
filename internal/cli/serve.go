package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mchmarny/navd/pkg/config"
	"github.com/mchmarny/navd/pkg/logger"
	"github.com/mchmarny/navd/pkg/menu"
	"github.com/mchmarny/navd/pkg/page"
	"github.com/mchmarny/navd/pkg/server"
	"github.com/mchmarny/navd/pkg/service"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the configured menus and serve them over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a.cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", server.DefaultPort, "port to serve on (overrides config)")

	return cmd
}

// boot registers the navigation service and loads every configured
// definition file into it.
func boot(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*menu.Service, error) {
	services := service.NewRegistry()
	if err := services.Register(ctx, menu.New(menu.WithRegistry(reg))); err != nil {
		return nil, &systemError{err: err}
	}

	nav, ok := service.Lookup[*menu.Service](services, menu.ServiceAlias)
	if !ok {
		return nil, &systemError{err: fmt.Errorf("service %q not registered", menu.ServiceAlias)}
	}

	for _, f := range cfg.Menus.Files {
		defs, err := menu.LoadFile(f)
		if err != nil {
			return nil, err
		}
		if err := nav.Apply(defs); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}

	return nav, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	nav, err := boot(ctx, cfg, reg)
	if err != nil {
		return err
	}

	pages, err := page.New(nav, cfg.Site.Name, cfg.Menus.Page...)
	if err != nil {
		return &systemError{err: err}
	}

	slog.Info("starting navd", "version", version, "menus", nav.Names())

	err = nav.Run(ctx,
		server.WithPort(cfg.Server.Port),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithIdleTimeout(cfg.Server.IdleTimeout),
		server.WithMaxHeaderBytes(cfg.Server.MaxHeaderBytes),
		server.WithErrorLog(logger.NewLogLogger(logger.ParseLogLevel(cfg.Log.Level), false)),
		server.WithSimpleHealth(),
		server.WithMetrics(reg),
		server.WithHandler("/", pages.Handler()),
	)
	if err != nil {
		return &systemError{err: err}
	}

	return nil
}
