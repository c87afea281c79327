package menu

import (
	"context"
	"log/slog"

	"github.com/mchmarny/navd/pkg/server"
)

// MenusPattern is the route prefix the menu handler is mounted on.
const MenusPattern = "/menus/"

// Run serves the menus over HTTP and blocks until the context is canceled or
// an error occurs. Additional handlers, such as a page layer, can be passed
// as options.
func (s *Service) Run(ctx context.Context, opt ...server.Option) error {
	slog.Info("starting menu server", "menus", len(s.Names()))

	opt = append(opt, server.WithHandler(MenusPattern, s.Handler()))

	return server.New(opt...).Serve(ctx)
}
