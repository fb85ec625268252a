package app

import (
	"context"
	"net"

	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/internal/server"
)

// Serve listens on APP_PORT until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	addr := net.JoinHostPort("", config.AppPort())
	return server.Start(ctx, addr, a.Handler(), config.ShutdownTimeout())
}
