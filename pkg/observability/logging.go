package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/substrate/pkg/domain"
)

// LoggingHooks writes one Info record per node or connection change.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeToggle: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "node_toggle",
				"session", e.Session,
				"role", e.Role.String(),
				"x", e.Coord.X,
				"y", e.Coord.Y,
				"added", e.Added,
			)
		},
		OnConnectionToggle: func(ctx context.Context, e *domain.ConnectionEvent) {
			logger.InfoContext(ctx, "connection_toggle",
				"session", e.Session,
				"connection", e.Connection.String(),
				"added", e.Added,
			)
		},
	}
}
