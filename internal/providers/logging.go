package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/game-catalog-service/internal/logging"
)

// logProvider writes a record tagged with the provider name and resource.
// Nil loggers and disabled levels are skipped before any attrs are built.
func logProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider, resource, msg string, attrs ...slog.Attr) {
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	tagged := make([]slog.Attr, 0, len(attrs)+2)
	tagged = append(tagged,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldResource, resource),
	)
	logger.LogAttrs(ctx, level, msg, append(tagged, attrs...)...)
}
