package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/pkg/logger"
)

// GooseLogger routes goose output through the structured logger instead of stdout.
type GooseLogger struct {
	ctx  context.Context
	logg *logger.Logger
}

func NewGooseLogger(ctx context.Context, logg *logger.Logger) *GooseLogger {
	if logg == nil {
		logg = logger.Nop()
	}
	return &GooseLogger{ctx: ctx, logg: logg}
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logg.Info(g.ctx, "migrate: "+strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs without exiting; goose returns the underlying error to Up as well.
func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logg.Error(g.ctx, "migrate: "+strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}
