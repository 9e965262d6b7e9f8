package logging

import (
	"context"
	"log/slog"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// SlogNotifier writes every user notice to the request logger, so the
// toasts a user saw can be found in the server logs.
type SlogNotifier struct{}

func (SlogNotifier) Notify(ctx context.Context, n core.Notice) {
	level := slog.LevelInfo
	switch n.Level {
	case core.NoticeError:
		level = slog.LevelError
	case core.NoticeWarning:
		level = slog.LevelWarn
	}
	FromContext(ctx).Log(ctx, level, "notice",
		"title", n.Title,
		"description", n.Description,
		"type", string(n.Level),
	)
}

var _ core.Notifier = SlogNotifier{}
