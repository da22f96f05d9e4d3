package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes accessory events to an slog.Logger.
// Useful for development when you want to see tree activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.Accessory != "" {
		attrs = append(attrs, slog.String("accessory", event.Accessory))
	}
	if event.AID != 0 {
		attrs = append(attrs, slog.Uint64("aid", event.AID))
	}
	if event.ConnID != "" {
		attrs = append(attrs, slog.String("conn_id", event.ConnID))
	}

	// Add type-specific attributes
	switch {
	case event.Change != nil:
		attrs = append(attrs,
			slog.String("service", event.Change.ServiceName),
			slog.String("characteristic", event.Change.CharacteristicName),
		)
		if event.Change.Subtype != "" {
			attrs = append(attrs, slog.String("subtype", event.Change.Subtype))
		}
		if event.Change.IID != 0 {
			attrs = append(attrs, slog.Uint64("iid", event.Change.IID))
		}
		attrs = append(attrs,
			slog.String("old", fmt.Sprint(event.Change.OldValue)),
			slog.String("new", fmt.Sprint(event.Change.NewValue)),
		)
	case event.Config != nil:
		if event.Config.ServiceName != "" {
			attrs = append(attrs, slog.String("service", event.Config.ServiceName))
		}
		if event.Config.Signature != "" {
			attrs = append(attrs, slog.String("signature", event.Config.Signature))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Op != "" {
			attrs = append(attrs, slog.String("error_op", event.Error.Op))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "accessory", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
