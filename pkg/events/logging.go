package events

import (
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/logging"
)

// LogSink writes every event to the ledger log. It is registered by default
// so operators always see the event stream even with no external observer.
type LogSink struct {
	logger *logging.ColoredLogger
}

// NewLogSink creates a logging sink.
func NewLogSink(logger *logging.ColoredLogger) *LogSink {
	return &LogSink{logger: logger}
}

// HandleEvent implements Sink.
func (s *LogSink) HandleEvent(evt Event) error {
	fields := []zap.Field{
		zap.String("event_id", evt.ID),
		zap.Time("time", evt.Timestamp),
	}
	if evt.LandID != 0 {
		fields = append(fields, zap.Uint64("land_id", evt.LandID))
	}
	fields = append(fields, zap.String("owner", evt.Owner.Hex()))
	if !evt.PrevOwner.IsZero() {
		fields = append(fields, zap.String("prev_owner", evt.PrevOwner.Hex()))
	}

	s.logger.ComponentInfo(logging.ComponentEvents, string(evt.Kind), fields...)
	return nil
}
