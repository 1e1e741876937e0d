package graph

import (
	"log/slog"
	"time"
)

// timeoutWarningRatio is the share of the timeout after which a successful
// query is still logged as slow.
const timeoutWarningRatio = 0.8

// observeQuery logs a finished query, escalating the level when it timed
// out or came close. A zero timeout disables the escalation.
func observeQuery(logger *slog.Logger, op Operation, timeout, duration time.Duration, records int, err error) {
	switch {
	case err != nil && timeout > 0 && duration >= timeout:
		logger.Error("query timed out",
			"operation", op,
			"duration_seconds", duration.Seconds(),
			"timeout_seconds", timeout.Seconds(),
			"error", err)
	case err != nil:
		logger.Debug("query failed",
			"operation", op,
			"duration_seconds", duration.Seconds(),
			"error", err)
	case timeout > 0 && duration >= time.Duration(float64(timeout)*timeoutWarningRatio):
		logger.Warn("query approaching timeout",
			"operation", op,
			"record_count", records,
			"duration_seconds", duration.Seconds(),
			"timeout_seconds", timeout.Seconds(),
			"percent_used", duration.Seconds()/timeout.Seconds()*100)
	default:
		logger.Debug("query completed",
			"operation", op,
			"record_count", records,
			"duration_seconds", duration.Seconds())
	}
}
