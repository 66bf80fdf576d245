package logger

import (
	"colorbrowser/sparkos/kernel"
	"colorbrowser/sparkos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Lines longer than one message are cut.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	return LogRetry(ctx, logCap, line, 0)
}

// LogRetry sends a log line, waiting up to limit ticks for room when the queue is full.
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidToCap
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b), kernel.Capability{}, limit)
}
