package logger

import (
	"strings"
	"sync"
	"testing"
	"time"

	logclient "colorbrowser/sparkos/client/logger"
	"colorbrowser/sparkos/kernel"
	"colorbrowser/sparkos/proto"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
	added chan struct{}
}

func newMemLogger() *memLogger {
	return &memLogger{added: make(chan struct{}, 16)}
}

func (l *memLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
	l.added <- struct{}{}
}

func (l *memLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type sendTask struct {
	to    kernel.Capability
	lines []string
	kinds []proto.Kind
}

func (t *sendTask) Run(ctx *kernel.Context) {
	for i, line := range t.lines {
		if t.kinds != nil && t.kinds[i] != proto.MsgLogLine {
			ctx.SendTo(t.to, uint16(t.kinds[i]), []byte(line))
			continue
		}
		logclient.Log(ctx, t.to, line)
	}
}

func TestServiceWritesLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	mem := newMemLogger()

	k.AddTask(New(mem, ep.Restrict(kernel.RightRecv)))
	long := strings.Repeat("x", kernel.MaxMessageBytes+20)
	k.AddTask(&sendTask{
		to:    ep.Restrict(kernel.RightSend),
		lines: []string{"hello", "ignored", long},
		kinds: []proto.Kind{proto.MsgLogLine, proto.MsgColorState, proto.MsgLogLine},
	})

	for i := 0; i < 2; i++ {
		select {
		case <-mem.added:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for log line")
		}
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()
	if len(mem.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(mem.lines))
	}
	if mem.lines[0] != "hello" {
		t.Fatalf("expected hello, got %q", mem.lines[0])
	}
	if len(mem.lines[1]) != kernel.MaxMessageBytes {
		t.Fatalf("expected truncated line of %d bytes, got %d", kernel.MaxMessageBytes, len(mem.lines[1]))
	}
}
