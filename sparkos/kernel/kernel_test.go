package kernel

import (
	"testing"
	"time"
)

type funcTask func(ctx *Context)

func (f funcTask) Run(ctx *Context) { f(ctx) }

func TestAddTaskRunsAndWaits(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)

	got := make(chan string, 1)
	k.AddTask(funcTask(func(ctx *Context) {
		msg, ok := ctx.Recv(ep.Restrict(RightRecv))
		if !ok {
			got <- ""
			return
		}
		got <- string(msg.Payload())
	}))
	k.AddTask(funcTask(func(ctx *Context) {
		ctx.SendTo(ep.Restrict(RightSend), 1, []byte("ping"))
	}))

	done := make(chan struct{})
	go func() {
		k.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tasks")
	}
	if s := <-got; s != "ping" {
		t.Fatalf("expected ping, got %q", s)
	}
}

func TestTaskPanicReachesHandler(t *testing.T) {
	infos := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { infos <- info })

	k := New()
	k.AddTask(funcTask(func(ctx *Context) {}))
	id := k.AddTask(funcTask(func(ctx *Context) { panic("boom") }))

	select {
	case info := <-infos:
		if info.TaskID != id {
			t.Fatalf("expected task %d, got %d", id, info.TaskID)
		}
		if info.Value != "boom" {
			t.Fatalf("expected boom, got %v", info.Value)
		}
		if len(info.Stack) == 0 {
			t.Fatal("expected captured stack")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
}

func TestNewEndpointExhaustion(t *testing.T) {
	k := New()
	for i := 0; i < maxEndpoints; i++ {
		if !k.NewEndpoint(RightSend).Valid() {
			t.Fatalf("endpoint %d: expected valid capability", i)
		}
	}
	if k.NewEndpoint(RightSend).Valid() {
		t.Fatal("expected invalid capability once endpoints run out")
	}
}
