package app

import (
	"colorbrowser/hal"
	"colorbrowser/internal/buildinfo"
	"colorbrowser/sparkos/client/logger"
	"colorbrowser/sparkos/kernel"
	logsvc "colorbrowser/sparkos/services/logger"
	"colorbrowser/sparkos/services/publish"
	"colorbrowser/sparkos/tasks/colorbrowser"
)

// Config selects the optional services.
type Config struct {
	// Publisher receives the color documents. Nil disables publishing.
	Publisher publish.Publisher
	Topic     string
}

type system struct {
	k *kernel.Kernel

	logEP kernel.Capability
	pubEP kernel.Capability

	browser   *colorbrowser.Task
	publisher *trackedTask
	stopped   bool
}

// trackedTask closes done when the wrapped task returns.
type trackedTask struct {
	kernel.Task
	done chan struct{}
}

func track(t kernel.Task) *trackedTask {
	return &trackedTask{Task: t, done: make(chan struct{})}
}

func (t *trackedTask) Run(ctx *kernel.Context) {
	defer close(t.done)
	t.Task.Run(ctx)
}

// New initializes and starts the OS and returns the per-frame step function.
//
// The step returns hal.ErrStop once the color browser has exited and the services have
// drained their queues.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	s := newSystem(h, Config{})
	<-s.browser.Done()
	s.shutdown()
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()
	s := &system{k: k}

	s.logEP = k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(logsvc.New(h.Logger(), s.logEP.Restrict(kernel.RightRecv)))

	var pubCap kernel.Capability
	if cfg.Publisher != nil {
		s.pubEP = k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		pubCap = s.pubEP.Restrict(kernel.RightSend)
		s.publisher = track(publish.New(cfg.Publisher, cfg.Topic, s.pubEP.Restrict(kernel.RightRecv), s.logEP.Restrict(kernel.RightSend)))
		k.AddTask(s.publisher)
	}

	k.AddTask(bootMessage{logCap: s.logEP.Restrict(kernel.RightSend), publishing: cfg.Publisher != nil, topic: cfg.Topic})

	s.browser = colorbrowser.New(h.Display(), h.Input(), s.logEP.Restrict(kernel.RightSend), pubCap)
	k.AddTask(s.browser)

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}

func (s *system) step() error {
	if s.stopped {
		return hal.ErrStop
	}
	select {
	case <-s.browser.Done():
		s.shutdown()
		return hal.ErrStop
	default:
		return nil
	}
}

// shutdown closes the service endpoints and waits for every task to return. The publisher
// drains first so its last error lines still reach the logger.
func (s *system) shutdown() {
	if s.stopped {
		return
	}
	s.stopped = true
	if s.publisher != nil {
		s.k.CloseEndpoint(s.pubEP)
		<-s.publisher.done
	}
	s.k.CloseEndpoint(s.logEP)
	s.k.Wait()
}

type bootMessage struct {
	logCap     kernel.Capability
	publishing bool
	topic      string
}

func (b bootMessage) Run(ctx *kernel.Context) {
	logger.Log(ctx, b.logCap, "app: color browser "+buildinfo.Short())
	if b.publishing {
		logger.Log(ctx, b.logCap, "app: publishing to "+b.topic)
	}
}
