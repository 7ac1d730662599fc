package shutdown

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"

	"pwa_icons/logging"
)

// SignalCounter turns repeated signals into escalating actions: the first
// one cancels the build gracefully, the forceAfter-th one calls onForce.
type SignalCounter struct {
	mu         sync.Mutex
	count      int
	forceAfter int
	onForce    func()
}

// NewSignalCounter creates a SignalCounter. onForce may be nil.
func NewSignalCounter(forceAfter int, onForce func()) *SignalCounter {
	return &SignalCounter{forceAfter: forceAfter, onForce: onForce}
}

// Increment records a signal and returns the new count, calling onForce
// once the threshold is reached.
func (s *SignalCounter) Increment() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.count >= s.forceAfter && s.onForce != nil {
		s.onForce()
	}
	return s.count
}

// Count returns the number of signals seen.
func (s *SignalCounter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Watch consumes signals until ctx is done. The first signal calls cancel;
// counter decides when to force. ctx must outlive the context cancel
// belongs to, otherwise the second signal is never seen. Run it in its own
// goroutine.
//
//	sigs := make(chan os.Signal, 1)
//	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
//	go shutdown.Watch(watchCtx, sigs, cancel, shutdown.NewSignalCounter(2, forceExit), logger)
func Watch(ctx context.Context, sigs <-chan os.Signal, cancel context.CancelFunc, counter *SignalCounter, logger *logging.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			if n := counter.Increment(); n == 1 {
				logger.Warn("interrupt received, finishing icons in progress; repeat to force exit",
					zap.String("signal", sig.String()))
				cancel()
			}
		}
	}
}
