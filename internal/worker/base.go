package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker holds a stream worker's subscription and stop signal. Embed it
// and implement Start.
type BaseWorker struct {
	name   string
	sub    Subscription
	logger *zap.Logger

	stopOnce sync.Once
	done     chan struct{}
}

func NewBaseWorker(name string, sub Subscription, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name: name,
		sub:  sub,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("stream", sub.Stream),
			zap.String("consumer_group", sub.Group),
			zap.String("consumer_name", sub.Consumer),
		),
		done: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) Subscription() Subscription {
	return w.sub
}

func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.done)
	})
	return nil
}

// Done is closed by the first Stop.
func (w *BaseWorker) Done() <-chan struct{} {
	return w.done
}

func (w *BaseWorker) Stopped() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Logger is tagged with the worker name and its subscription.
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
