package worker

import (
	"context"
	"fmt"
	"os"
)

// Worker consumes the union events stream in the background. The manager
// runs Start in its own goroutine and calls Stop on shutdown.
type Worker interface {
	// Start blocks until ctx is done or Stop is called.
	Start(ctx context.Context) error

	// Stop makes Start return. Calling it again is a no-op.
	Stop() error

	Name() string
}

// Subscription is a worker's seat on an events stream: the consumer group
// it reads through and the consumer name its pending entries are kept under.
type Subscription struct {
	Stream   string
	Group    string
	Consumer string
}

// NewSubscription names the consumer after the host and pid, so replicas
// sharing a group never claim each other's pending events.
func NewSubscription(stream, group string) Subscription {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "worker"
	}
	return Subscription{
		Stream:   stream,
		Group:    group,
		Consumer: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}
