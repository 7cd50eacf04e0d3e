package worker

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewSubscription(t *testing.T) {
	sub := NewSubscription("stream:union:events", "geocode-warmer")

	assert.Equal(t, "stream:union:events", sub.Stream)
	assert.Equal(t, "geocode-warmer", sub.Group)
	assert.True(t, strings.HasSuffix(sub.Consumer, fmt.Sprintf("-%d", os.Getpid())), sub.Consumer)
}

func TestBaseWorker_Stop(t *testing.T) {
	sub := Subscription{Stream: "s", Group: "g", Consumer: "c"}
	w := NewBaseWorker("geocode-warmer", sub, zap.NewNop())

	assert.Equal(t, "geocode-warmer", w.Name())
	assert.Equal(t, sub, w.Subscription())
	assert.False(t, w.Stopped())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.Stopped())

	select {
	case <-w.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}
