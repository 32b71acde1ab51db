package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalsAreNamed(t *testing.T) {
	assert.NotEqual(t, SignalSaved, SignalLoaded)
	assert.NotEqual(t, SignalLoadFailed, SignalUnframed)
}

func TestEmitsEveryEvent(t *testing.T) {
	h := New(context.Background())
	assert.NotPanics(t, func() {
		h.Saved("worms:w1", "json", 42, time.Millisecond)
		h.Loaded("worms:w1", "json", 42, time.Millisecond)
		h.ProviderSetRejected("worms:w1")
		h.BlobTooLarge("worms:w1", "save", 100, 10)
		h.LoadFailed("worms:w1", "decode", errors.New("bad"))
		h.LoadFailed("worms:w1", "shape", nil)
		h.UnframedBlob("worms:w1", "json")
	})
}

func TestNilContextFallsBack(t *testing.T) {
	h := New(nil)
	assert.NotNil(t, h.ctx)
}
