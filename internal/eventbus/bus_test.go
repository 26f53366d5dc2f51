package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFanout(t *testing.T) {
	t.Parallel()
	b := New()
	a, unsubA := b.Subscribe(4)
	c, unsubC := b.Subscribe(4)
	defer unsubA()
	defer unsubC()

	b.Publish(Event{Type: TypePollSucceeded, Data: PollSucceeded{Window: 1000}})

	for _, ch := range []<-chan Event{a, c} {
		select {
		case e := <-ch:
			assert.Equal(t, TypePollSucceeded, e.Type)
			assert.False(t, e.Time.IsZero())
			require.IsType(t, PollSucceeded{}, e.Data)
			assert.Equal(t, int64(1000), e.Data.(PollSucceeded).Window)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	t.Parallel()
	b := New()
	ch, unsub := b.Subscribe(1)
	defer unsub()

	b.Publish(Event{Type: "a"})
	b.Publish(Event{Type: "b"}) // dropped, must not block

	e := <-ch
	assert.Equal(t, "a", e.Type)
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %q", e.Type)
	default:
	}
}

func TestBusUnsubscribeClosesAndIsIdempotent(t *testing.T) {
	t.Parallel()
	b := New()
	ch, unsub := b.Subscribe(0)
	unsub()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)
	b.Publish(Event{Type: "after"})
}

func TestNopBus(t *testing.T) {
	t.Parallel()
	var b Bus = Nop{}
	b.Publish(Event{Type: "x"})
	ch, unsub := b.Subscribe(1)
	unsub()
	_, ok := <-ch
	assert.False(t, ok)
}
