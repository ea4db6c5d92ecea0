package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// scripted returns the queued results in order.
func scripted(results ...error) (FetchFunc[int], *int) {
	calls := 0
	return func(context.Context) (int, error) {
		err := results[calls]
		calls++
		if err != nil {
			return 0, err
		}
		return calls * 10, nil
	}, &calls
}

var errDown = errors.New("upstream down")

func TestWidget_FreshValue(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	fetch, _ := scripted(nil)
	w := New("n", fetch, Options[int]{Now: clock.Now})

	c := w.Refresh(context.Background())

	require.True(t, c.OK())
	assert.Equal(t, 10, c.Value)
	assert.False(t, c.Stale)
	assert.False(t, c.Fallback)
	assert.Equal(t, clock.t, c.FetchedAt)
}

func TestWidget_StaleWithinMaxAge(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	fetch, _ := scripted(nil, errDown)
	fb := -1
	w := New("n", fetch, Options[int]{MaxStale: time.Hour, Fallback: &fb, Now: clock.Now})

	first := w.Refresh(context.Background())
	clock.Advance(30 * time.Minute)
	second := w.Refresh(context.Background())

	require.True(t, second.OK())
	assert.True(t, second.Stale)
	assert.Equal(t, 10, second.Value)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestWidget_FallbackAfterMaxAge(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	fetch, _ := scripted(nil, errDown)
	fb := -1
	w := New("n", fetch, Options[int]{MaxStale: time.Hour, Fallback: &fb, Now: clock.Now})

	w.Refresh(context.Background())
	clock.Advance(2 * time.Hour)
	c := w.Refresh(context.Background())

	require.True(t, c.OK())
	assert.True(t, c.Fallback)
	assert.False(t, c.Stale)
	assert.Equal(t, -1, c.Value)
}

func TestWidget_ErrorWithoutFallback(t *testing.T) {
	fetch, _ := scripted(errDown)
	w := New("n", fetch, Options[int]{})

	c := w.Refresh(context.Background())

	assert.False(t, c.OK())
	assert.ErrorIs(t, c.Err, errDown)
}

func TestWidget_RecoversAfterFailure(t *testing.T) {
	fetch, calls := scripted(errDown, nil)
	w := New("n", fetch, Options[int]{})

	assert.False(t, w.Refresh(context.Background()).OK())
	c := w.Refresh(context.Background())

	require.True(t, c.OK())
	assert.Equal(t, 20, c.Value)
	assert.Equal(t, 2, *calls)
}

func TestWidget_TimeoutBoundsFetch(t *testing.T) {
	slow := func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	w := New("slow", slow, Options[int]{Timeout: 20 * time.Millisecond})

	start := time.Now()
	c := w.Refresh(context.Background())

	assert.ErrorIs(t, c.Err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
