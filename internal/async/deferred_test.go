package async

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolved(t *testing.T) {
	d := Resolved("hello")
	v, err := d.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestResolveOnce(t *testing.T) {
	d := NewDeferred[int]()
	d.Resolve(1)
	d.Resolve(2)

	v, err := d.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestValueHonorsContext(t *testing.T) {
	d := NewDeferred[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := d.Value(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCombineWaitsForBothInputs(t *testing.T) {
	a := NewDeferred[string]()
	b := NewDeferred[string]()

	// Combine must not block the caller even though nothing is resolved yet.
	out := Combine(a, b, func(x, y string) string { return x + "@" + y })

	go func() {
		time.Sleep(5 * time.Millisecond)
		b.Resolve("2.3.1")
		a.Resolve("open-next")
	}()

	v, err := out.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open-next@2.3.1", v)
}
