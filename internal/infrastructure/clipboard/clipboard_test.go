package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAdapter swaps the system clipboard for an in-memory buffer.
func memoryAdapter() (*Adapter, *string) {
	var buf string
	return &Adapter{
		write: func(s string) error { buf = s; return nil },
		read:  func() (string, error) { return buf, nil },
	}, &buf
}

func TestAdapter_RoundTrip(t *testing.T) {
	a, buf := memoryAdapter()
	ctx := context.Background()

	require.NoError(t, a.WriteText(ctx, "Assigning URGENT"))
	assert.Equal(t, "Assigning URGENT", *buf)

	got, err := a.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Assigning URGENT", got)
	assert.True(t, a.Available())
}

func TestAdapter_Unsupported(t *testing.T) {
	a, _ := memoryAdapter()
	a.unsupported = true
	ctx := context.Background()

	assert.ErrorIs(t, a.WriteText(ctx, "x"), ErrUnsupported)
	_, err := a.ReadText(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, a.Available())
}

func TestAdapter_BackendError(t *testing.T) {
	boom := errors.New("exit status 1")
	a := &Adapter{
		write: func(string) error { return boom },
		read:  func() (string, error) { return "", boom },
	}
	ctx := context.Background()

	assert.ErrorIs(t, a.WriteText(ctx, "x"), boom)
	_, err := a.ReadText(ctx)
	assert.ErrorIs(t, err, boom)
}
