package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	_, err := s.GetObject(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	body := []byte("hello")
	require.NoError(t, s.PutObject(ctx, "k", body, "text/plain"))
	body[0] = 'j'

	got, err := s.GetObject(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	require.NoError(t, s.DeleteObject(ctx, "k"))
	_, err = s.GetObject(ctx, "k")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
