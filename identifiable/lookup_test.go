package identifiable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	rows []*user
	err  error
}

func (m memorySource) FindBy(ctx context.Context, column, value string) (*user, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	for _, u := range m.rows {
		if u.IdentifierField(column) == value {
			return u, true, nil
		}
	}
	return nil, false, nil
}

func TestFind(t *testing.T) {
	typ := MustRegister(usersSchema)
	jane := &user{ID: "1", PublicID: "12345678"}
	src := memorySource{rows: []*user{jane}}

	t.Run("existing identifier", func(t *testing.T) {
		got, ok, err := Find[*user](context.Background(), typ, src, "12345678")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Same(t, jane, got)
	})
	t.Run("missing identifier", func(t *testing.T) {
		got, ok, err := Find[*user](context.Background(), typ, src, "non-existent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestMustFind(t *testing.T) {
	typ := MustRegister(usersSchema)
	jane := &user{ID: "1", PublicID: "12345678"}
	src := memorySource{rows: []*user{jane}}

	t.Run("existing identifier", func(t *testing.T) {
		got, err := MustFind[*user](context.Background(), typ, src, "12345678")
		require.NoError(t, err)
		assert.Same(t, jane, got)
	})
	t.Run("missing identifier", func(t *testing.T) {
		_, err := MustFind[*user](context.Background(), typ, src, "non-existent")
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "users.public_id")
	})
	t.Run("storage error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := MustFind[*user](context.Background(), typ, memorySource{err: boom}, "12345678")
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
