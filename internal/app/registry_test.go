package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("bind and resolve", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Bind("c1", "alice", nopConn{}, nil)
		id, code, ok := r.Resolve("c1")
		require.True(t, ok)
		assert.Equal(t, "alice", string(id))
		assert.Empty(t, code)

		require.True(t, r.SetRoom("c1", "AB12"))
		_, code, _ = r.Resolve("c1")
		assert.Equal(t, "AB12", string(code))
	})

	t.Run("set identity rebinds", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Bind("c1", "cookie-token", nopConn{}, nil)
		require.True(t, r.SetIdentity("c1", "stable-id"))
		id, _, _ := r.Resolve("c1")
		assert.Equal(t, "stable-id", string(id))
	})

	t.Run("unbind forgets the connection", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Bind("c1", "alice", nopConn{}, nil)
		r.Unbind("c1")
		_, _, ok := r.Resolve("c1")
		assert.False(t, ok)
		assert.False(t, r.SetRoom("c1", "AB12"))
	})

	t.Run("cancel by identity hits the matching room binding", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		canceled := false
		r.Bind("c1", "alice", nopConn{}, func() { canceled = true })
		r.SetRoom("c1", "AB12")
		r.Bind("c2", "alice", nopConn{}, func() { t.Fatal("wrong binding canceled") })
		r.SetRoom("c2", "ZZ99")

		assert.True(t, r.CancelByIdentity("AB12", "alice"))
		assert.True(t, canceled)
		assert.False(t, r.CancelByIdentity("AB12", "nobody"))
	})
}
