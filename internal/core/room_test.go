package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []Frame
	fail   bool
}

func (f *fakeConn) TrySend(frame Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return ErrBackpressureTest
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

var ErrBackpressureTest = assert.AnError

func join(t *testing.T, r *Room, id, name string) *fakeConn {
	t.Helper()
	c := &fakeConn{}
	_, err := r.Join(domain.PlayerID(id), name, c)
	require.NoError(t, err)
	return c
}

func TestRoomJoin(t *testing.T) {
	t.Parallel()

	t.Run("creator becomes admin", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		cfg := r.ConfigSnapshot()
		assert.Equal(t, domain.PlayerID("alice"), cfg.AdminID)
		assert.Equal(t, domain.StatusLobby, cfg.Status)
		assert.Equal(t, domain.DefaultMaxPlayers, cfg.MaxPlayers)
	})

	t.Run("full room rejects new joins", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		require.NoError(t, r.SetMaxPlayers("alice", 1))
		_, err := r.Join("bob", "Bob", &fakeConn{})
		assert.ErrorIs(t, err, ErrRoomFull)
	})

	t.Run("mid round rejects new joins", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		_, err = r.Join("carol", "Carol", &fakeConn{})
		assert.ErrorIs(t, err, ErrRoundInProgress)
	})

	t.Run("reconnect bypasses capacity and phase checks", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c1 := join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		require.NoError(t, r.SetMaxPlayers("alice", 2))

		r.Disconnect("alice", c1)
		res, err := r.Join("alice", "Alice", &fakeConn{})
		require.NoError(t, err)
		assert.True(t, res.Rejoined)
		assert.Equal(t, 2, r.PlayerCount())
	})

	t.Run("reconnect into live round returns committed role", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c2 := join(t, r, "bob", "Bob")
		join(t, r, "alice", "Alice")
		views, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)

		var want RoleView
		for _, v := range views {
			if v.ID == "bob" {
				want = v
			}
		}
		r.Disconnect("bob", c2)
		res, err := r.Join("bob", "Bob", &fakeConn{})
		require.NoError(t, err)
		require.NotNil(t, res.View)
		assert.Equal(t, want.Role, res.View.Role)
		assert.Equal(t, want.Word, res.View.Word)
	})

	t.Run("reconnect in lobby clears readiness", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c := join(t, r, "alice", "Alice")
		require.NoError(t, r.ToggleReady("alice"))
		r.Disconnect("alice", c)
		_, err := r.Join("alice", "Alicia", &fakeConn{})
		require.NoError(t, err)
		ps := r.PlayersSnapshot()
		require.Len(t, ps, 1)
		assert.False(t, ps[0].Ready)
		assert.Equal(t, "Alicia", ps[0].Name)
	})

	t.Run("join into rescued empty room takes over admin", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		res := r.Remove("alice")
		require.True(t, res.Empty)
		_, err := r.Join("bob", "Bob", &fakeConn{})
		require.NoError(t, err)
		assert.Equal(t, domain.PlayerID("bob"), r.ConfigSnapshot().AdminID)
	})
}

func TestRoomDisconnect(t *testing.T) {
	t.Parallel()

	t.Run("marks offline and not ready", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c := join(t, r, "alice", "Alice")
		require.NoError(t, r.ToggleReady("alice"))
		assert.True(t, r.Disconnect("alice", c))
		ps := r.PlayersSnapshot()
		require.Len(t, ps, 1)
		assert.False(t, ps[0].Online)
		assert.False(t, ps[0].Ready)
	})

	t.Run("stale connection does not disconnect a reconnected player", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		old := join(t, r, "alice", "Alice")
		r.Disconnect("alice", old)
		_, err := r.Join("alice", "Alice", &fakeConn{})
		require.NoError(t, err)
		assert.False(t, r.Disconnect("alice", old))
		assert.True(t, r.PlayersSnapshot()[0].Online)
	})
}

func TestRoomRemove(t *testing.T) {
	t.Parallel()

	t.Run("admin failover to oldest surviving member", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		join(t, r, "carol", "Carol")
		res := r.Remove("alice")
		assert.True(t, res.Removed)
		assert.True(t, res.AdminChanged)
		assert.Equal(t, domain.PlayerID("bob"), r.ConfigSnapshot().AdminID)
	})

	t.Run("removing a non admin keeps admin", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		res := r.Remove("bob")
		assert.True(t, res.Removed)
		assert.False(t, res.AdminChanged)
		assert.Equal(t, domain.PlayerID("alice"), r.ConfigSnapshot().AdminID)
	})

	t.Run("last removal reports empty", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		res := r.Remove("alice")
		assert.True(t, res.Empty)
		assert.True(t, r.Empty())
	})

	t.Run("ghost removal skips a player that came back", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		res := r.RemoveGhost("alice")
		assert.False(t, res.Removed)
		assert.Equal(t, 1, r.PlayerCount())
	})

	t.Run("ghost removal removes an offline player", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c := join(t, r, "alice", "Alice")
		r.Disconnect("alice", c)
		res := r.RemoveGhost("alice")
		assert.True(t, res.Removed)
	})
}

func TestRoomConfig(t *testing.T) {
	t.Parallel()

	t.Run("non admin cannot change config", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		assert.ErrorIs(t, r.SetMaxPlayers("bob", 5), ErrNotAdmin)
		assert.ErrorIs(t, r.SetCategory("bob", "Movies"), ErrNotAdmin)
		cfg := r.ConfigSnapshot()
		assert.Equal(t, domain.DefaultMaxPlayers, cfg.MaxPlayers)
		assert.Equal(t, domain.DefaultCategory, cfg.Category)
	})

	t.Run("out of range max players leaves value untouched", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		assert.ErrorIs(t, r.SetMaxPlayers("alice", 0), ErrValueOutOfRange)
		assert.ErrorIs(t, r.SetMaxPlayers("alice", 16), ErrValueOutOfRange)
		assert.Equal(t, domain.DefaultMaxPlayers, r.ConfigSnapshot().MaxPlayers)
	})

	t.Run("admin updates config", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		require.NoError(t, r.SetMaxPlayers("alice", 5))
		require.NoError(t, r.SetCategory("alice", "Movies"))
		cfg := r.ConfigSnapshot()
		assert.Equal(t, 5, cfg.MaxPlayers)
		assert.Equal(t, "Movies", cfg.Category)
	})
}

func TestRoomRound(t *testing.T) {
	t.Parallel()

	t.Run("needs at least two players", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	})

	t.Run("exactly one impostor, everyone else gets the word", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		join(t, r, "carol", "Carol")
		views, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		require.Len(t, views, 3)

		impostors := 0
		for _, v := range views {
			if v.Role == domain.RoleImpostor {
				impostors++
				assert.Empty(t, v.Word)
			} else {
				assert.Equal(t, domain.RoleCrew, v.Role)
				assert.Equal(t, "Pizza", v.Word)
			}
		}
		assert.Equal(t, 1, impostors)
		assert.Equal(t, domain.StatusPlaying, r.ConfigSnapshot().Status)
	})

	t.Run("cannot start while playing", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		_, err = r.StartRound("alice", domain.StatusLobby, "Sushi")
		assert.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("reveal resolves impostor name at reveal time", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		name, word, err := r.Reveal("alice")
		require.NoError(t, err)
		assert.Equal(t, "Pizza", word)
		assert.Contains(t, []string{"Alice", "Bob"}, name)
		assert.Equal(t, domain.StatusRevealed, r.ConfigSnapshot().Status)
	})

	t.Run("reveal after impostor removal keeps the dealt name, not the id", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "u1")
		join(t, r, "u1", "Alice")
		join(t, r, "u2", "Bob")
		join(t, r, "u3", "Carol")
		views, err := r.StartRound("u1", domain.StatusLobby, "Pizza")
		require.NoError(t, err)

		names := map[domain.PlayerID]string{"u1": "Alice", "u2": "Bob", "u3": "Carol"}
		var impostor domain.PlayerID
		for _, v := range views {
			if v.Role == domain.RoleImpostor {
				impostor = v.ID
			}
		}
		r.Remove(impostor)

		admin := r.ConfigSnapshot().AdminID
		name, _, err := r.Reveal(admin)
		require.NoError(t, err)
		assert.Equal(t, names[impostor], name)
		assert.NotEqual(t, string(impostor), name)
	})

	t.Run("reveal requires a live round", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		_, _, err := r.Reveal("alice")
		assert.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("next round starts from revealed", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		_, _, err = r.Reveal("alice")
		require.NoError(t, err)
		views, err := r.StartRound("alice", domain.StatusRevealed, "Sushi")
		require.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, domain.StatusPlaying, r.ConfigSnapshot().Status)
	})

	t.Run("return to lobby clears round and readiness", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		join(t, r, "alice", "Alice")
		join(t, r, "bob", "Bob")
		require.NoError(t, r.ToggleReady("bob"))
		_, err := r.StartRound("alice", domain.StatusLobby, "Pizza")
		require.NoError(t, err)
		require.NoError(t, r.ReturnToLobby("alice"))
		cfg := r.ConfigSnapshot()
		assert.Equal(t, domain.StatusLobby, cfg.Status)
		for _, p := range r.PlayersSnapshot() {
			assert.False(t, p.Ready)
		}
	})
}

func TestRoomBroadcast(t *testing.T) {
	t.Parallel()

	t.Run("reaches all online members", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c1 := join(t, r, "alice", "Alice")
		c2 := join(t, r, "bob", "Bob")
		res := r.Broadcast(Frame(`{"type":"x"}`))
		assert.Equal(t, 2, res.SentTo)
		assert.Empty(t, res.Dropped)
		assert.Equal(t, 1, c1.count())
		assert.Equal(t, 1, c2.count())
	})

	t.Run("skips offline members and reports slow ones", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c1 := join(t, r, "alice", "Alice")
		slow := &fakeConn{fail: true}
		_, err := r.Join("bob", "Bob", slow)
		require.NoError(t, err)
		c3 := join(t, r, "carol", "Carol")
		r.Disconnect("carol", c3)

		res := r.Broadcast(Frame(`{"type":"x"}`))
		assert.Equal(t, 1, res.SentTo)
		assert.Equal(t, []domain.PlayerID{"bob"}, res.Dropped)
		assert.Equal(t, 1, c1.count())
	})

	t.Run("SendTo hits one member only", func(t *testing.T) {
		t.Parallel()
		r := NewRoom("AB12", "alice")
		c1 := join(t, r, "alice", "Alice")
		c2 := join(t, r, "bob", "Bob")
		require.NoError(t, r.SendTo("bob", Frame(`{}`)))
		assert.Equal(t, 0, c1.count())
		assert.Equal(t, 1, c2.count())
		assert.ErrorIs(t, r.SendTo("nobody", Frame(`{}`)), ErrUnknownPlayer)
	})
}
