package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathforest/internal/badges"
)

var memSeq int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	memSeq++
	s, err := Open(DriverSQLite, fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", memSeq))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "x")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mf.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(DriverSQLite, path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	ctx := context.Background()
	require.NoError(t, s.UpsertProfile(ctx, &ProfileRecord{ID: "kid", Name: "Ada"}))
	require.NoError(t, s.Close())

	// Reopening runs the migration again and keeps existing rows.
	s, err = Open(DriverSQLite, path)
	require.NoError(t, err)
	defer s.Close()
	rec, err := s.GetProfile(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.Name)
}

// profileStores runs the same checks against both implementations.
func profileStores(t *testing.T) map[string]ProfileStore {
	return map[string]ProfileStore{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	for name, ps := range profileStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := ps.GetProfile(ctx, "nobody")
			assert.ErrorIs(t, err, ErrNotFound)

			rec := &ProfileRecord{
				ID:          "u1",
				Name:        "Mira",
				SkillLevels: map[string]int{"addition": 3},
				SkillXP:     map[string]int{"addition": 5},
				TotalStars:  12,
				BestStreak:  7,
				Potions:     3,
				Badges: []badges.Badge{
					{Icon: "🐉", Name: "Dragon Tamer", Date: "2026-01-02", Skill: "addition", Correct: 9, Total: 10},
				},
				BossDefeats: map[string]bool{"mathDragon": true},
			}
			require.NoError(t, ps.UpsertProfile(ctx, rec))
			assert.False(t, rec.UpdatedAt.IsZero())

			got, err := ps.GetProfile(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "Mira", got.Name)
			assert.Equal(t, 3, got.SkillLevels["addition"])
			assert.Equal(t, 5, got.SkillXP["addition"])
			assert.Equal(t, 12, got.TotalStars)
			assert.Equal(t, 7, got.BestStreak)
			assert.Equal(t, 3, got.Potions)
			require.Len(t, got.Badges, 1)
			assert.Equal(t, rec.Badges[0], got.Badges[0])
			assert.True(t, got.BossDefeats["mathDragon"])
			assert.True(t, got.UpdatedAt.Equal(rec.UpdatedAt))
		})
	}
}

func TestProfile_UpsertReplaces(t *testing.T) {
	for name, ps := range profileStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, ps.UpsertProfile(ctx, &ProfileRecord{ID: "u1", Name: "A", TotalStars: 1}))
			require.NoError(t, ps.UpsertProfile(ctx, &ProfileRecord{ID: "u1", Name: "B", TotalStars: 2}))

			got, err := ps.GetProfile(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "B", got.Name)
			assert.Equal(t, 2, got.TotalStars)
			assert.NotNil(t, got.SkillLevels)
			assert.NotNil(t, got.BossDefeats)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	rec := &ProfileRecord{ID: "u1", SkillLevels: map[string]int{"addition": 1}}
	require.NoError(t, m.UpsertProfile(ctx, rec))

	rec.SkillLevels["addition"] = 5
	got, err := m.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.SkillLevels["addition"])

	got.SkillLevels["addition"] = 7
	again, _ := m.GetProfile(ctx, "u1")
	assert.Equal(t, 1, again.SkillLevels["addition"])
}

func TestUsers(t *testing.T) {
	stores := map[string]UserStore{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}
	for name, us := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := &User{ID: "id-1", Email: " Kid@Example.com ", PasswordHash: "h", ConfirmToken: "tok"}
			require.NoError(t, us.CreateUser(ctx, u))
			assert.Equal(t, "kid@example.com", u.Email)

			err := us.CreateUser(ctx, &User{ID: "id-2", Email: "KID@example.com", PasswordHash: "h"})
			assert.ErrorIs(t, err, ErrDuplicate)

			got, err := us.GetUserByEmail(ctx, "kid@EXAMPLE.com")
			require.NoError(t, err)
			assert.Equal(t, "id-1", got.ID)
			assert.False(t, got.Confirmed)

			_, err = us.GetUserByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = us.ConfirmUser(ctx, "wrong")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = us.ConfirmUser(ctx, "")
			assert.ErrorIs(t, err, ErrNotFound)

			confirmed, err := us.ConfirmUser(ctx, "tok")
			require.NoError(t, err)
			assert.True(t, confirmed.Confirmed)

			got, err = us.GetUserByID(ctx, "id-1")
			require.NoError(t, err)
			assert.True(t, got.Confirmed)
			assert.Empty(t, got.ConfirmToken)

			// Tokens are single use.
			_, err = us.ConfirmUser(ctx, "tok")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, us.DeleteUser(ctx, "id-1"))
			require.NoError(t, us.DeleteUser(ctx, "id-1"))
			_, err = us.GetUserByEmail(ctx, "kid@example.com")
			assert.ErrorIs(t, err, ErrNotFound)
			require.NoError(t, us.CreateUser(ctx, &User{ID: "id-3", Email: "kid@example.com", PasswordHash: "h"}))
		})
	}
}

func TestCreateUser_ConcurrentDuplicate(t *testing.T) {
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	defer s.Close()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.CreateUser(context.Background(), &User{
				ID:           fmt.Sprintf("id-%d", i),
				Email:        "twins@example.com",
				PasswordHash: "h",
			})
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, 1, created)
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x", "db.sqlite")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}

func TestDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/mathforest", got)
}
