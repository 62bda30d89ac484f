package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathforest/internal/badges"
)

const profilesTable = "profiles"

var profileColumns = []string{
	"id", "name", "skill_levels", "skill_xp", "total_stars",
	"best_streak", "potions", "badges", "boss_defeats", "updated_at",
}

// ProfileRecord is the persisted shape of a learner profile, keyed by the
// authenticated identity.
type ProfileRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SkillLevels map[string]int  `json:"skill_levels"`
	SkillXP     map[string]int  `json:"skill_xp"`
	TotalStars  int             `json:"total_stars"`
	BestStreak  int             `json:"best_streak"`
	Potions     int             `json:"potions"`
	Badges      []badges.Badge  `json:"badges"`
	BossDefeats map[string]bool `json:"boss_defeats"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProfileStore reads and writes profile records.
type ProfileStore interface {
	// GetProfile returns the record for id, or ErrNotFound.
	GetProfile(ctx context.Context, id string) (*ProfileRecord, error)

	// UpsertProfile inserts or replaces the record keyed by rec.ID and
	// stamps rec.UpdatedAt.
	UpsertProfile(ctx context.Context, rec *ProfileRecord) error
}

// GetProfile implements ProfileStore.
func (s *Store) GetProfile(ctx context.Context, id string) (*ProfileRecord, error) {
	query, args := s.builder().
		Select(profileColumns...).
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	var (
		rec                                    ProfileRecord
		levels, xp, badgeJSON, defeats, stamp string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.Name, &levels, &xp, &rec.TotalStars,
		&rec.BestStreak, &rec.Potions, &badgeJSON, &defeats, &stamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst any
	}{
		{levels, &rec.SkillLevels},
		{xp, &rec.SkillXP},
		{badgeJSON, &rec.Badges},
		{defeats, &rec.BossDefeats},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", id, err)
		}
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
		return nil, fmt.Errorf("decode profile %s updated_at: %w", id, err)
	}
	return &rec, nil
}

// UpsertProfile implements ProfileStore.
func (s *Store) UpsertProfile(ctx context.Context, rec *ProfileRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("upsert profile: empty id")
	}
	rec.UpdatedAt = time.Now().UTC()

	encoded := make([]string, 4)
	for i, v := range []any{nonNilInts(rec.SkillLevels), nonNilInts(rec.SkillXP), nonNilBadges(rec.Badges), nonNilBools(rec.BossDefeats)} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		encoded[i] = string(b)
	}

	query, args := s.builder().
		Insert(profilesTable).
		Columns(profileColumns...).
		Values(
			rec.ID, rec.Name, encoded[0], encoded[1], rec.TotalStars,
			rec.BestStreak, rec.Potions, encoded[2], encoded[3],
			rec.UpdatedAt.Format(time.RFC3339Nano),
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func nonNilInts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func nonNilBools(m map[string]bool) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	return m
}

func nonNilBadges(b []badges.Badge) []badges.Badge {
	if b == nil {
		return []badges.Badge{}
	}
	return b
}
