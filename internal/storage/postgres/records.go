package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
)

func (s *Store) GetProfile() (models.Profile, error) {
	if s.db == nil {
		return models.Profile{}, storage.ErrNotLoaded
	}

	var p models.Profile
	var lastCravingAt, lastLoginAt sql.NullTime

	err := s.db.QueryRow(`
		SELECT name, start_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack, currency,
			craving_count, craving_managed, last_craving_at, last_login_at,
			streak_count, longest_streak, triggers, motivations, goals
		FROM profile WHERE id = 1`).Scan(
		&p.Name, &p.StartDate, &p.CigarettesPerDay, &p.CostPerPack, &p.CigarettesPerPack, &p.Currency,
		&p.CravingCount, &p.CravingManaged, &lastCravingAt, &lastLoginAt,
		&p.StreakCount, &p.LongestStreak, pq.Array(&p.Triggers), pq.Array(&p.Motivations), pq.Array(&p.Goals),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	if lastCravingAt.Valid {
		t := lastCravingAt.Time
		p.LastCravingAt = &t
	}
	if lastLoginAt.Valid {
		p.LastLoginAt = lastLoginAt.Time
	}

	return p, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func saveProfile(e execer, p models.Profile) error {
	var lastCravingAt, lastLoginAt sql.NullTime
	if p.LastCravingAt != nil {
		lastCravingAt = sql.NullTime{Time: *p.LastCravingAt, Valid: true}
	}
	if !p.LastLoginAt.IsZero() {
		lastLoginAt = sql.NullTime{Time: p.LastLoginAt, Valid: true}
	}

	_, err := e.Exec(`
		INSERT INTO profile (
			id, name, start_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack, currency,
			craving_count, craving_managed, last_craving_at, last_login_at,
			streak_count, longest_streak, triggers, motivations, goals
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			cigarettes_per_day = EXCLUDED.cigarettes_per_day,
			cost_per_pack = EXCLUDED.cost_per_pack,
			cigarettes_per_pack = EXCLUDED.cigarettes_per_pack,
			currency = EXCLUDED.currency,
			craving_count = EXCLUDED.craving_count,
			craving_managed = EXCLUDED.craving_managed,
			last_craving_at = EXCLUDED.last_craving_at,
			last_login_at = EXCLUDED.last_login_at,
			streak_count = EXCLUDED.streak_count,
			longest_streak = EXCLUDED.longest_streak,
			triggers = EXCLUDED.triggers,
			motivations = EXCLUDED.motivations,
			goals = EXCLUDED.goals`,
		p.Name, p.StartDate, p.CigarettesPerDay, p.CostPerPack, p.CigarettesPerPack, string(p.Currency),
		p.CravingCount, p.CravingManaged, lastCravingAt, lastLoginAt,
		p.StreakCount, p.LongestStreak,
		pq.Array(nonNil(p.Triggers)), pq.Array(nonNil(p.Motivations)), pq.Array(nonNil(p.Goals)),
	)
	return err
}

func (s *Store) SaveProfile(p models.Profile) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if err := saveProfile(s.db, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) AppendCraving(e models.CravingEvent, p models.Profile) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO cravings (id, occurred_at, trigger_name, intensity, gave_in, cigarettes_smoked, coping_strategy)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Timestamp, e.Trigger, int(e.Intensity), e.GaveIn, e.CigarettesSmoked, e.CopingStrategy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert craving: %w", err)
	}

	if err := saveProfile(tx, p); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetCravings() ([]models.CravingEvent, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT id, occurred_at, trigger_name, intensity, gave_in, cigarettes_smoked, coping_strategy
		FROM cravings ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CravingEvent
	for rows.Next() {
		var e models.CravingEvent
		var intensity int
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Trigger, &intensity, &e.GaveIn, &e.CigarettesSmoked, &e.CopingStrategy); err != nil {
			return nil, err
		}
		e.Intensity = models.Intensity(intensity)
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *Store) GetAchievements() ([]models.AchievementRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AchievementRecord
	for rows.Next() {
		var r models.AchievementRecord
		if err := rows.Scan(&r.ID, &r.UnlockedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Store) AddAchievements(records ...models.AchievementRecord) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO achievements (id, unlocked_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.UnlockedAt); err != nil {
			return fmt.Errorf("failed to add achievement %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Reset() error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("TRUNCATE cravings, achievements, profile"); err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}

	return tx.Commit()
}
