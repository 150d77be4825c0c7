package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokefree/internal/logger"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/storage"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func (s *Store) GetProfile() (models.Profile, error) {
	if s.db == nil {
		return models.Profile{}, storage.ErrNotLoaded
	}

	var p models.Profile
	var startDate, triggers, motivations, goals string
	var lastCravingAt, lastLoginAt sql.NullString

	err := s.db.QueryRow(`
		SELECT name, start_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack, currency,
			craving_count, craving_managed, last_craving_at, last_login_at,
			streak_count, longest_streak, triggers, motivations, goals
		FROM profile WHERE id = 1`).Scan(
		&p.Name, &startDate, &p.CigarettesPerDay, &p.CostPerPack, &p.CigarettesPerPack, &p.Currency,
		&p.CravingCount, &p.CravingManaged, &lastCravingAt, &lastLoginAt,
		&p.StreakCount, &p.LongestStreak, &triggers, &motivations, &goals,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	// A row we cannot interpret is treated like a missing one
	p.StartDate, err = parseTime(startDate)
	if err != nil {
		logger.Warn("Ignoring profile with unreadable start date", "value", startDate, "error", err)
		return models.Profile{}, storage.ErrNotFound
	}
	if lastLoginAt.Valid {
		if p.LastLoginAt, err = parseTime(lastLoginAt.String); err != nil {
			logger.Warn("Ignoring unreadable last login time", "value", lastLoginAt.String, "error", err)
			p.LastLoginAt = time.Time{}
		}
	}
	if lastCravingAt.Valid {
		if t, err := parseTime(lastCravingAt.String); err == nil {
			p.LastCravingAt = &t
		}
	}
	for _, f := range []struct {
		raw string
		dst *[]string
	}{{triggers, &p.Triggers}, {motivations, &p.Motivations}, {goals, &p.Goals}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			logger.Warn("Ignoring unreadable profile list", "value", f.raw, "error", err)
		}
	}

	return p, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveProfile(e execer, p models.Profile) error {
	triggers, err := encodeList(p.Triggers)
	if err != nil {
		return err
	}
	motivations, err := encodeList(p.Motivations)
	if err != nil {
		return err
	}
	goals, err := encodeList(p.Goals)
	if err != nil {
		return err
	}

	var lastCravingAt, lastLoginAt sql.NullString
	if p.LastCravingAt != nil {
		lastCravingAt = sql.NullString{String: formatTime(*p.LastCravingAt), Valid: true}
	}
	if !p.LastLoginAt.IsZero() {
		lastLoginAt = sql.NullString{String: formatTime(p.LastLoginAt), Valid: true}
	}

	_, err = e.Exec(`
		INSERT OR REPLACE INTO profile (
			id, name, start_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack, currency,
			craving_count, craving_managed, last_craving_at, last_login_at,
			streak_count, longest_streak, triggers, motivations, goals
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, formatTime(p.StartDate), p.CigarettesPerDay, p.CostPerPack, p.CigarettesPerPack, string(p.Currency),
		p.CravingCount, p.CravingManaged, lastCravingAt, lastLoginAt,
		p.StreakCount, p.LongestStreak, triggers, motivations, goals,
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

	gaveIn := 0
	if e.GaveIn {
		gaveIn = 1
	}
	_, err = tx.Exec(`
		INSERT INTO cravings (id, occurred_at, trigger_name, intensity, gave_in, cigarettes_smoked, coping_strategy)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, formatTime(e.Timestamp), e.Trigger, int(e.Intensity), gaveIn, e.CigarettesSmoked, e.CopingStrategy,
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
		var occurredAt string
		var intensity, gaveIn int
		if err := rows.Scan(&e.ID, &occurredAt, &e.Trigger, &intensity, &gaveIn, &e.CigarettesSmoked, &e.CopingStrategy); err != nil {
			return nil, err
		}
		e.Timestamp, err = parseTime(occurredAt)
		if err != nil {
			logger.Warn("Skipping craving with unreadable timestamp", "id", e.ID, "value", occurredAt, "error", err)
			continue
		}
		e.Intensity = models.Intensity(intensity)
		e.GaveIn = gaveIn != 0
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
		var unlockedAt string
		if err := rows.Scan(&r.ID, &unlockedAt); err != nil {
			return nil, err
		}
		if r.UnlockedAt, err = parseTime(unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to parse unlocked_at for achievement %s: %w", r.ID, err)
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

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, formatTime(r.UnlockedAt)); err != nil {
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

	for _, table := range []string{"cravings", "achievements", "profile"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}
