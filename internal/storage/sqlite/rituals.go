package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) InsertUserRitual(r models.UserRitual) error {
	_, err := s.db.Exec(`
		INSERT INTO user_rituals (id, user_id, title, description, category, target_frequency, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Title, r.Description, r.Category, r.TargetFrequency,
		boolToInt(r.IsActive), r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUserRitual(userID, ritualID string) (models.UserRitual, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, description, category, target_frequency, is_active, created_at
		FROM user_rituals
		WHERE id = ? AND user_id = ?`, ritualID, userID)

	r, err := scanUserRitual(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserRitual{}, storage.ErrNotFound
		}
		return models.UserRitual{}, err
	}
	return r, nil
}

func scanUserRitual(scan func(...interface{}) error) (models.UserRitual, error) {
	var r models.UserRitual
	var active int
	var createdAt string

	err := scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category,
		&r.TargetFrequency, &active, &createdAt)
	if err != nil {
		return models.UserRitual{}, err
	}

	r.IsActive = active != 0
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.UserRitual{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return r, nil
}

func (s *Store) ListUserRituals(userID string, includeInactive bool) ([]models.UserRitual, error) {
	query := `
		SELECT id, user_id, title, description, category, target_frequency, is_active, created_at
		FROM user_rituals
		WHERE user_id = ?`
	if !includeInactive {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rituals []models.UserRitual
	for rows.Next() {
		r, err := scanUserRitual(rows.Scan)
		if err != nil {
			return nil, err
		}
		rituals = append(rituals, r)
	}
	return rituals, rows.Err()
}

func (s *Store) UpdateUserRitual(r models.UserRitual) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE user_rituals
		SET title = ?, description = ?, category = ?, target_frequency = ?
		WHERE id = ? AND user_id = ?`,
		r.Title, r.Description, r.Category, r.TargetFrequency, r.ID, r.UserID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) SoftDeleteUserRitual(userID, ritualID string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE user_rituals
		SET is_active = 0
		WHERE id = ? AND user_id = ? AND is_active = 1`,
		ritualID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) InsertRitualCompletion(c models.RitualCompletion) error {
	var moodVal interface{}
	if c.Mood > 0 {
		moodVal = c.Mood
	}
	var notesVal interface{}
	if c.Notes != "" {
		notesVal = c.Notes
	}

	_, err := s.db.Exec(`
		INSERT INTO ritual_completions (id, ritual_id, completed_at, mood, notes)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.RitualID, c.CompletedAt.Format(time.RFC3339), moodVal, notesVal)
	return err
}

func (s *Store) ListRitualCompletions(ritualID string, since time.Time) ([]models.RitualCompletion, error) {
	rows, err := s.db.Query(`
		SELECT id, ritual_id, completed_at, mood, notes
		FROM ritual_completions
		WHERE ritual_id = ? AND completed_at >= ?
		ORDER BY completed_at`, ritualID, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.RitualCompletion
	for rows.Next() {
		var c models.RitualCompletion
		var completedAt string
		var mood sql.NullInt64
		var notes sql.NullString

		if err := rows.Scan(&c.ID, &c.RitualID, &completedAt, &mood, &notes); err != nil {
			return nil, err
		}
		c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		if mood.Valid {
			c.Mood = int(mood.Int64)
		}
		if notes.Valid {
			c.Notes = notes.String
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
