package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) InsertUserRitual(r models.UserRitual) error {
	_, err := s.db.Exec(`
		INSERT INTO user_rituals (id, user_id, title, description, category, target_frequency, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.UserID, r.Title, r.Description, r.Category, r.TargetFrequency, r.IsActive, r.CreatedAt)
	return err
}

func (s *Store) GetUserRitual(userID, ritualID string) (models.UserRitual, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, title, description, category, target_frequency, is_active, created_at
		FROM user_rituals
		WHERE id = $1 AND user_id = $2`, ritualID, userID)

	var r models.UserRitual
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category,
		&r.TargetFrequency, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserRitual{}, storage.ErrNotFound
		}
		return models.UserRitual{}, err
	}
	return r, nil
}

func (s *Store) ListUserRituals(userID string, includeInactive bool) ([]models.UserRitual, error) {
	query := `
		SELECT id, user_id, title, description, category, target_frequency, is_active, created_at
		FROM user_rituals
		WHERE user_id = $1`
	if !includeInactive {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rituals []models.UserRitual
	for rows.Next() {
		var r models.UserRitual
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category,
			&r.TargetFrequency, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		rituals = append(rituals, r)
	}
	return rituals, rows.Err()
}

func (s *Store) UpdateUserRitual(r models.UserRitual) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE user_rituals
		SET title = $1, description = $2, category = $3, target_frequency = $4
		WHERE id = $5 AND user_id = $6`,
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
		SET is_active = FALSE
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`,
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
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.RitualID, c.CompletedAt, moodVal, notesVal)
	return err
}

func (s *Store) ListRitualCompletions(ritualID string, since time.Time) ([]models.RitualCompletion, error) {
	rows, err := s.db.Query(`
		SELECT id, ritual_id, completed_at, mood, notes
		FROM ritual_completions
		WHERE ritual_id = $1 AND completed_at >= $2
		ORDER BY completed_at`, ritualID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.RitualCompletion
	for rows.Next() {
		var c models.RitualCompletion
		var mood sql.NullInt64
		var notes sql.NullString

		if err := rows.Scan(&c.ID, &c.RitualID, &c.CompletedAt, &mood, &notes); err != nil {
			return nil, err
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
