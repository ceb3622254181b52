package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) GetPrescription(userID, day string) (models.DailyPrescription, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, prescribed_date, ritual_key, shuffles_used,
		       is_completed, completed_at, completion_mood, completion_notes, created_at
		FROM daily_prescriptions
		WHERE user_id = ? AND prescribed_date = ?`, userID, day)
	return scanPrescription(row)
}

func scanPrescription(row *sql.Row) (models.DailyPrescription, error) {
	var p models.DailyPrescription
	var completed int
	var completedAt, notes sql.NullString
	var mood sql.NullInt64
	var createdAt string

	err := row.Scan(&p.ID, &p.UserID, &p.PrescribedDate, &p.RitualKey, &p.ShufflesUsed,
		&completed, &completedAt, &mood, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyPrescription{}, storage.ErrNotFound
		}
		return models.DailyPrescription{}, err
	}

	p.IsCompleted = completed != 0
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.DailyPrescription{}, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		p.CompletedAt = &t
	}
	if mood.Valid {
		p.CompletionMood = int(mood.Int64)
	}
	if notes.Valid {
		p.CompletionNotes = notes.String
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DailyPrescription{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *Store) InsertPrescription(p models.DailyPrescription) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_prescriptions
			(id, user_id, prescribed_date, ritual_key, shuffles_used, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		p.ID, p.UserID, p.PrescribedDate, p.RitualKey, p.ShufflesUsed,
		p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Store) RecentRitualKeys(userID, sinceDay string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT ritual_key
		FROM daily_prescriptions
		WHERE user_id = ? AND prescribed_date >= ?`, userID, sinceDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *Store) ShufflePrescription(userID, day, newKey string, maxShuffles int) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE daily_prescriptions
		SET ritual_key = ?, shuffles_used = shuffles_used + 1
		WHERE user_id = ? AND prescribed_date = ?
		  AND shuffles_used < ? AND is_completed = 0`,
		newKey, userID, day, maxShuffles)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) CompletePrescription(userID, day string, completedAt time.Time, mood int, notes string) (bool, error) {
	var moodVal interface{}
	if mood > 0 {
		moodVal = mood
	}
	var notesVal interface{}
	if notes != "" {
		notesVal = notes
	}

	res, err := s.db.Exec(`
		UPDATE daily_prescriptions
		SET is_completed = 1, completed_at = ?, completion_mood = ?, completion_notes = ?
		WHERE user_id = ? AND prescribed_date = ? AND is_completed = 0`,
		completedAt.Format(time.RFC3339), moodVal, notesVal, userID, day)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) UndoPrescription(userID, day string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE daily_prescriptions
		SET is_completed = 0, completed_at = NULL, completion_mood = NULL, completion_notes = NULL
		WHERE user_id = ? AND prescribed_date = ? AND is_completed = 1`,
		userID, day)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
