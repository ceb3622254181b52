package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) GetPrescription(userID, day string) (models.DailyPrescription, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, prescribed_date, ritual_key, shuffles_used,
		       is_completed, completed_at, completion_mood, completion_notes, created_at
		FROM daily_prescriptions
		WHERE user_id = $1 AND prescribed_date = $2`, userID, day)

	var p models.DailyPrescription
	var completedAt sql.NullTime
	var mood sql.NullInt64
	var notes sql.NullString

	err := row.Scan(&p.ID, &p.UserID, &p.PrescribedDate, &p.RitualKey, &p.ShufflesUsed,
		&p.IsCompleted, &completedAt, &mood, &notes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyPrescription{}, storage.ErrNotFound
		}
		return models.DailyPrescription{}, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	if mood.Valid {
		p.CompletionMood = int(mood.Int64)
	}
	if notes.Valid {
		p.CompletionNotes = notes.String
	}
	return p, nil
}

func (s *Store) InsertPrescription(p models.DailyPrescription) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_prescriptions
			(id, user_id, prescribed_date, ritual_key, shuffles_used, is_completed, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)`,
		p.ID, p.UserID, p.PrescribedDate, p.RitualKey, p.ShufflesUsed, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
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
		WHERE user_id = $1 AND prescribed_date >= $2`, userID, sinceDay)
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
		SET ritual_key = $1, shuffles_used = shuffles_used + 1
		WHERE user_id = $2 AND prescribed_date = $3
		  AND shuffles_used < $4 AND is_completed = FALSE`,
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
		SET is_completed = TRUE, completed_at = $1, completion_mood = $2, completion_notes = $3
		WHERE user_id = $4 AND prescribed_date = $5 AND is_completed = FALSE`,
		completedAt, moodVal, notesVal, userID, day)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) UndoPrescription(userID, day string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE daily_prescriptions
		SET is_completed = FALSE, completed_at = NULL, completion_mood = NULL, completion_notes = NULL
		WHERE user_id = $1 AND prescribed_date = $2 AND is_completed = TRUE`,
		userID, day)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
