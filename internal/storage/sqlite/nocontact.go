package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) InsertPeriod(p models.NoContactPeriod) error {
	_, err := s.db.Exec(`
		INSERT INTO no_contact_periods (id, user_id, contact_name, start_date, target_days, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.ContactName, p.StartDate.Format(time.RFC3339),
		p.TargetDays, boolToInt(p.IsActive), p.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetPeriod(userID, periodID string) (models.NoContactPeriod, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, contact_name, start_date, target_days, is_active, created_at
		FROM no_contact_periods
		WHERE id = ? AND user_id = ?`, periodID, userID)

	p, err := scanPeriod(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NoContactPeriod{}, storage.ErrNotFound
		}
		return models.NoContactPeriod{}, err
	}
	return p, nil
}

func scanPeriod(scan func(...interface{}) error) (models.NoContactPeriod, error) {
	var p models.NoContactPeriod
	var active int
	var startDate, createdAt string

	err := scan(&p.ID, &p.UserID, &p.ContactName, &startDate, &p.TargetDays, &active, &createdAt)
	if err != nil {
		return models.NoContactPeriod{}, err
	}

	p.IsActive = active != 0
	p.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return models.NoContactPeriod{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.NoContactPeriod{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *Store) ListPeriods(userID string, includeEnded bool) ([]models.NoContactPeriod, error) {
	query := `
		SELECT id, user_id, contact_name, start_date, target_days, is_active, created_at
		FROM no_contact_periods
		WHERE user_id = ?`
	if !includeEnded {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []models.NoContactPeriod
	for rows.Next() {
		p, err := scanPeriod(rows.Scan)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) EndPeriod(userID, periodID string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE no_contact_periods
		SET is_active = 0
		WHERE id = ? AND user_id = ? AND is_active = 1`,
		periodID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) InsertBreach(userID string, b models.NoContactBreach) error {
	var notesVal interface{}
	if b.Notes != "" {
		notesVal = b.Notes
	}

	// The INSERT re-verifies period ownership in the same statement; an
	// unowned or missing period inserts nothing.
	res, err := s.db.Exec(`
		INSERT INTO no_contact_breaches (id, period_id, breach_date, breach_type, notes)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (
			SELECT 1 FROM no_contact_periods WHERE id = ? AND user_id = ?
		)`,
		b.ID, b.PeriodID, b.BreachDate.Format(time.RFC3339), b.BreachType, notesVal,
		b.PeriodID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListBreaches(userID, periodID string) ([]models.NoContactBreach, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.period_id, b.breach_date, b.breach_type, b.notes
		FROM no_contact_breaches b
		JOIN no_contact_periods p ON p.id = b.period_id
		WHERE b.period_id = ? AND p.user_id = ?
		ORDER BY b.breach_date, b.id`, periodID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breaches []models.NoContactBreach
	for rows.Next() {
		var b models.NoContactBreach
		var breachDate string
		var notes sql.NullString

		if err := rows.Scan(&b.ID, &b.PeriodID, &breachDate, &b.BreachType, &notes); err != nil {
			return nil, err
		}
		b.BreachDate, err = time.Parse(time.RFC3339, breachDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse breach_date: %w", err)
		}
		if notes.Valid {
			b.Notes = notes.String
		}
		breaches = append(breaches, b)
	}
	return breaches, rows.Err()
}

func (s *Store) DeleteBreach(userID, breachID string) (bool, error) {
	// Two-hop ownership check: the breach must belong to a period owned by
	// the caller, all resolved in the one DELETE.
	res, err := s.db.Exec(`
		DELETE FROM no_contact_breaches
		WHERE id = ? AND period_id IN (
			SELECT id FROM no_contact_periods WHERE user_id = ?
		)`, breachID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
