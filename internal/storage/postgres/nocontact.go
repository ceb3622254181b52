package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

func (s *Store) InsertPeriod(p models.NoContactPeriod) error {
	_, err := s.db.Exec(`
		INSERT INTO no_contact_periods (id, user_id, contact_name, start_date, target_days, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.UserID, p.ContactName, p.StartDate, p.TargetDays, p.IsActive, p.CreatedAt)
	return err
}

func (s *Store) GetPeriod(userID, periodID string) (models.NoContactPeriod, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, contact_name, start_date, target_days, is_active, created_at
		FROM no_contact_periods
		WHERE id = $1 AND user_id = $2`, periodID, userID)

	var p models.NoContactPeriod
	err := row.Scan(&p.ID, &p.UserID, &p.ContactName, &p.StartDate, &p.TargetDays, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NoContactPeriod{}, storage.ErrNotFound
		}
		return models.NoContactPeriod{}, err
	}
	return p, nil
}

func (s *Store) ListPeriods(userID string, includeEnded bool) ([]models.NoContactPeriod, error) {
	query := `
		SELECT id, user_id, contact_name, start_date, target_days, is_active, created_at
		FROM no_contact_periods
		WHERE user_id = $1`
	if !includeEnded {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []models.NoContactPeriod
	for rows.Next() {
		var p models.NoContactPeriod
		if err := rows.Scan(&p.ID, &p.UserID, &p.ContactName, &p.StartDate,
			&p.TargetDays, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) EndPeriod(userID, periodID string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE no_contact_periods
		SET is_active = FALSE
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE`,
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

	res, err := s.db.Exec(`
		INSERT INTO no_contact_breaches (id, period_id, breach_date, breach_type, notes)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (
			SELECT 1 FROM no_contact_periods WHERE id = $2 AND user_id = $6
		)`,
		b.ID, b.PeriodID, b.BreachDate, b.BreachType, notesVal, userID)
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
		WHERE b.period_id = $1 AND p.user_id = $2
		ORDER BY b.breach_date, b.id`, periodID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breaches []models.NoContactBreach
	for rows.Next() {
		var b models.NoContactBreach
		var notes sql.NullString
		if err := rows.Scan(&b.ID, &b.PeriodID, &b.BreachDate, &b.BreachType, &notes); err != nil {
			return nil, err
		}
		if notes.Valid {
			b.Notes = notes.String
		}
		breaches = append(breaches, b)
	}
	return breaches, rows.Err()
}

func (s *Store) DeleteBreach(userID, breachID string) (bool, error) {
	res, err := s.db.Exec(`
		DELETE FROM no_contact_breaches
		WHERE id = $1 AND period_id IN (
			SELECT id FROM no_contact_periods WHERE user_id = $2
		)`, breachID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) TryInsertShieldUsage(u models.StreakShieldUsage, windowStart time.Time, maxPerWeek int) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO shield_usages (id, period_id, used_at)
		SELECT $1, $2, $3
		WHERE (
			SELECT COUNT(*) FROM shield_usages
			WHERE period_id = $2 AND used_at >= $4
		) < $5`,
		u.ID, u.PeriodID, u.UsedAt, windowStart, maxPerWeek)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (s *Store) CountShieldUsagesSince(periodID string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM shield_usages
		WHERE period_id = $1 AND used_at >= $2`,
		periodID, since).Scan(&count)
	return count, err
}
