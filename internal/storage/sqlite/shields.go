package sqlite

import (
	"time"

	"github.com/mendapp/mend/internal/models"
)

func (s *Store) TryInsertShieldUsage(u models.StreakShieldUsage, windowStart time.Time, maxPerWeek int) (bool, error) {
	// The quota check and the insert share one statement so two concurrent
	// requests cannot both pass a stale count.
	res, err := s.db.Exec(`
		INSERT INTO shield_usages (id, period_id, used_at)
		SELECT ?, ?, ?
		WHERE (
			SELECT COUNT(*) FROM shield_usages
			WHERE period_id = ? AND used_at >= ?
		) < ?`,
		u.ID, u.PeriodID, u.UsedAt.Format(time.RFC3339),
		u.PeriodID, windowStart.Format(time.RFC3339), maxPerWeek)
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
		WHERE period_id = ? AND used_at >= ?`,
		periodID, since.Format(time.RFC3339)).Scan(&count)
	return count, err
}
