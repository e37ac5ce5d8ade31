package storage

import (
	"fmt"

	"github.com/hperssn/meditate/internal/domain"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// SessionRow mirrors one row of the sessions table.
type SessionRow struct {
	ID          int64
	Title       string
	Duration    int
	Type        string
	Description string
}

// ToDomain converts a stored row into a SessionRecord.
func (r SessionRow) ToDomain() (domain.SessionRecord, error) {
	rec, err := domain.NewSessionRecord(r.Title, r.Duration, domain.KindFromType(r.Type), r.Description)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("session row %d: %w", r.ID, err)
	}
	return rec, nil
}

// FromDomainSession converts a SessionRecord into an insertable row.
func FromDomainSession(s domain.SessionRecord) SessionRow {
	return SessionRow{
		Title:       s.Title,
		Duration:    s.DurationMinutes,
		Type:        s.Kind.String(),
		Description: s.Description,
	}
}
