package attendance

import (
	"context"
	"time"
)

type SortOrder int

const (
	// SortNewestFirst orders by date descending.
	SortNewestFirst SortOrder = iota
	// SortInsertion orders by creation time ascending.
	SortInsertion
)

// AttendanceRepository stores attendance records. At most one record exists per employee and date.
type AttendanceRepository interface {
	// Create inserts the day's record and returns ErrDuplicateCheckIn if one already exists.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID returns ErrRecordNotFound for an unknown id.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil without error when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Mutate loads the record exclusively, applies fn and persists the result.
	// Nothing is written when fn returns an error. Concurrent calls for one record are serialized.
	Mutate(ctx context.Context, id string, fn func(*Record) error) (Record, error)

	ListByEmployee(ctx context.Context, employeeID string, order SortOrder) ([]Record, error)
}
