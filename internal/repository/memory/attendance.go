package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

const dateLayout = "2006-01-02"

type attendanceRepository struct {
	store *Store
}

func dayKey(employeeID string, date time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, date: date.Format(dateLayout)}
}

func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(rec.EmployeeID, rec.Date)
	if _, exists := s.recordByDay[key]; exists {
		return attendance.Record{}, attendance.ErrDuplicateCheckIn
	}

	now := s.now()
	rec.ID = newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records[rec.ID] = rec
	s.recordByDay[key] = rec.ID
	s.recordOrder = append(s.recordOrder, rec.ID)
	return rec, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.recordByDay[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	rec := s.records[id]
	return &rec, nil
}

func (r *attendanceRepository) Mutate(ctx context.Context, id string, fn func(*attendance.Record) error) (attendance.Record, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	// fn works on a copy so a rejected event leaves the stored record untouched.
	working := rec
	if err := fn(&working); err != nil {
		return attendance.Record{}, err
	}

	working.ID = rec.ID
	working.EmployeeID = rec.EmployeeID
	working.Date = rec.Date
	working.CreatedAt = rec.CreatedAt
	working.UpdatedAt = s.now()
	s.records[id] = working
	return working, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, order attendance.SortOrder) ([]attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]attendance.Record, 0)
	for _, id := range s.recordOrder {
		if rec := s.records[id]; rec.EmployeeID == employeeID {
			records = append(records, rec)
		}
	}

	if order == attendance.SortNewestFirst {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.After(records[j].Date)
		})
	}
	return records, nil
}
