package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const (
	dateLayout        = "2006-01-02"
	attendanceColumns = `
		id, employee_id, date,
		check_in, check_out, break_in, break_out,
		check_in_photo, check_out_photo, break_in_photo, break_out_photo,
		total_hours, status, remarks, created_at, updated_at`
)

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var status string
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.BreakIn,
		&rec.BreakOut,
		&rec.CheckInPhoto,
		&rec.CheckOutPhoto,
		&rec.BreakInPhoto,
		&rec.BreakOutPhoto,
		&rec.TotalHours,
		&status,
		&rec.Remarks,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	rec.Status = attendance.Status(status)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, check_in_photo, status, remarks, created_at, updated_at
		) VALUES ($1, $2::date, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Date.Format(dateLayout),
		rec.CheckIn,
		rec.CheckInPhoto,
		string(rec.Status),
		rec.Remarks,
	))
	if err != nil {
		// Losing a concurrent check-in race surfaces here.
		if isUniqueViolation(err, "uq_attendances_employee_date") {
			return attendance.Record{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2::date`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// Mutate implements attendance.AttendanceRepository.
// The row lock taken by SELECT ... FOR UPDATE serializes concurrent events on one record.
func (r *attendanceRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*attendance.Record) error) (attendance.Record, error) {
	var updated attendance.Record

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, tx pgx.Tx) error {
		rec, err := scanAttendance(tx.QueryRow(txCtx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrRecordNotFound
			}
			return fmt.Errorf("failed to lock attendance: %w", err)
		}

		if err := fn(&rec); err != nil {
			return err
		}

		query := `
			UPDATE attendances SET
				check_out = $2,
				break_in = $3,
				break_out = $4,
				check_out_photo = $5,
				break_in_photo = $6,
				break_out_photo = $7,
				total_hours = $8,
				status = $9,
				remarks = $10,
				updated_at = NOW()
			WHERE id = $1
			RETURNING ` + attendanceColumns

		updated, err = scanAttendance(tx.QueryRow(txCtx, query,
			rec.ID,
			rec.CheckOut,
			rec.BreakIn,
			rec.BreakOut,
			rec.CheckOutPhoto,
			rec.BreakInPhoto,
			rec.BreakOutPhoto,
			rec.TotalHours,
			string(rec.Status),
			rec.Remarks,
		))
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return updated, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, order attendance.SortOrder) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	orderBy := "date DESC"
	if order == attendance.SortInsertion {
		orderBy = "created_at ASC, id ASC"
	}

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = $1 ORDER BY `+orderBy, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}

	return records, nil
}
