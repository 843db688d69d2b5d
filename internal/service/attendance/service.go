package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clock clock.Clock
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, clk clock.Clock) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		clock:                clk,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// One clock reading decides both the day and the timestamp.
	now := a.clock.Now()
	today := clock.CivilDate(now)
	rec, err := attendance.NewCheckIn(req.EmployeeID, today, now, req.PhotoURL)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateCheckIn
	}

	// The store's uniqueness on (employee, date) settles a race between two check-ins.
	created, err := a.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked in", "employee_id", req.EmployeeID, "date", today.Format(dateLayout))
	return a.mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if req.PhotoURL == "" {
		return attendance.AttendanceResponse{}, attendance.ErrMissingPhoto
	}

	return a.applyToToday(ctx, req.EmployeeID, func(rec *attendance.Record, now time.Time) error {
		return rec.ApplyCheckOut(now, req.PhotoURL)
	})
}

// BreakIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakIn(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.applyToToday(ctx, req.EmployeeID, func(rec *attendance.Record, now time.Time) error {
		return rec.ApplyBreakIn(now, req.PhotoURL)
	})
}

// BreakOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakOut(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.applyToToday(ctx, req.EmployeeID, func(rec *attendance.Record, now time.Time) error {
		return rec.ApplyBreakOut(now, req.PhotoURL)
	})
}

// applyToToday runs event against the employee's record for today under the repository's record lock.
func (a *AttendanceServiceImpl) applyToToday(ctx context.Context, employeeID string, event func(rec *attendance.Record, now time.Time) error) (attendance.AttendanceResponse, error) {
	now := a.clock.Now()
	today := clock.CivilDate(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	}

	updated, err := a.AttendanceRepository.Mutate(ctx, existing.ID, func(rec *attendance.Record) error {
		return event(rec, now)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.mapAttendanceToResponse(updated), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, attendance.SortNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	return a.mapAttendancesToResponse(records), nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	today := a.clock.Today()

	rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		Date:           today.Format(dateLayout),
		State:          rec.State(),
		AllowedActions: rec.AllowedActions(),
	}
	if rec != nil {
		mapped := a.mapAttendanceToResponse(*rec)
		resp.Record = &mapped
	}
	return resp, nil
}

// ListByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployee(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, req.EmployeeID, attendance.SortInsertion)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return a.mapAttendancesToResponse(records), nil
}

// Correct implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Correct(ctx context.Context, req attendance.CorrectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var status *attendance.Status
	if req.Status != nil && *req.Status != "" {
		parsed, err := attendance.ParseStatus(*req.Status)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		status = &parsed
	}

	updated, err := a.AttendanceRepository.Mutate(ctx, req.ID, func(rec *attendance.Record) error {
		rec.ApplyCorrection(status, req.Remarks)
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance corrected", "attendance_id", req.ID, "status_changed", status != nil, "remarks_changed", req.Remarks != nil)
	return a.mapAttendanceToResponse(updated), nil
}
