package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	BreakIn(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	BreakOut(ctx context.Context, req EventRequest) (AttendanceResponse, error)

	// History returns the employee's records, newest date first.
	History(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	Today(ctx context.Context, employeeID string) (TodayResponse, error)

	// Admin
	ListByEmployee(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)
	Correct(ctx context.Context, req CorrectAttendanceRequest) (AttendanceResponse, error)
}
