package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

const dateLayout = "2006-01-02"

func (a *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(a.clock.Location()).Format(time.RFC3339)
	return &format
}

func (a *AttendanceServiceImpl) mapAttendanceToResponse(rec attendance.Record) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		Date:          rec.Date.Format(dateLayout),
		CheckIn:       a.timePtrToString(rec.CheckIn),
		CheckOut:      a.timePtrToString(rec.CheckOut),
		BreakIn:       a.timePtrToString(rec.BreakIn),
		BreakOut:      a.timePtrToString(rec.BreakOut),
		CheckInPhoto:  rec.CheckInPhoto,
		CheckOutPhoto: rec.CheckOutPhoto,
		BreakInPhoto:  rec.BreakInPhoto,
		BreakOutPhoto: rec.BreakOutPhoto,
		TotalHours:    rec.TotalHours,
		Status:        rec.Status,
		Remarks:       rec.Remarks,
		CreatedAt:     rec.CreatedAt.In(a.clock.Location()).Format(time.RFC3339),
		UpdatedAt:     rec.UpdatedAt.In(a.clock.Location()).Format(time.RFC3339),
	}
}

func (a *AttendanceServiceImpl) mapAttendancesToResponse(records []attendance.Record) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, a.mapAttendanceToResponse(rec))
	}
	return responses
}
