package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// EventRequest carries a check-in, check-out or break event for the authenticated employee.
type EventRequest struct {
	EmployeeID string `json:"-" validate:"required"` // From JWT
	PhotoURL   string `json:"photoUrl" validate:"max=2048"`
}

func (r *EventRequest) Validate() error {
	r.PhotoURL = strings.TrimSpace(r.PhotoURL)
	return validator.Struct(r)
}

type ListAttendanceRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
}

func (r *ListAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

// CorrectAttendanceRequest is a partial update. A nil or empty field is left unchanged.
type CorrectAttendanceRequest struct {
	ID      string  `json:"id" validate:"required,uuid"`
	Status  *string `json:"status,omitempty"`
	Remarks *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

func (r *CorrectAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employeeId"`
	Date          string   `json:"date"`
	CheckIn       *string  `json:"checkIn"`
	CheckOut      *string  `json:"checkOut"`
	BreakIn       *string  `json:"breakIn"`
	BreakOut      *string  `json:"breakOut"`
	CheckInPhoto  *string  `json:"checkInPhoto"`
	CheckOutPhoto *string  `json:"checkOutPhoto"`
	BreakInPhoto  *string  `json:"breakInPhoto"`
	BreakOutPhoto *string  `json:"breakOutPhoto"`
	TotalHours    *float64 `json:"totalHours"`
	Status        Status   `json:"status"`
	Remarks       *string  `json:"remarks"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type TodayResponse struct {
	Date           string              `json:"date"`
	State          State               `json:"state"`
	AllowedActions []Action            `json:"allowedActions"`
	Record         *AttendanceResponse `json:"record"`
}

type PhotoUploadResponse struct {
	PhotoURL string `json:"photoUrl"`
}
