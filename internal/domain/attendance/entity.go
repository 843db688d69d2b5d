package attendance

import (
	"strings"
	"time"
)

type Status string

const (
	StatusOnTime  Status = "On-time"
	StatusWeekOff Status = "Week Off"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
)

var ValidStatuses = []Status{StatusOnTime, StatusWeekOff, StatusLate, StatusAbsent, StatusHalfDay}

func ParseStatus(s string) (Status, error) {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// State is the position of a day's record in the check-in / break / check-out sequence.
type State string

const (
	StateNotStarted    State = "NotStarted"
	StateCheckedIn     State = "CheckedIn"
	StateOnBreak       State = "OnBreak"
	StateBreakComplete State = "BreakComplete"
	StateCheckedOut    State = "CheckedOut"
)

type Action string

const (
	ActionCheckIn  Action = "checkin"
	ActionBreakIn  Action = "breakin"
	ActionBreakOut Action = "breakout"
	ActionCheckOut Action = "checkout"
)

// Record is one employee's attendance for one civil day.
type Record struct {
	ID            string
	EmployeeID    string
	Date          time.Time // civil date at midnight UTC
	CheckIn       *time.Time
	CheckOut      *time.Time
	BreakIn       *time.Time
	BreakOut      *time.Time
	CheckInPhoto  *string
	CheckOutPhoto *string
	BreakInPhoto  *string
	BreakOutPhoto *string
	TotalHours    *float64
	Status        Status
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCheckIn builds the record created by a day's first check-in.
func NewCheckIn(employeeID string, date time.Time, now time.Time, photoURL string) (Record, error) {
	photo := optionalPhoto(photoURL)
	if photo == nil {
		return Record{}, ErrMissingPhoto
	}
	return Record{
		EmployeeID:   employeeID,
		Date:         date,
		CheckIn:      &now,
		CheckInPhoto: photo,
		Status:       StatusOnTime,
	}, nil
}

// State derives the record's position. A nil record has not started.
func (r *Record) State() State {
	switch {
	case r == nil || r.CheckIn == nil:
		return StateNotStarted
	case r.CheckOut != nil:
		return StateCheckedOut
	case r.BreakOut != nil:
		return StateBreakComplete
	case r.BreakIn != nil:
		return StateOnBreak
	default:
		return StateCheckedIn
	}
}

// AllowedActions lists the events the record would currently accept.
func (r *Record) AllowedActions() []Action {
	if r == nil || r.CheckIn == nil {
		return []Action{ActionCheckIn}
	}
	if r.CheckOut != nil {
		return []Action{}
	}
	actions := []Action{}
	if r.BreakIn == nil {
		actions = append(actions, ActionBreakIn)
	} else if r.BreakOut == nil {
		actions = append(actions, ActionBreakOut)
	}
	return append(actions, ActionCheckOut)
}

func (r *Record) ApplyCheckOut(now time.Time, photoURL string) error {
	photo := optionalPhoto(photoURL)
	if photo == nil {
		return ErrMissingPhoto
	}
	if r.CheckIn == nil {
		return ErrNoCheckIn
	}
	if r.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}

	hours := now.Sub(*r.CheckIn).Hours()
	r.CheckOut = &now
	r.CheckOutPhoto = photo
	r.TotalHours = &hours
	return nil
}

func (r *Record) ApplyBreakIn(now time.Time, photoURL string) error {
	if r.CheckIn == nil {
		return ErrNoCheckIn
	}
	if r.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	if r.BreakIn != nil {
		return ErrAlreadyOnBreak
	}
	r.BreakIn = &now
	r.BreakInPhoto = optionalPhoto(photoURL)
	return nil
}

func (r *Record) ApplyBreakOut(now time.Time, photoURL string) error {
	if r.CheckIn == nil {
		return ErrNoCheckIn
	}
	if r.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	if r.BreakIn == nil {
		return ErrBreakNotStarted
	}
	if r.BreakOut != nil {
		return ErrAlreadyBreakComplete
	}
	r.BreakOut = &now
	r.BreakOutPhoto = optionalPhoto(photoURL)
	return nil
}

// ApplyCorrection overwrites only the supplied fields. Timestamps are never touched.
func (r *Record) ApplyCorrection(status *Status, remarks *string) {
	if status != nil {
		r.Status = *status
	}
	if remarks != nil {
		value := *remarks
		r.Remarks = &value
	}
}

func optionalPhoto(photoURL string) *string {
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return nil
	}
	return &photoURL
}
