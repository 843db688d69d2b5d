package attendance

import "errors"

// Attendance domain errors
var (
	// Validation
	ErrMissingPhoto  = errors.New("photo is required")
	ErrInvalidStatus = errors.New("invalid attendance status")

	// Sequence conflicts
	ErrDuplicateCheckIn     = errors.New("already checked in today")
	ErrNoCheckIn            = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut    = errors.New("already checked out today")
	ErrAlreadyOnBreak       = errors.New("break already started today")
	ErrBreakNotStarted      = errors.New("break has not been started")
	ErrAlreadyBreakComplete = errors.New("break already completed today")

	ErrRecordNotFound = errors.New("attendance record not found")
)

// Proof photo upload errors
var (
	ErrUnsupportedPhoto = errors.New("photo must be a jpg, jpeg or png image")
	ErrPhotoTooLarge    = errors.New("photo exceeds the upload size limit")
)
