package overtime

import "errors"

var (
	ErrRequestNotFound         = errors.New("overtime request not found")
	ErrRequestAlreadyProcessed = errors.New("overtime request already processed")
	ErrInvalidDuration         = errors.New("overtime end time must be after start time")
	ErrDailyCapExceeded        = errors.New("overtime exceeds the daily cap for working days")
	ErrWeeklyCapExceeded       = errors.New("overtime exceeds the weekly cap")
)
