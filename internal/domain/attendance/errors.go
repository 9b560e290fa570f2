package attendance

import "errors"

var (
	ErrSummaryNotFound = errors.New("monthly attendance summary not found")
)
