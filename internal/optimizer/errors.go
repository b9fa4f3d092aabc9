package optimizer

import "errors"

// Rejection reasons. They never reach the caller of Generate; each one only
// discards the current candidate and counts towards the failure threshold.
var (
	ErrSlotFill        = errors.New("no eligible player for slot")
	ErrDuplicateLineup = errors.New("lineup already accepted")
	ErrSalaryBand      = errors.New("lineup salary outside band")
	ErrExposureCap     = errors.New("lineup would exceed a liked player's exposure cap")
)

// Reason labels used in statistics and metrics
const (
	ReasonSlotFill  = "slot_fill"
	ReasonDuplicate = "duplicate"
	ReasonSalary    = "salary_band"
	ReasonExposure  = "exposure_cap"
	ReasonUnknown   = "unknown"
)

// RejectionReason maps a rejection error to its label
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrSlotFill):
		return ReasonSlotFill
	case errors.Is(err, ErrDuplicateLineup):
		return ReasonDuplicate
	case errors.Is(err, ErrSalaryBand):
		return ReasonSalary
	case errors.Is(err, ErrExposureCap):
		return ReasonExposure
	default:
		return ReasonUnknown
	}
}
