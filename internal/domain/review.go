package domain

import (
	"fmt"
	"time"

	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// ReviewKind identifies one of the four review events of a study task.
type ReviewKind string

// The review kinds, in schedule order.
const (
	ReviewFirst  ReviewKind = "first"
	ReviewSecond ReviewKind = "second"
	ReviewThird  ReviewKind = "third"
	ReviewExam   ReviewKind = "exam"
)

// ReviewKinds lists every review kind in schedule order.
var ReviewKinds = [4]ReviewKind{ReviewFirst, ReviewSecond, ReviewThird, ReviewExam}

// Persian labels shown to the learner. Older data identifies kinds by label.
const (
	labelFirst  = "مرور اول"
	labelSecond = "مرور دوم"
	labelThird  = "مرور سوم"
	labelExam   = "آزمون"
)

// ParseReviewKind decodes a review kind from its identifier or its Persian
// label.
func ParseReviewKind(s string) (ReviewKind, error) {
	switch s {
	case string(ReviewFirst), labelFirst:
		return ReviewFirst, nil
	case string(ReviewSecond), labelSecond:
		return ReviewSecond, nil
	case string(ReviewThird), labelThird:
		return ReviewThird, nil
	case string(ReviewExam), labelExam:
		return ReviewExam, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReviewKind, s)
	}
}

// IsValid reports whether k is one of the four review kinds.
func (k ReviewKind) IsValid() bool {
	return k.Index() >= 0
}

// Index returns the position of k in ReviewKinds, or -1 for unknown kinds.
func (k ReviewKind) Index() int {
	switch k {
	case ReviewFirst:
		return 0
	case ReviewSecond:
		return 1
	case ReviewThird:
		return 2
	case ReviewExam:
		return 3
	default:
		return -1
	}
}

// Label returns the Persian label of k.
func (k ReviewKind) Label() string {
	switch k {
	case ReviewFirst:
		return labelFirst
	case ReviewSecond:
		return labelSecond
	case ReviewThird:
		return labelThird
	case ReviewExam:
		return labelExam
	default:
		return string(k)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ReviewKind) UnmarshalText(text []byte) error {
	parsed, err := ParseReviewKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ReviewEvent is one scheduled review of a study task. Its kind never
// changes; the other fields change through the tracker operations, each of
// which returns a new value.
type ReviewEvent struct {
	Kind          ReviewKind    `json:"type"`
	DueDate       calendar.Date `json:"date"`
	Completed     bool          `json:"completed"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	PostponeCount int           `json:"postponed"`
}

// IsPending reports whether the review has not been completed yet.
func (e ReviewEvent) IsPending() bool {
	return !e.Completed
}
