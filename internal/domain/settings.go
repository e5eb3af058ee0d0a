package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ReviewIntervals holds the day offsets from the anchor date for each review
// kind. Valid intervals satisfy 1 <= First < Second < Third < Exam.
type ReviewIntervals struct {
	First  int `json:"review1" mapstructure:"first" validate:"gte=1"`
	Second int `json:"review2" mapstructure:"second" validate:"gtfield=First"`
	Third  int `json:"review3" mapstructure:"third" validate:"gtfield=Second"`
	Exam   int `json:"exam" mapstructure:"exam" validate:"gtfield=Third"`
}

// DefaultReviewIntervals returns the 1, 3, 7, 14 day schedule.
func DefaultReviewIntervals() ReviewIntervals {
	return ReviewIntervals{First: 1, Second: 3, Third: 7, Exam: 14}
}

// Days returns the offset configured for kind, or 0 for an unknown kind.
func (i ReviewIntervals) Days(kind ReviewKind) int {
	switch kind {
	case ReviewFirst:
		return i.First
	case ReviewSecond:
		return i.Second
	case ReviewThird:
		return i.Third
	case ReviewExam:
		return i.Exam
	default:
		return 0
	}
}

// Validate returns an error wrapping ErrConfiguration when the intervals are
// not positive and strictly increasing.
func (i ReviewIntervals) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s day", fe.Field(), fe.Param()))
		case "gtfield":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(msgs, "; "))
}

// Settings are the learner's persisted preferences.
type Settings struct {
	ReviewIntervals ReviewIntervals `json:"reviewIntervals"`
	DarkMode        bool            `json:"darkMode"`
	Notifications   bool            `json:"notifications"`
	AutoBackup      bool            `json:"autoBackup"`
}

// DefaultSettings returns the settings used before any have been saved.
func DefaultSettings() Settings {
	return Settings{
		ReviewIntervals: DefaultReviewIntervals(),
		Notifications:   true,
	}
}

// Validate checks the settings before they are saved.
func (s Settings) Validate() error {
	return s.ReviewIntervals.Validate()
}
