package api

import (
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
)

// CreateTaskRequest is the body of POST /tasks. The anchor date is given
// either as Date in YYYY/MM/DD form or as Year, Month and Day.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date,omitempty" validate:"required_without=Year"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Day   int    `json:"day,omitempty"`
	Type  string `json:"type,omitempty"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// PostponeRequest is the optional body of the postpone endpoint.
type PostponeRequest struct {
	Days *int `json:"days,omitempty" validate:"omitempty,gte=1"`
}

// CalendarTodayResponse describes today's date in both calendars.
type CalendarTodayResponse struct {
	Date      string                 `json:"date"`
	Persian   string                 `json:"persian"`
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	Day       int                    `json:"day"`
	DayName   string                 `json:"dayName"`
	MonthName string                 `json:"monthName"`
	IsLeap    bool                   `json:"isLeapYear"`
	Gregorian calendar.GregorianDate `json:"gregorian"`
}

func calendarResponse(d calendar.Date) CalendarTodayResponse {
	return CalendarTodayResponse{
		Date:      d.Format(),
		Persian:   calendar.ToPersianNumerals(d.Format()),
		Year:      d.Year(),
		Month:     d.Month(),
		Day:       d.Day(),
		DayName:   d.DayOfWeekName(),
		MonthName: d.MonthName(),
		IsLeap:    calendar.IsLeapYear(d.Year()),
		Gregorian: d.Gregorian(),
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
