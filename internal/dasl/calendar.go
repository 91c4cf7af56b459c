package dasl

import (
	"fmt"
	"time"
)

// Meeting status codes excluded from calendar results: received
// cancellations and canceled organized meetings.
const (
	meetingStatusReceivedCanceled  = 5
	meetingStatusCanceledOrganized = 7
)

// CalendarRange describes a date window for calendar expansion. DateFrom
// defaults to today and DateTo to DateFrom, so the zero value means "today".
type CalendarRange struct {
	DateFrom string
	DateTo   string

	// now overrides the clock in tests.
	now func() time.Time
}

// Restriction renders the Items restriction bounding appointment start
// times to [DateFrom 00:00, DateTo+1day 00:00) and excluding canceled
// meetings.
//
// The restriction only behaves correctly when the consumer sorts the item
// collection ascending by start and enables recurrence expansion before
// applying it; outlook.Store.ExpandCalendar owns that sequence.
func (r CalendarRange) Restriction() (string, error) {
	if r.DateTo != "" && r.DateFrom == "" {
		return "", fmt.Errorf("date_from is required when date_to is specified")
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}

	dateFrom := r.DateFrom
	if dateFrom == "" {
		dateFrom = now().Format(dateLayout)
	}
	dateTo := r.DateTo
	if dateTo == "" {
		dateTo = dateFrom
	}

	start, err := time.ParseInLocation(dateLayout, dateFrom, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date_from %q: %w", dateFrom, err)
	}
	end, err := time.ParseInLocation(dateLayout, dateTo, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date_to %q: %w", dateTo, err)
	}

	return fmt.Sprintf("[Start] >= '%s' AND [Start] < '%s' AND [MeetingStatus] <> %d AND [MeetingStatus] <> %d",
		start.Format(storeTimeLayout),
		end.AddDate(0, 0, 1).Format(storeTimeLayout),
		meetingStatusReceivedCanceled,
		meetingStatusCanceledOrganized,
	), nil
}
