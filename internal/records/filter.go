package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/ledgerdesk/internal/ledger"
)

const dateLayout = "2006-01-02"

// Filter narrows the record listing. Zero dates are unbounded and an empty
// status matches both.
type Filter struct {
	From   time.Time
	To     time.Time
	Status ledger.Status
}

// Query converts f to API parameters.
func (f Filter) Query() ledger.RecordQuery {
	q := ledger.RecordQuery{Status: f.Status}
	if !f.From.IsZero() {
		q.StartDate = f.From.Format(dateLayout)
	}
	if !f.To.IsZero() {
		q.EndDate = f.To.Format(dateLayout)
	}
	return q
}

// Describe renders the filter for headers and CLI output.
func (f Filter) Describe() string {
	status := "all"
	if f.Status != "" {
		status = string(f.Status)
	}
	switch {
	case f.From.IsZero() && f.To.IsZero():
		return "all dates, " + status
	case f.From.Equal(f.To):
		return f.From.Format(dateLayout) + ", " + status
	default:
		from, to := "…", "…"
		if !f.From.IsZero() {
			from = f.From.Format(dateLayout)
		}
		if !f.To.IsZero() {
			to = f.To.Format(dateLayout)
		}
		return from + " to " + to + ", " + status
	}
}

// Equal reports whether f and other select the same records.
func (f Filter) Equal(other Filter) bool {
	return f.From.Equal(other.From) && f.To.Equal(other.To) && f.Status == other.Status
}

// Today returns a filter covering the calendar day of now.
func Today(now time.Time, status ledger.Status) Filter {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Filter{From: day, To: day, Status: status}
}

// NextStatus cycles all -> pending -> done -> all.
func NextStatus(s ledger.Status) ledger.Status {
	switch s {
	case "":
		return ledger.StatusPending
	case ledger.StatusPending:
		return ledger.StatusDone
	default:
		return ""
	}
}

// ParseDate reads YYYY-MM-DD in loc. A day beyond the end of the month is
// clamped to the month's last day; empty input yields the zero time.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return time.Time{}, fmt.Errorf("invalid date %q: bad year", value)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid date %q: bad month", value)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q: bad day", value)
	}
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// NewFilter parses the date bounds and status names into a Filter. from may
// not be after to.
func NewFilter(from, to, status string, loc *time.Location) (Filter, error) {
	start, err := ParseDate(from, loc)
	if err != nil {
		return Filter{}, err
	}
	end, err := ParseDate(to, loc)
	if err != nil {
		return Filter{}, err
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return Filter{}, fmt.Errorf("start date %s is after end date %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	st, err := ledger.ParseStatus(status)
	if err != nil {
		return Filter{}, err
	}
	return Filter{From: start, To: end, Status: st}, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
