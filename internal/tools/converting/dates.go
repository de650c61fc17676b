package converting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Date ranges on the wire
	RangeDateFormat = "YYYY-MM-DD"
	// Stay dates on the wire
	RecordDateFormat = "DD/MM/YYYY"
)

var dateTokens = regexp.MustCompile(`YYYY|YY|MM|DD|HH|NN|SS|ZZZ`)

// DateToStr renders the UTC fields of t into format. Tokens are matched in a single pass,
// so MM is always the month and NN always the minute.
func DateToStr(t *time.Time, format string) string {
	if t == nil {
		return ""
	}

	u := t.UTC()

	return dateTokens.ReplaceAllStringFunc(strings.ToUpper(format), func(token string) string {
		switch token {
		case "YYYY":
			return pad(u.Year(), 4)
		case "YY":
			year := pad(u.Year(), 4)
			return year[len(year)-2:]
		case "MM":
			return pad(int(u.Month()), 2)
		case "DD":
			return pad(u.Day(), 2)
		case "HH":
			return pad(u.Hour(), 2)
		case "NN":
			return pad(u.Minute(), 2)
		case "SS":
			return pad(u.Second(), 2)
		case "ZZZ":
			return pad(u.Nanosecond()/int(time.Millisecond), 3)
		}

		return token
	})
}

func pad(value int, length int) string {
	return fmt.Sprintf("%0*d", length, value)
}

// StrToDate parses DD/MM/YYYY with an optional HH:NN:SS or HH:NN part, always in UTC.
// Two digit years belong to the current century. An unreadable time part leaves midnight.
func StrToDate(value string) (time.Time, error) {
	datePart, timePart, _ := strings.Cut(strings.TrimSpace(value), " ")

	pieces := strings.Split(datePart, "/")
	if len(pieces) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}

	year := pieces[2]
	if len(year) == 2 {
		century := strconv.Itoa(time.Now().UTC().Year())[:2]
		year = century + year
	}

	numbers := make([]int, 0, 6)
	for _, piece := range []string{pieces[0], pieces[1], year} {
		n, err := strconv.Atoi(piece)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
		}
		numbers = append(numbers, n)
	}

	hour, minute, second := clock(strings.TrimSpace(timePart))

	day, month := numbers[0], numbers[1]
	date := time.Date(numbers[2], time.Month(month), day, hour, minute, second, 0, time.UTC)

	// time.Date normalizes 31/02 into March
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}

	return date, nil
}

var clockLayouts = []string{time.TimeOnly, "15:04"}

func clock(value string) (hour int, minute int, second int) {
	if value == "" {
		return
	}

	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Clock()
		}
	}

	return
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDateTime reads ISO timestamps. Values without a zone are UTC.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date time %q", value)
}
