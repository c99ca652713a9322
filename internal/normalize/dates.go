package normalize

import (
	"regexp"
	"strings"
	"time"
)

// Status labels that occupy the date cell before a deadline is known.
var defaultSentinels = []string{"사전규격", "견적서 요청", "실행중"}

const (
	beforeMarker    = "이전"
	eventMarker     = "행사"
	morningMarker   = "오전"
	afternoonMarker = "오후"
)

var (
	embeddedDash  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	embeddedDot   = regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`)
	meridiem      = regexp.MustCompile(morningMarker + `|` + afternoonMarker)
	bareYear      = regexp.MustCompile(`^\d{4}$`)
	bareYearMonth = regexp.MustCompile(`^\d{4}\.\d{2}$`)
)

// Month, day, hour, minute and second fields accept one or two digits, as
// entered by hand.
var dateFormats = []string{
	"2006-1-2",
	"2006.1.2",
	"2006-1-2 15:4",
	"2006.1.2 15:4",
	"2006-1-2 PM 3:4",
	"2006.1.2 PM 3:4",
	"2006-1-2 15:4:5",
	"2006.1.2 15:4:5",
	"2006. 1. 2. 15:4",
	"2006.1.2.15",
}

type parseAttempt func(s string) (time.Time, bool)

// formatBattery is tried in order; the first layout that consumes the whole
// string wins.
var formatBattery = func() []parseAttempt {
	attempts := make([]parseAttempt, 0, len(dateFormats))
	for _, layout := range dateFormats {
		attempts = append(attempts, layoutAttempt(layout))
	}
	return attempts
}()

func layoutAttempt(layout string) parseAttempt {
	twelveHour := strings.Contains(layout, "PM")
	return func(s string) (time.Time, bool) {
		if twelveHour && clockHourZero(s) {
			return time.Time{}, false
		}
		t, err := time.Parse(layout, s)
		return t, err == nil
	}
}

// clockHourZero reports whether the trailing "h:mm" token has hour 0, which
// no 12-hour clock reading allows.
func clockHourZero(s string) bool {
	clock := s[strings.LastIndexByte(s, ' ')+1:]
	hour, _, ok := strings.Cut(clock, ":")
	return ok && hour != "" && strings.Trim(hour, "0") == ""
}

// Resolver turns free-text schedule dates into timestamps. The zero value is
// usable and recognizes the built-in sentinel labels only.
type Resolver struct {
	sentinels []string
}

// NewResolver returns a Resolver that also treats extra as sentinel labels.
func NewResolver(extra ...string) *Resolver {
	s := make([]string, 0, len(defaultSentinels)+len(extra))
	s = append(s, defaultSentinels...)
	for _, e := range extra {
		if e = strings.TrimSpace(e); e != "" {
			s = append(s, e)
		}
	}
	return &Resolver{sentinels: s}
}

var defaultResolver = NewResolver()

// ParseDate resolves a raw date cell with the built-in sentinel set.
// Returns nil if the input is empty, a status label, or unparseable.
func ParseDate(s string) *time.Time {
	return defaultResolver.Resolve(s)
}

// ResolveCell is Resolve for a nullable cell; a missing cell is unresolved.
func (r *Resolver) ResolveCell(v *string) *time.Time {
	if v == nil {
		return nil
	}
	return r.Resolve(*v)
}

// Resolve returns the timestamp a raw cell denotes, or nil when the cell does
// not name a concrete date. It never panics.
func (r *Resolver) Resolve(raw string) *time.Time {
	s := multiSpace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if s == "" {
		return nil
	}
	if r.isSentinel(s) {
		return nil
	}

	if strings.Contains(s, beforeMarker) {
		if m := embeddedDash.FindString(s); m != "" {
			if t, err := time.Parse("2006-01-02", m); err == nil {
				return ptr(t.AddDate(0, 0, -1))
			}
		}
	}

	if strings.Contains(s, eventMarker) {
		if m := embeddedDot.FindString(s); m != "" {
			if t, err := time.Parse("2006-01-02", strings.ReplaceAll(m, ".", "-")); err == nil {
				return ptr(t)
			}
		}
	}

	// Later rules see the string with the marker removed, whether or not
	// the 12-hour parse succeeds.
	if marker := meridiem.FindString(s); marker != "" {
		s = strings.TrimSpace(multiSpace.ReplaceAllString(strings.ReplaceAll(s, marker, ""), " "))
		if t, ok := parseMeridiem(s, marker == afternoonMarker); ok {
			return ptr(t)
		}
	}

	if bareYear.MatchString(s) {
		if t, err := time.Parse("2006", s); err == nil {
			return ptr(t)
		}
	}
	if bareYearMonth.MatchString(s) {
		if t, err := time.Parse("2006.01", s); err == nil {
			return ptr(t)
		}
	}

	for _, attempt := range formatBattery {
		if t, ok := attempt(s); ok {
			return ptr(t)
		}
	}
	return nil
}

func (r *Resolver) isSentinel(s string) bool {
	sentinels := r.sentinels
	if sentinels == nil {
		sentinels = defaultSentinels
	}
	for _, k := range sentinels {
		if s == k || strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// parseMeridiem parses "YYYY.MM.DD hh:mm" on a 12-hour clock (hours 1-12)
// and applies the marker: 12 AM is midnight, 12 PM stays noon, other PM
// hours gain 12.
func parseMeridiem(s string, afternoon bool) (time.Time, bool) {
	if clockHourZero(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006.1.2 3:4", s)
	if err != nil {
		return time.Time{}, false
	}
	switch {
	case !afternoon && t.Hour() == 12:
		t = t.Add(-12 * time.Hour)
	case afternoon && t.Hour() != 12:
		t = t.Add(12 * time.Hour)
	}
	return t, true
}

func ptr(t time.Time) *time.Time {
	return &t
}
