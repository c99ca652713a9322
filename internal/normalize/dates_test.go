package normalize

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestParseDate_Resolved(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", date(2024, 3, 15, 0, 0)},
		{"  2024-03-15  ", date(2024, 3, 15, 0, 0)},
		{"2024.03.15", date(2024, 3, 15, 0, 0)},
		{"2024.3.5", date(2024, 3, 5, 0, 0)},
		{"2024-03-15 14:30", date(2024, 3, 15, 14, 30)},
		{"2024.03.15 09:05", date(2024, 3, 15, 9, 5)},
		{"2024-03-15 PM 02:30", date(2024, 3, 15, 14, 30)},
		{"2024.03.15 AM 12:10", date(2024, 3, 15, 0, 10)},
		{"2024-03-15 14:30:45", time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)},
		{"2024.03.15 14:30:45", time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)},
		{"2024. 03. 15. 10:00", date(2024, 3, 15, 10, 0)},
		{"2024.03.15.17", date(2024, 3, 15, 17, 0)},
		{"2024.03.15   14:30", date(2024, 3, 15, 14, 30)},
		{"2024.03.15 14:5", date(2024, 3, 15, 14, 5)},
		{"2024-3-5 9:7", date(2024, 3, 5, 9, 7)},
		{"2024.03.15 14:30:5", time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)},
		{"2024-03-15 PM 2:5", date(2024, 3, 15, 14, 5)},
		{"2024", date(2024, 1, 1, 0, 0)},
		{"2024.05", date(2024, 5, 1, 0, 0)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil, want %v", tc.in, tc.want)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, *got, tc.want)
		}
	}
}

func TestParseDate_Unresolved(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"미정",
		"next week",
		"2024-13-45",
		"2024.13",
		"2024-03-15T10:00:00",
		"15/03/2024",
		"2024-03-15 PM 00:30",
		"2024.03.15 AM 0:30",
	} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, *got)
		}
	}
}

func TestResolveCell(t *testing.T) {
	r := NewResolver()
	if got := r.ResolveCell(nil); got != nil {
		t.Errorf("ResolveCell(nil) = %v, want nil", *got)
	}
	s := "2024-03-15"
	if got := r.ResolveCell(&s); got == nil || !got.Equal(date(2024, 3, 15, 0, 0)) {
		t.Errorf("ResolveCell(%q) = %v", s, got)
	}
	empty := ""
	if got := r.ResolveCell(&empty); got != nil {
		t.Errorf("ResolveCell(\"\") = %v, want nil", *got)
	}
}

func TestParseDate_Sentinels(t *testing.T) {
	for _, in := range []string{
		"사전규격",
		"견적서 요청",
		"실행중",
		" 실행중 ",
		"견적서   요청",
		"2024-03-15 실행중",
	} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, *got)
		}
	}
}

func TestResolver_ExtraSentinels(t *testing.T) {
	r := NewResolver("보류", "  ")
	if got := r.Resolve("보류"); got != nil {
		t.Errorf("Resolve(보류) = %v, want nil", *got)
	}
	if got := r.Resolve("실행중"); got != nil {
		t.Errorf("built-in sentinels must still apply, got %v", *got)
	}
	if got := r.Resolve("2024-03-15"); got == nil {
		t.Error("Resolve(2024-03-15) = nil")
	}

	var zero Resolver
	if got := zero.Resolve("사전규격"); got != nil {
		t.Errorf("zero Resolver should use built-in sentinels, got %v", *got)
	}
}

func TestParseDate_BeforeMarker(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"이전2024-03-15", date(2024, 3, 14, 0, 0)},
		{"2024-03-15 이전", date(2024, 3, 14, 0, 0)},
		{"2024-03-01 이전", date(2024, 2, 29, 0, 0)},
		{"2023-03-01 이전", date(2023, 2, 28, 0, 0)},
		{"2025-01-01 이전 제출", date(2024, 12, 31, 0, 0)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate_BeforeMarkerEveryDay(t *testing.T) {
	start := date(2023, 12, 25, 0, 0)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		got := ParseDate("이전" + d.Format("2006-01-02"))
		want := d.AddDate(0, 0, -1)
		if got == nil || !got.Equal(want) {
			t.Fatalf("before %s: got %v, want %v", d.Format("2006-01-02"), got, want)
		}
	}
}

func TestParseDate_BeforeMarkerWithoutDashDate(t *testing.T) {
	// No embedded YYYY-MM-DD: the marker is ignored and later rules run.
	if got := ParseDate("2024.03.15 이전"); got != nil {
		t.Errorf("got %v, want nil", *got)
	}
	if got := ParseDate("이전"); got != nil {
		t.Errorf("got %v, want nil", *got)
	}
}

func TestParseDate_EventMarker(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"행사 2024.05.20", date(2024, 5, 20, 0, 0)},
		{"2024.05.20 행사", date(2024, 5, 20, 0, 0)},
		{"2024.05.20 14:00 행사", date(2024, 5, 20, 0, 0)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate_Meridiem(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024.03.15 오전 12:30", date(2024, 3, 15, 0, 30)},
		{"2024.03.15 오전 09:15", date(2024, 3, 15, 9, 15)},
		{"2024.03.15 오후 12:30", date(2024, 3, 15, 12, 30)},
		{"2024.03.15 오후 01:30", date(2024, 3, 15, 13, 30)},
		{"2024.03.15 오후 11:59", date(2024, 3, 15, 23, 59)},
		{"2024.03.15 오후 3:00", date(2024, 3, 15, 15, 0)},
		{"2024.03.15 오후 3:5", date(2024, 3, 15, 15, 5)},
		{"2024.03.15 오전 9:5", date(2024, 3, 15, 9, 5)},
		{"오후 2024.03.15 05:00", date(2024, 3, 15, 17, 0)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate_MeridiemFallsThrough(t *testing.T) {
	// The 12-hour layout fails on dash dates; the stripped string then goes
	// through the battery as a 24-hour time without correction.
	got := ParseDate("2024-03-15 오후 03:30")
	want := date(2024, 3, 15, 3, 30)
	if got == nil || !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = ParseDate("2024.03.15 오후")
	want = date(2024, 3, 15, 0, 0)
	if got == nil || !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := ParseDate("오전"); got != nil {
		t.Errorf("got %v, want nil", *got)
	}

	// Hour 0 is not a 12-hour reading, so the stripped string is read as a
	// 24-hour time without the afternoon correction.
	for _, in := range []string{"2024.03.15 오후 00:30", "2024.03.15 오후 0:30"} {
		got = ParseDate(in)
		want = date(2024, 3, 15, 0, 30)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestClockHourZero(t *testing.T) {
	cases := map[string]bool{
		"2024.03.15 00:30":    true,
		"2024.03.15 0:30":     true,
		"2024-03-15 PM 00:30": true,
		"2024.03.15 12:30":    false,
		"2024.03.15 10:30":    false,
		"2024.03.15":          false,
		"2024.03.15.17":       false,
	}
	for in, want := range cases {
		if got := clockHourZero(in); got != want {
			t.Errorf("clockHourZero(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Idempotent(t *testing.T) {
	for _, in := range []string{"2024-03-15", "2000-02-29", "1999-12-31"} {
		first := ParseDate(in)
		if first == nil {
			t.Fatalf("ParseDate(%q) = nil", in)
		}
		second := ParseDate(first.Format("2006-01-02"))
		if second == nil || !second.Equal(*first) {
			t.Errorf("re-resolving %q: got %v, want %v", in, second, *first)
		}
	}
}
