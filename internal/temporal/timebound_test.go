package temporal

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/rohankatakam/gitclock/internal/errors"
)

var testZone = time.FixedZone("UTC+2", 2*60*60)

func TestParseTimeBound(t *testing.T) {
	tests := []struct {
		input string
		want  TimeBound
	}{
		{"always", TimeBound{Kind: Always}},
		{"TODAY", TimeBound{Kind: Today}},
		{"Yesterday", TimeBound{Kind: Yesterday}},
		{"thisweek", TimeBound{Kind: ThisWeek}},
		{"LastWeek", TimeBound{Kind: LastWeek}},
		{"2015-02-18", DateBound(2015, time.February, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeBound(tt.input)
			if err != nil {
				t.Fatalf("ParseTimeBound(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeBound(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimeBoundRejectsMalformed(t *testing.T) {
	for _, input := range []string{"2015-2-18", "18-02-2015", "next week", "2015-02-30", "", " 2024-01-01 ", " today", "lastweek\n"} {
		_, err := ParseTimeBound(input)
		if err == nil {
			t.Errorf("expected error for %q", input)
			continue
		}
		if !stderrors.Is(err, errors.ErrParse) {
			t.Errorf("expected parse error for %q, got %v", input, err)
		}
		if !strings.Contains(err.Error(), "'"+input+"'") || !strings.Contains(err.Error(), "YYYY-mm-dd") {
			t.Errorf("error should name input and format, got %q", err.Error())
		}
	}
}

func TestTimeBoundStringRoundTrip(t *testing.T) {
	for _, s := range []string{"always", "today", "yesterday", "thisweek", "lastweek", "2024-01-09"} {
		b, err := ParseTimeBound(s)
		if err != nil {
			t.Fatalf("ParseTimeBound(%q) failed: %v", s, err)
		}
		if b.String() != s {
			t.Errorf("String() = %q, want %q", b.String(), s)
		}
	}
}

func TestResolve(t *testing.T) {
	// Wednesday
	now := time.Date(2024, time.May, 15, 13, 45, 10, 0, testZone)
	midnight := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, testZone)
	}

	tests := []struct {
		name  string
		bound TimeBound
		want  time.Time
	}{
		{"today", TimeBound{Kind: Today}, midnight(2024, time.May, 15)},
		{"yesterday", TimeBound{Kind: Yesterday}, midnight(2024, time.May, 14)},
		{"this week ends sunday", TimeBound{Kind: ThisWeek}, midnight(2024, time.May, 19)},
		{"last week", TimeBound{Kind: LastWeek}, midnight(2024, time.May, 12)},
		{"date", DateBound(2015, time.February, 18), midnight(2015, time.February, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.bound.Resolve(now)
			if !ok {
				t.Fatalf("expected a bound")
			}
			if !got.Equal(tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := (TimeBound{Kind: Always}).Resolve(now); ok {
		t.Errorf("always should not resolve to an instant")
	}
}

func TestResolveWeekEdges(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"sunday is its own week end", time.Date(2024, time.May, 19, 23, 0, 0, 0, testZone), time.Date(2024, time.May, 19, 0, 0, 0, 0, testZone)},
		{"monday starts a new week", time.Date(2024, time.May, 20, 0, 30, 0, 0, testZone), time.Date(2024, time.May, 26, 0, 0, 0, 0, testZone)},
		{"iso week crossing new year", time.Date(2024, time.December, 31, 9, 0, 0, 0, testZone), time.Date(2025, time.January, 5, 0, 0, 0, 0, testZone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := TimeBound{Kind: ThisWeek}.Resolve(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowContainsIsInclusive(t *testing.T) {
	since := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	w := Window{Since: since, Until: until}

	if !w.Contains(since) {
		t.Errorf("commit at since instant should be kept")
	}
	if !w.Contains(until) {
		t.Errorf("commit at until instant should be kept")
	}
	if w.Contains(since.Add(-time.Second)) {
		t.Errorf("commit before since should be dropped")
	}
	if w.Contains(until.Add(time.Second)) {
		t.Errorf("commit after until should be dropped")
	}
	if !(Window{}).Contains(time.Unix(0, 0)) {
		t.Errorf("unbounded window should keep everything")
	}
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.May, 15, 13, 45, 10, 0, testZone)
	w := ResolveWindow(TimeBound{Kind: Yesterday}, TimeBound{Kind: Always}, now)

	if !w.Since.Equal(time.Date(2024, time.May, 14, 0, 0, 0, 0, testZone)) {
		t.Errorf("unexpected since %v", w.Since)
	}
	if !w.Until.IsZero() {
		t.Errorf("until should be unbounded, got %v", w.Until)
	}
}
