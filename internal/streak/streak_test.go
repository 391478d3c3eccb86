package streak

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]float64
		from        string
		want        int
	}{
		{
			name:        "empty completions",
			completions: map[string]float64{},
			from:        "2024-06-10",
			want:        0,
		},
		{
			name:        "single completed day",
			completions: map[string]float64{"2024-06-10": 30},
			from:        "2024-06-10",
			want:        1,
		},
		{
			name: "three consecutive days",
			completions: map[string]float64{
				"2024-06-08": 30,
				"2024-06-09": 45,
				"2024-06-10": 30,
			},
			from: "2024-06-10",
			want: 3,
		},
		{
			name: "explicit zero breaks the run",
			completions: map[string]float64{
				"2024-06-07": 30,
				"2024-06-08": 0,
				"2024-06-09": 30,
				"2024-06-10": 30,
			},
			from: "2024-06-10",
			want: 2,
		},
		{
			name: "missing calendar day breaks the run",
			completions: map[string]float64{
				"2024-06-07": 30,
				"2024-06-10": 30,
			},
			from: "2024-06-10",
			want: 1,
		},
		{
			name: "below target breaks the run",
			completions: map[string]float64{
				"2024-06-09": 29.5,
				"2024-06-10": 30,
			},
			from: "2024-06-10",
			want: 1,
		},
		{
			name: "crosses month boundary",
			completions: map[string]float64{
				"2024-02-28": 30,
				"2024-02-29": 30,
				"2024-03-01": 30,
			},
			from: "2024-03-01",
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.completions, 30, tt.from); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountZeroTargetIsBounded(t *testing.T) {
	completions := map[string]float64{"2024-06-09": 0, "2024-06-10": 0}
	if got := Count(completions, 0, "2024-06-10"); got != 2 {
		t.Errorf("expected 2 recorded days to count with zero target, got %d", got)
	}
}

func TestCurrent(t *testing.T) {
	completions := map[string]float64{
		"2024-06-08": 30,
		"2024-06-09": 30,
	}

	// Today open: streak still alive from yesterday
	if got := Current(completions, 30, "2024-06-10"); got != 2 {
		t.Errorf("expected 2 with today open, got %d", got)
	}

	completions["2024-06-10"] = 30
	if got := Current(completions, 30, "2024-06-10"); got != 3 {
		t.Errorf("expected 3 with today met, got %d", got)
	}

	// Two days later with nothing logged yesterday
	if got := Current(completions, 30, "2024-06-12"); got != 0 {
		t.Errorf("expected 0 after a missed day, got %d", got)
	}
}

func TestAfterLogTodayIsReversible(t *testing.T) {
	today := "2024-06-10"
	completions := map[string]float64{
		"2024-06-08": 30,
		"2024-06-09": 30,
	}
	before := AfterLog(completions, 30, "2024-06-09", today)

	completions[today] = 30
	if got := AfterLog(completions, 30, today, today); got != before+1 {
		t.Errorf("completing today: got %d, want %d", got, before+1)
	}

	completions[today] = 0
	if got := AfterLog(completions, 30, today, today); got != before {
		t.Errorf("un-completing today: got %d, want %d", got, before)
	}
}

func TestAfterLogPastDate(t *testing.T) {
	today := "2024-06-12"
	completions := map[string]float64{
		"2024-06-08": 30,
		"2024-06-09": 30,
		"2024-06-10": 10,
	}

	if got := AfterLog(completions, 30, "2024-06-10", today); got != 0 {
		t.Errorf("below-target past day should leave no current streak, got %d", got)
	}
	if got := AfterLog(completions, 30, "2024-06-09", today); got != 2 {
		t.Errorf("met past day should anchor at that day, got %d", got)
	}
}

func TestForDate(t *testing.T) {
	today := "2024-06-10"
	completions := map[string]float64{
		"2024-06-08": 30,
		"2024-06-09": 30,
	}

	tests := []struct {
		name string
		date string
		want int
	}{
		{"past date", "2024-06-09", 2},
		{"today unmet", "2024-06-10", 0},
		{"future date starts from yesterday", "2024-06-20", 2},
		{"date before any entry", "2024-06-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForDate(completions, 30, tt.date, today); got != tt.want {
				t.Errorf("ForDate(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestLongest(t *testing.T) {
	completions := map[string]float64{
		"2024-06-01": 30,
		"2024-06-02": 30,
		"2024-06-03": 30,
		"2024-06-05": 30,
		"2024-06-06": 30,
		"2024-06-07": 5,
	}
	if got := Longest(completions, 30); got != 3 {
		t.Errorf("Longest() = %d, want 3", got)
	}
	if got := Longest(map[string]float64{}, 30); got != 0 {
		t.Errorf("Longest(empty) = %d, want 0", got)
	}
}
