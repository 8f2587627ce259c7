package dates

import "testing"

func TestParseMonthDayEquivalence(t *testing.T) {
	// All accepted notations for the same day normalize identically.
	headers := []string{"1/27", "01-27", "1月27日", "2025-1-27", "2025/1/27", "2025/1-27"}
	for _, h := range headers {
		md, ok := ParseMonthDay(h)
		if !ok {
			t.Errorf("ParseMonthDay(%q) did not match", h)
			continue
		}
		if md.Month != "01" || md.Day != "27" {
			t.Errorf("ParseMonthDay(%q) = %s/%s, want 01/27", h, md.Month, md.Day)
		}
	}
}

func TestParseMonthDayZeroPadding(t *testing.T) {
	md, ok := ParseMonthDay("12/5")
	if !ok {
		t.Fatal("ParseMonthDay(12/5) did not match")
	}
	if md.Month != "12" || md.Day != "05" {
		t.Errorf("expected 12/05, got %s/%s", md.Month, md.Day)
	}
}

func TestParseMonthDayRejectsNonDates(t *testing.T) {
	for _, h := range []string{"Notes", "shopping list", "", "月日", "13/40"} {
		if _, ok := ParseMonthDay(h); ok {
			t.Errorf("ParseMonthDay(%q) matched, want no match", h)
		}
	}
}

func TestExtractTimeRange(t *testing.T) {
	tr := ExtractTimeRange("Team sync 9:00~10:30")
	if tr == nil {
		t.Fatal("expected a time range, got nil")
	}
	if tr.Start != "9:00" || tr.End != "10:30" {
		t.Errorf("expected 9:00~10:30, got %s~%s", tr.Start, tr.End)
	}

	tr = ExtractTimeRange("Dentist (14:00-15:00)")
	if tr == nil {
		t.Fatal("expected a time range, got nil")
	}
	if tr.Start != "14:00" || tr.End != "15:00" {
		t.Errorf("expected 14:00-15:00, got %s-%s", tr.Start, tr.End)
	}
}

func TestExtractTimeRangeOpenEnd(t *testing.T) {
	tr := ExtractTimeRange("Standup 9:30~")
	if tr == nil {
		t.Fatal("expected a time range, got nil")
	}
	if tr.Start != "9:30" || tr.End != "" {
		t.Errorf("expected open-ended 9:30, got %s~%s", tr.Start, tr.End)
	}
}

func TestExtractTimeRangeAbsent(t *testing.T) {
	if tr := ExtractTimeRange("Pay rent"); tr != nil {
		t.Errorf("expected nil for all-day task, got %v", tr)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("9:05")
	if err != nil {
		t.Fatalf("ParseClock(9:05) failed: %v", err)
	}
	if h != 9 || m != 5 {
		t.Errorf("expected 9:05, got %d:%d", h, m)
	}

	h, m, err = ParseClock("14")
	if err != nil {
		t.Fatalf("ParseClock(14) failed: %v", err)
	}
	if h != 14 || m != 0 {
		t.Errorf("expected 14:00, got %d:%d", h, m)
	}

	if _, _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for out-of-range hour")
	}
}
