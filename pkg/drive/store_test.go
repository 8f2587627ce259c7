package drive

import "testing"

func TestMatchMonthToken(t *testing.T) {
	for _, name := range []string{"1", "01", "1月", "01月", " 01月 "} {
		if !MatchMonthToken(name, 1) {
			t.Errorf("MatchMonthToken(%q, 1) = false, want true", name)
		}
	}
	for _, name := range []string{"2", "12", "11月", "January", "", "月"} {
		if MatchMonthToken(name, 1) {
			t.Errorf("MatchMonthToken(%q, 1) = true, want false", name)
		}
	}
}

func TestTodoPath(t *testing.T) {
	if got := TodoPath("Todo", 2025, 1); got != "Todo/2025/1" {
		t.Errorf("TodoPath = %q, want Todo/2025/1", got)
	}
}

func TestSplitPath(t *testing.T) {
	elems := splitPath("/Todo/2025/1")
	if len(elems) != 3 || elems[0] != "Todo" || elems[2] != "1" {
		t.Errorf("unexpected elements: %v", elems)
	}
	if got := splitPath(""); len(got) != 0 {
		t.Errorf("expected no elements for empty path, got %v", got)
	}
}
