package markdown

import (
	"strings"
	"testing"
	"time"

	"todocal/pkg/model"
)

func TestParseBasicDocument(t *testing.T) {
	doc := `# January
some note before any section

## 1/27
- [ ] Dentist (14:00-15:00)
- [x] Gym
not a task line
  - [ ] indented, not a task

## 1/28
- [ ] Pay rent
`
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(index) != 2 {
		t.Fatalf("expected 2 date keys, got %d: %v", len(index), index)
	}

	tasks := index[model.DateKey("2025-01-27")]
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks on 2025-01-27, got %d", len(tasks))
	}
	if tasks[0].Description != "Dentist (14:00-15:00)" || tasks[0].Completed {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if tasks[0].Time == nil || tasks[0].Time.Start != "14:00" || tasks[0].Time.End != "15:00" {
		t.Errorf("expected time range 14:00-15:00, got %v", tasks[0].Time)
	}
	if tasks[1].Description != "Gym" || !tasks[1].Completed {
		t.Errorf("unexpected second task: %+v", tasks[1])
	}
	if tasks[1].Time != nil {
		t.Errorf("expected all-day task, got %v", tasks[1].Time)
	}

	rent := index[model.DateKey("2025-01-28")]
	if len(rent) != 1 || rent[0].Description != "Pay rent" {
		t.Errorf("unexpected tasks on 2025-01-28: %+v", rent)
	}
}

func TestParseEmptySectionAbsent(t *testing.T) {
	doc := "## 1/27\nno tasks here\n\n## 1/28\n- [ ] Something\n"
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := index[model.DateKey("2025-01-27")]; ok {
		t.Error("section without task lines must be absent, not empty")
	}
	if len(index) != 1 {
		t.Errorf("expected 1 date key, got %d", len(index))
	}
}

func TestParseUnparseableHeaderSkipped(t *testing.T) {
	doc := "## Shopping\n- [ ] Milk\n\n## 1/5\n- [ ] Call mom\n"
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(index) != 1 {
		t.Fatalf("expected only the dated section, got %v", index)
	}
	tasks := index[model.DateKey("2025-01-05")]
	if len(tasks) != 1 || tasks[0].Description != "Call mom" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestParseMergesEquivalentSections(t *testing.T) {
	doc := "## 1/27\n- [ ] First\n\n## 01-27\n- [ ] Second\n"
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tasks := index[model.DateKey("2025-01-27")]
	if len(tasks) != 2 {
		t.Fatalf("expected merged section with 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Description != "First" || tasks[1].Description != "Second" {
		t.Errorf("encounter order not preserved: %+v", tasks)
	}
}

func TestParsePreSectionLinesIgnored(t *testing.T) {
	doc := "- [ ] looks like a task but has no section\n## 2/1\n- [ ] Real task\n"
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(index) != 1 || len(index[model.DateKey("2025-02-01")]) != 1 {
		t.Errorf("expected only the sectioned task, got %v", index)
	}
}

func TestParseEmptyTaskBody(t *testing.T) {
	doc := "## 3/3\n- [ ]\n"
	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tasks := index[model.DateKey("2025-03-03")]
	if len(tasks) != 1 {
		t.Fatalf("a bare marker is still a task, got %v", tasks)
	}
	if tasks[0].Description != "" {
		t.Errorf("expected empty description, got %q", tasks[0].Description)
	}
}

func TestMonthTemplate(t *testing.T) {
	doc := MonthTemplate(2025, time.February)
	if !strings.Contains(doc, "## 2/1\n") || !strings.Contains(doc, "## 2/28\n") {
		t.Errorf("template missing expected sections:\n%s", doc)
	}
	if strings.Contains(doc, "## 2/29") {
		t.Error("2025 February has 28 days")
	}

	index, err := Parse(strings.NewReader(doc), 2025)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(index) != 0 {
		t.Errorf("empty template must produce an empty index, got %v", index)
	}
}
