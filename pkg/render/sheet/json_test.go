package sheet

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	plan := mustPlan(t, 8, 2)

	data, err := RenderJSON(plan)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Layout struct {
			Columns int `json:"columns"`
			Rows    int `json:"rows"`
		} `json:"layout"`
		Stats struct {
			InputPages int    `json:"input_pages"`
			TotalPages int    `json:"total_pages"`
			SheetCount int    `json:"sheet_count"`
			Grid       string `json:"grid"`
		} `json:"stats"`
		Sheets []struct {
			Index int `json:"index"`
			Front []struct {
				Row    int  `json:"row"`
				Column int  `json:"column"`
				Page   int  `json:"page"`
				Blank  bool `json:"blank"`
			} `json:"front"`
			Back []struct {
				Page int `json:"page"`
			} `json:"back"`
		} `json:"sheets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Layout.Columns != 1 || out.Layout.Rows != 2 {
		t.Errorf("layout = %dx%d, want 1x2", out.Layout.Columns, out.Layout.Rows)
	}
	if out.Stats.InputPages != 8 || out.Stats.TotalPages != 8 || out.Stats.SheetCount != 2 {
		t.Errorf("stats = %+v", out.Stats)
	}
	if out.Stats.Grid != "1×2" {
		t.Errorf("grid = %q, want 1×2", out.Stats.Grid)
	}
	if len(out.Sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(out.Sheets))
	}
	if out.Sheets[0].Front[0].Page != 1 || out.Sheets[0].Back[0].Page != 2 {
		t.Errorf("sheet 0 pages = front %d / back %d, want 1 / 2",
			out.Sheets[0].Front[0].Page, out.Sheets[0].Back[0].Page)
	}
}

func TestRenderJSONBlankMarked(t *testing.T) {
	plan := mustPlan(t, 7, 2)

	data, err := RenderJSON(plan)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Sheets []struct {
			Back []struct {
				Page  int  `json:"page"`
				Blank bool `json:"blank"`
			} `json:"back"`
		} `json:"sheets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	last := out.Sheets[1].Back[1]
	if last.Page != 8 || !last.Blank {
		t.Errorf("padded slot = %+v, want page 8 blank", last)
	}
}
