package report

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderTableEmpty(t *testing.T) {
	out, err := RenderTable(nil)
	if err != nil || out != "" {
		t.Fatalf("RenderTable(nil) = (%q, %v)", out, err)
	}
}

func TestRenderTableHeaderFromFirstRecord(t *testing.T) {
	records := []DisplayRecord{
		{{"b", "1"}, {"a", "<i>2</i>"}},
		{{"b", "3"}, {"a", "4"}},
	}

	out, err := RenderTable(records)
	if err != nil {
		t.Fatal(err)
	}

	want := `<table class="table table-bordered table-striped table-hover">` +
		`<thead><tr><th>b</th><th>a</th></tr></thead>` +
		`<tbody><tr><td>1</td><td><i>2</i></td></tr><tr><td>3</td><td>4</td></tr></tbody>` +
		`</table>`
	if out != want {
		t.Fatalf("got\n%s\nwant\n%s", out, want)
	}
	if strings.Count(out, "<thead>") != 1 {
		t.Fatal("expected exactly one header row")
	}
}

func TestRenderTableRejectsMismatchedShapes(t *testing.T) {
	cases := map[string][]DisplayRecord{
		"extra column":   {{{"a", "1"}}, {{"a", "1"}, {"b", "2"}}},
		"renamed column": {{{"a", "1"}, {"b", "2"}}, {{"a", "1"}, {"c", "2"}}},
		"reordered":      {{{"a", "1"}, {"b", "2"}}, {{"b", "2"}, {"a", "1"}}},
	}
	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := RenderTable(records); !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}
