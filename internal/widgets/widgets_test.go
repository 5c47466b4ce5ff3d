package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderPopupOverlaysWithoutDroppingBase(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := RenderPopup(base, Popup{Body: "Popup"}, 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[8])
	}
}

func TestRenderPopupZeroSize(t *testing.T) {
	if got := RenderPopup("base", Popup{Body: "x"}, 0, 10); got != "" {
		t.Fatalf("zero width = %q, want empty", got)
	}
}

func TestCardRenderFitsCell(t *testing.T) {
	c := Card{
		Title:       "A rather long card title that will not fit",
		Description: "First sentence of the description. Second sentence that wraps around.",
		Chips:       []Chip{{Label: "review"}, {Label: "git"}, {Label: "quality"}},
		Footer:      "abc1234 · 2025-03-01",
	}
	out := c.Render(30, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("card height = %d, want 8", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 30 {
			t.Fatalf("line %d width = %d, want 30: %q", i, w, l)
		}
	}
	if !strings.Contains(lines[6], "abc1234") {
		t.Fatalf("footer should sit on the last inner row, got %q", lines[6])
	}
}

func TestChipsInlineKeepsOneLine(t *testing.T) {
	chips := []Chip{{Label: "alpha"}, {Label: "beta"}, {Label: "gamma"}}
	if got := Chips(chips, 14, true); strings.Contains(got, "\n") {
		t.Fatalf("inline chips wrapped: %q", got)
	}
	if got := Chips(chips, 14, false); strings.Count(got, "\n") == 0 {
		t.Fatalf("wrapped chips stayed on one line: %q", got)
	}
	if got := Chips(nil, 10, true); got != "" {
		t.Fatalf("no chips = %q", got)
	}
}

func TestGridRespectsColumnsAndOffset(t *testing.T) {
	cells := make([]Widget, 5)
	for i := range cells {
		cells[i] = Text(string(rune('a' + i)))
	}
	out := Grid{Cells: cells, Columns: 2, CellHeight: 1}.Render(10, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "a") || !strings.Contains(lines[0], "b") {
		t.Fatalf("first row = %q", lines[0])
	}

	out = Grid{Cells: cells, Columns: 2, CellHeight: 1, Offset: 2}.Render(10, 2)
	if !strings.HasPrefix(out, "e") {
		t.Fatalf("offset row = %q, want e first", out)
	}
}

func TestRowsVisible(t *testing.T) {
	tests := []struct{ height, cell, gap, want int }{
		{height: 0, cell: 5, gap: 1, want: 0},
		{height: 5, cell: 5, gap: 1, want: 1},
		{height: 11, cell: 5, gap: 1, want: 2},
		{height: 10, cell: 5, gap: 1, want: 1},
	}
	for _, tt := range tests {
		if got := RowsVisible(tt.height, tt.cell, tt.gap); got != tt.want {
			t.Fatalf("RowsVisible(%d,%d,%d) = %d, want %d", tt.height, tt.cell, tt.gap, got, tt.want)
		}
	}
}

func TestGridGapBetweenColumnsAndRows(t *testing.T) {
	cells := []Widget{Text("a"), Text("b"), Text("c")}
	out := Grid{Cells: cells, Columns: 2, CellHeight: 1, Gap: 1}.Render(9, 3)
	lines := strings.Split(out, "\n")
	want := []string{"a    b   ", "", "c        "}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderPopupKeepsBaseBesideBox(t *testing.T) {
	row := strings.Repeat("x", 30)
	base := strings.Join([]string{row, row, row, row, row, row, row}, "\n")
	out := RenderPopup(base, Popup{Body: "hi"}, 30, 7)
	for i, l := range strings.Split(out, "\n") {
		plain := ansi.Strip(l)
		if w := ansi.StringWidth(plain); w != 30 {
			t.Fatalf("line %d width = %d, want 30", i, w)
		}
		if !strings.HasPrefix(plain, "x") || !strings.HasSuffix(plain, "x") {
			t.Fatalf("line %d lost the base at its edges: %q", i, plain)
		}
	}
	if !strings.Contains(out, "hi") {
		t.Fatal("popup body missing")
	}
}
