package sortable

import "testing"

func TestDefaultRender(t *testing.T) {
	tests := []struct {
		name  string
		item  any
		label string
	}{
		{"plain string", "alpha", "alpha"},
		{"space escaped", "a b", "a%20b"},
		{"reserved kept", "x/y?a=1&b#c", "x/y?a=1&b#c"},
		{"marks kept", "it's (ok)!", "it's%20(ok)!"},
		{"multibyte", "é", "%C3%A9"},
		{"percent escaped", "50%", "50%25"},
		{"number", 42, "42"},
		{"nil", nil, "%3Cnil%3E"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := DefaultRender(tt.item)
			if row.Label != tt.label {
				t.Errorf("Label = %q, want %q", row.Label, tt.label)
			}
			if row.Width != defaultRowWidth || row.Height != defaultRowHeight {
				t.Errorf("size = %vx%v, want %vx%v", row.Width, row.Height, defaultRowWidth, defaultRowHeight)
			}
		})
	}
}

func TestRowRender(t *testing.T) {
	row := RowRender(50, 40)("z")
	if row.Width != 50 || row.Height != 40 {
		t.Errorf("size = %vx%v, want 50x40", row.Width, row.Height)
	}
	if row.Color != rowColor {
		t.Errorf("Color = %v, want %v", row.Color, rowColor)
	}
}

func TestPaintOrder(t *testing.T) {
	parent, kids := parentWith(4)
	kids[0].ZIndex = 2
	kids[2].ZIndex = 1

	got := paintOrder(parent, nil)
	want := pick(kids, []int{1, 3, 2, 0})
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paintOrder[%d] = %d, want %d", i, got[i].ID, want[i].ID)
		}
	}
	// Sorting a copy must leave the tree order alone.
	assertOrder(t, parent, kids...)
}

func TestPaintOrderReusesBuffer(t *testing.T) {
	parent, _ := parentWith(3)
	buf := make([]*Node, 0, 8)
	got := paintOrder(parent, buf)
	if cap(got) != 8 {
		t.Errorf("cap = %d, want 8 (buffer reused)", cap(got))
	}
}
