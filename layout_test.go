package sortable

import "testing"

func layoutFixture(width float64, sizes ...[2]float64) *Node {
	c := NewContainer("c")
	c.Width = width
	for _, s := range sizes {
		c.AddChild(NewRect("r", s[0], s[1], ColorWhite))
	}
	return c
}

func TestFlowLayoutSingleLine(t *testing.T) {
	c := layoutFixture(0, [2]float64{50, 40}, [2]float64{50, 40}, [2]float64{50, 40})
	w, h := FlowLayout{Gap: 10}.Apply(c)

	for i, wantX := range []float64{0, 60, 120} {
		if x := c.ChildAt(i).X; x != wantX {
			t.Errorf("child %d X = %v, want %v", i, x, wantX)
		}
		if y := c.ChildAt(i).Y; y != 0 {
			t.Errorf("child %d Y = %v, want 0", i, y)
		}
	}
	if w != 170 || h != 40 {
		t.Errorf("size = %vx%v, want 170x40", w, h)
	}
}

func TestFlowLayoutWraps(t *testing.T) {
	sizes := make([][2]float64, 6)
	for i := range sizes {
		sizes[i] = [2]float64{50, 40}
	}
	c := layoutFixture(170, sizes...)
	w, h := FlowLayout{Gap: 10}.Apply(c)

	want := []Vec2{{0, 0}, {60, 0}, {120, 0}, {0, 50}, {60, 50}, {120, 50}}
	for i, p := range want {
		n := c.ChildAt(i)
		if n.X != p.X || n.Y != p.Y {
			t.Errorf("child %d at (%v, %v), want (%v, %v)", i, n.X, n.Y, p.X, p.Y)
		}
	}
	if w != 170 || h != 90 {
		t.Errorf("size = %vx%v, want 170x90", w, h)
	}
}

func TestFlowLayoutLineHeightIsTallestChild(t *testing.T) {
	c := layoutFixture(100, [2]float64{50, 20}, [2]float64{40, 60}, [2]float64{50, 10})
	FlowLayout{Gap: 5}.Apply(c)

	if y := c.ChildAt(2).Y; y != 65 {
		t.Errorf("second line Y = %v, want 65", y)
	}
}

func TestFlowLayoutSkipsInvisible(t *testing.T) {
	c := layoutFixture(0, [2]float64{50, 40}, [2]float64{50, 40}, [2]float64{50, 40})
	c.ChildAt(1).Visible = false
	FlowLayout{}.Apply(c)

	if x := c.ChildAt(2).X; x != 50 {
		t.Errorf("child 2 X = %v, want 50", x)
	}
}

func TestFlowLayoutOversizedChild(t *testing.T) {
	c := layoutFixture(40, [2]float64{100, 10}, [2]float64{10, 10})
	FlowLayout{}.Apply(c)

	if c.ChildAt(0).X != 0 || c.ChildAt(0).Y != 0 {
		t.Error("first child should stay at the origin even when too wide")
	}
	if c.ChildAt(1).Y != 10 {
		t.Errorf("second child Y = %v, want 10", c.ChildAt(1).Y)
	}
}
