package geom

import "testing"

func TestPaperSizes(t *testing.T) {
	if Letter.Width != 612 || Letter.Height != 792 {
		t.Fatalf("letter size wrong: %+v", Letter)
	}
	if A4.Width != 595.28 || A4.Height != 841.89 {
		t.Fatalf("a4 size wrong: %+v", A4)
	}
}

func TestUniformMargins(t *testing.T) {
	m := Uniform(54)
	if m.Top != 54 || m.Bottom != 54 || m.Left != 54 || m.Right != 54 {
		t.Fatalf("uniform margins wrong: %+v", m)
	}
}

func TestRect(t *testing.T) {
	r := Rect{LLX: 10, LLY: 20, URX: 110, URY: 40}
	if r.Width() != 100 || r.Height() != 20 {
		t.Fatalf("rect extents wrong: %v x %v", r.Width(), r.Height())
	}
	if !r.Contains(50, 30) || r.Contains(5, 30) {
		t.Fatalf("containment wrong")
	}
}
