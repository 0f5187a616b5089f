package dimen

import "testing"

func TestDimenString(t *testing.T) {
	d := 10 * PT
	if d.String() != "10.00pt" {
		t.Errorf("expected 10.00pt, got %s", d.String())
	}
}

func TestDimenPixels(t *testing.T) {
	d := 12 * PX
	if d.Pixels() != 12 {
		t.Errorf("expected 12px, got %d", d.Pixels())
	}
}

func TestFromPoints(t *testing.T) {
	d := FromPoints(12.0)
	if d.Points() < 11.99 || d.Points() > 12.01 {
		t.Errorf("expected roundtrip of 12bp, got %f", d.Points())
	}
}

func TestRect(t *testing.T) {
	r := Rect{TopL: Origin, BotR: Point{10 * PT, 20 * PT}}
	if r.Width() != 10*PT || r.Height() != 20*PT {
		t.Errorf("unexpected rect dimensions: %v x %v", r.Width(), r.Height())
	}
}
