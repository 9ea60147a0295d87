package oam

import "testing"

func TestFootprintTable(t *testing.T) {
	cases := []struct {
		shape Shape
		size  Size
		w, h  int
	}{
		{ShapeSquare, SizeSmall, 8, 8},
		{ShapeSquare, SizeNormal, 16, 16},
		{ShapeSquare, SizeBig, 32, 32},
		{ShapeSquare, SizeHuge, 64, 64},
		{ShapeWide, SizeSmall, 16, 8},
		{ShapeWide, SizeNormal, 32, 8},
		{ShapeWide, SizeBig, 32, 16},
		{ShapeWide, SizeHuge, 64, 32},
		{ShapeTall, SizeSmall, 8, 16},
		{ShapeTall, SizeNormal, 8, 32},
		{ShapeTall, SizeBig, 16, 32},
		{ShapeTall, SizeHuge, 32, 64},
	}
	for _, tc := range cases {
		w, h := Footprint(tc.shape, tc.size)
		if w != tc.w || h != tc.h {
			t.Fatalf("%s/%d: got %dx%d want %dx%d", tc.shape, tc.size, w, h, tc.w, tc.h)
		}
	}
}

func TestFootprintProhibitedShapePanics(t *testing.T) {
	requireChecks(t)
	defer func() {
		r := recover()
		if _, ok := r.(*ContractError); !ok {
			t.Fatalf("expected *ContractError panic, got %v", r)
		}
	}()
	Footprint(Shape(3), SizeSmall)
}
