package oam

// Shape is the hardware shape code stored in attr0 bits 14-15.
type Shape uint8

const (
	ShapeSquare Shape = 0
	ShapeWide   Shape = 1
	ShapeTall   Shape = 2
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeWide:
		return "wide"
	case ShapeTall:
		return "tall"
	}
	return "prohibited"
}

// Size is the hardware size code stored in attr1 bits 14-15. Together with
// Shape it selects the footprint.
type Size uint8

const (
	SizeSmall  Size = 0
	SizeNormal Size = 1
	SizeBig    Size = 2
	SizeHuge   Size = 3
)

// footprints[shape][size] = {width, height} in pixels.
var footprints = [3][4][2]uint8{
	ShapeSquare: {{8, 8}, {16, 16}, {32, 32}, {64, 64}},
	ShapeWide:   {{16, 8}, {32, 8}, {32, 16}, {64, 32}},
	ShapeTall:   {{8, 16}, {8, 32}, {16, 32}, {32, 64}},
}

// Footprint returns the base pixel size of a (shape, size) pair, before the
// double-size mode is applied. Shape 3 is prohibited by the hardware.
func Footprint(shape Shape, size Size) (w, h int) {
	require(shape <= ShapeTall, "Footprint", "prohibited shape %d", shape)
	require(size <= SizeHuge, "Footprint", "invalid size %d", size)
	f := footprints[(shape&3)%3][size&3]
	return int(f[0]), int(f[1])
}
