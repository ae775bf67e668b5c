package mesh

// PixelToNDC maps a pixel coordinate on a width x height screen (origin top
// left, y down) to normalized device coordinates (origin center, y up).
func PixelToNDC(px, py, width, height float32) (x, y float32) {
	return 2*px/width - 1, 1 - 2*py/height
}

// RectToNDC maps a pixel rectangle to its NDC min/max corners.
func RectToNDC(x0, y0, x1, y1, width, height float32) (minX, minY, maxX, maxY float32) {
	ax, ay := PixelToNDC(x0, y0, width, height)
	bx, by := PixelToNDC(x1, y1, width, height)
	if ax > bx {
		ax, bx = bx, ax
	}
	if ay > by {
		ay, by = by, ay
	}
	return ax, ay, bx, by
}
