package watermark

// DefaultMargin is the distance in pixels between the watermark and the
// nearest image edges.
const DefaultMargin = 20

// Position maps a placement keyword to the pixel coordinates of the text's
// top-left corner. Unknown keywords place bottom-right. Coordinates may be
// negative when the text is larger than the image; callers draw unclamped.
func Position(keyword string, imgW, imgH, textW, textH, margin int) (int, int) {
	switch keyword {
	case "top-left":
		return margin, margin
	case "top-right":
		return imgW - textW - margin, margin
	case "top-center":
		return floorDiv(imgW-textW, 2), margin
	case "center":
		return floorDiv(imgW-textW, 2), floorDiv(imgH-textH, 2)
	case "bottom-left":
		return margin, imgH - textH - margin
	case "bottom-center":
		return floorDiv(imgW-textW, 2), imgH - textH - margin
	default: // bottom-right
		return imgW - textW - margin, imgH - textH - margin
	}
}

// floorDiv divides rounding toward negative infinity, so oversized text
// centers symmetrically instead of truncating toward zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
