package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Icon dimensions for system tray.
const iconSize = 22

// Download and upload arrow colors.
var (
	colorDown = color.RGBA{211, 47, 47, 255} // Red
	colorUp   = color.RGBA{76, 175, 80, 255} // Green
)

// iconTrafficPNG is the pre-generated tray icon: a red down arrow beside a
// green up arrow.
var iconTrafficPNG []byte

func init() {
	iconTrafficPNG = generateArrowsIcon()
}

// generateArrowsIcon renders the two-arrow traffic icon.
func generateArrowsIcon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Down arrow in the left half, up arrow in the right half.
	drawArrow(img, 2, 9, colorDown, true)
	drawArrow(img, 12, 19, colorUp, false)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// Encoding a small in-memory RGBA image cannot fail.
		panic(err)
	}
	return buf.Bytes()
}

// drawArrow draws a vertical arrow spanning columns left..right with the
// head pointing down or up.
func drawArrow(img *image.RGBA, left, right int, c color.RGBA, down bool) {
	mid := (left + right) / 2
	shaftTop, shaftBottom := 2, 13
	headBase, headTip := 12, 19
	if !down {
		shaftTop, shaftBottom = 9, 20
		headBase, headTip = 10, 3
	}

	// Shaft.
	for y := shaftTop; y <= shaftBottom; y++ {
		img.SetRGBA(mid-1, y, c)
		img.SetRGBA(mid, y, c)
	}

	// Head: rows narrowing toward the tip.
	step := 1
	if headTip < headBase {
		step = -1
	}
	width := (right - left) / 2
	for y := headBase; y != headTip+step; y += step {
		for x := mid - width; x <= mid+width; x++ {
			img.SetRGBA(x, y, c)
		}
		if width > 0 {
			width--
		}
	}
}
