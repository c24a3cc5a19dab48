package renderer

import "image"

// Band represents a run of full-width pixel rows rendered as one task
type Band struct {
	ID     int             // Unique band identifier, also its top-to-bottom index
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewBandGrid splits the canvas into horizontal bands of at most bandHeight rows
func NewBandGrid(width, height, bandHeight int) []*Band {
	if bandHeight <= 0 {
		bandHeight = 1
	}

	var bands []*Band
	bandID := 0

	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height) // Don't exceed image bounds
		bands = append(bands, &Band{
			ID:     bandID,
			Bounds: image.Rect(0, y0, width, y1),
		})
		bandID++
	}

	return bands
}
