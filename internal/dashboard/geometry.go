package dashboard

// Grid geometry constants in pixels. Pitch is the distance between the left
// edges of adjacent cells.
const (
	CellSize = 120
	Gap      = 16
	Pitch    = CellSize + Gap
)

// Rect is a widget's pixel-space placement.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelRect maps a widget's grid placement to pixels. A widget spanning n
// cells absorbs the n-1 gaps between them but not the outer ones.
func PixelRect(w Widget) Rect {
	return Rect{
		Left:   w.Position.X*Pitch + Gap,
		Top:    w.Position.Y*Pitch + Gap,
		Width:  w.Size.Width*CellSize + (w.Size.Width-1)*Gap,
		Height: w.Size.Height*CellSize + (w.Size.Height-1)*Gap,
	}
}
