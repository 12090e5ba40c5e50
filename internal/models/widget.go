// Package models contains shared data structures used across the application.
package models

// WidgetName identifies a widget. It is the join key between discovered
// widgets, the enabled map and the position list.
type WidgetName string

// Metadata is the content of a widget folder's metadata.json.
type Metadata struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WidgetDefinition is a discovered widget.
type WidgetDefinition struct {
	Name   WidgetName
	Width  int
	Height int

	// Folder is the absolute path of the widget folder.
	Folder string

	// Content is the absolute path of the widget's index.html.
	Content string
}

// Point is a screen position in pixels.
type Point struct {
	X int
	Y int
}

// PositionEntry is one element of positions.json.
type PositionEntry struct {
	Name     WidgetName `json:"name"`
	Position [2]float64 `json:"position"`
}

// Point returns the entry's position rounded to whole pixels.
func (e PositionEntry) Point() Point {
	return Point{X: roundPixel(e.Position[0]), Y: roundPixel(e.Position[1])}
}

// NewPositionEntry creates a positions.json entry.
func NewPositionEntry(name WidgetName, p Point) PositionEntry {
	return PositionEntry{Name: name, Position: [2]float64{float64(p.X), float64(p.Y)}}
}

func roundPixel(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
