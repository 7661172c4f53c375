// Package render shapes filtered record sets into presentation structures.
// It owns the output contracts only; widgets and tile services live
// entirely client-side.
package render

import "github.com/farmersjam/market-dashboard/internal/domain"

// Default viewpoint: downtown Atlanta, matching the dataset's coverage.
const (
	DefaultViewLat  = 33.7490
	DefaultViewLon  = -84.3880
	DefaultViewZoom = 10
)

// markerColor is the fixed RGBA fill for market points.
var markerColor = [4]uint8{250, 0, 0, 160}

// MapSpec is a renderable scatter-point map description: a single point
// layer over a fixed initial viewpoint. It serializes to the shape the
// client-side deck expects.
type MapSpec struct {
	ViewState ViewState  `json:"view_state"`
	Layer     PointLayer `json:"layer"`
	Tooltip   Tooltip    `json:"tooltip"`
}

// ViewState positions the initial camera.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pitch     int     `json:"pitch"`
}

// PointLayer is a scatterplot layer of market locations.
type PointLayer struct {
	Type   string   `json:"type"`
	Color  [4]uint8 `json:"color"`  // RGBA
	Radius int      `json:"radius"` // meters
	Points []Point  `json:"points"`
}

// Point is one market marker with its hover fields.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
}

// Tooltip describes the hover card: name and location, white on black.
type Tooltip struct {
	Text  string            `json:"text"`
	Style map[string]string `json:"style"`
}

// NewMapSpec builds the map description for a record set. Records without
// usable coordinates contribute no point; they are still listed in the
// table, just not mappable.
func NewMapSpec(records []domain.Record, radius int) MapSpec {
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		if !rec.HasCoordinates() {
			continue
		}
		points = append(points, Point{
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Name:      rec.Name,
			Location:  rec.Location,
		})
	}

	return MapSpec{
		ViewState: ViewState{
			Latitude:  DefaultViewLat,
			Longitude: DefaultViewLon,
			Zoom:      DefaultViewZoom,
		},
		Layer: PointLayer{
			Type:   "scatterplot",
			Color:  markerColor,
			Radius: radius,
			Points: points,
		},
		Tooltip: Tooltip{
			Text: "{Name}\n{Location}",
			Style: map[string]string{
				"color":           "white",
				"backgroundColor": "black",
				"fontFamily":      "Arial",
			},
		},
	}
}
