package entities

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoPolygon is a closed area described by its exterior ring.
type GeoPolygon struct {
	Exterior []GeoPoint `json:"exterior"`
}
