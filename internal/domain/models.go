// Package domain holds the plain data types shared across the fuel-stop
// planning pipeline. None of these types perform I/O; they are produced
// and consumed within a single request and discarded once the response
// is formed.
package domain

// FuelStation is a single entry from the station catalogue, annotated
// with its position relative to the active route once the Corridor
// Selector has processed it.
type FuelStation struct {
	ID       int     `json:"id"`
	Name     string  `json:"truckstop_name"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	RackID   int     `json:"rack_id"`
	Price    float64 `json:"retail_price"`
	Lat      float64 `json:"latitude"`
	Lng      float64 `json:"longitude"`
	HexCell  string  `json:"h3_index"`

	// Deviation and MileMarker are populated by the Corridor Selector;
	// they are meaningless on a station fetched straight from the
	// catalogue.
	Deviation  float64 `json:"deviation_distance"`
	MileMarker float64 `json:"route_mile_marker"`
}

// Route is the polyline and distance/duration summary returned by the
// routing collaborator for a single start/end pair.
type Route struct {
	StartLocation   string  `json:"start_location"`
	EndLocation     string  `json:"end_location"`
	TotalDistance   float64 `json:"total_distance_miles"`
	TotalDuration   float64 `json:"total_duration_minutes"`
	Polyline        string  `json:"polyline"`
}

// FuelStopDecision is one chosen stop in the optimiser's output
// itinerary.
type FuelStopDecision struct {
	Station       FuelStation `json:"-"`
	MileMarker    float64     `json:"mile_marker"`
	GallonsFilled float64     `json:"gallons_filled"`
	Cost          float64     `json:"cost"`
	PricePerGal   float64     `json:"price_per_gallon"`
	Score         float64     `json:"score"`
}

// TrackerEntry is one point on the per-mile cumulative-spend
// progression.
type TrackerEntry struct {
	Mile        int     `json:"mile"`
	TotalSpent  float64 `json:"total_spent"`
}

// Coordinate is a single decoded (lat, lon) point from a polyline. A
// third (elevation) value, if present in the encoded string, is never
// represented here — it is dropped at decode time.
type Coordinate struct {
	Lat float64
	Lng float64
}
