package domain

// WayType is a coarse classification of the predominant road type on a route.
type WayType string

const (
	WayTypeUrban     WayType = "urban"
	WayTypeIntercity WayType = "intercity"
)

// RouteResult describes a single computed route between two or more points.
//
// Geometry always contains at least the origin and destination in order;
// callers must not assume higher fidelity, since an encoded or missing
// provider geometry degrades to a two-point straight line.
//
// DistanceKm and DurationHours are both zero or both positive: the average
// speed is never derived from a 0/0 division.
type RouteResult struct {
	DistanceKm         float64
	DurationHours      float64
	AvgSpeedKmh        float64
	PredominantWayType WayType
	HasToll            bool
	Geometry           []Coordinates
	Instructions       []string
}
