package domain

// VehicleProfile is a fixed fleet catalog entry. Profiles are read-only;
// the catalog is built once at startup and shared by reference.
type VehicleProfile struct {
	Key                   string
	ConsumptionFactor     float64
	TankCapacityLiters    float64
	BaseConsumptionKmPerL float64
	DisplayName           string
}

// VehicleCatalog holds the closed set of known vehicle profiles.
type VehicleCatalog struct {
	profiles map[string]VehicleProfile
	fallback VehicleProfile
}

// NewVehicleCatalog builds the fleet catalog with empirical per-model
// consumption figures.
func NewVehicleCatalog() *VehicleCatalog {
	fiorino := VehicleProfile{
		Key:                   "fiorino",
		ConsumptionFactor:     0.95,
		TankCapacityLiters:    55,
		BaseConsumptionKmPerL: 12.0,
		DisplayName:           "Fiat Fiorino",
	}
	c := &VehicleCatalog{
		profiles: map[string]VehicleProfile{
			"fiorino": fiorino,
			"expert": {
				Key:                   "expert",
				ConsumptionFactor:     1.0,
				TankCapacityLiters:    65,
				BaseConsumptionKmPerL: 10.0,
				DisplayName:           "Peugeot Expert",
			},
			"transit": {
				Key:                   "transit",
				ConsumptionFactor:     1.15,
				TankCapacityLiters:    80,
				BaseConsumptionKmPerL: 8.0,
				DisplayName:           "Ford Transit",
			},
		},
		fallback: fiorino,
	}
	return c
}

// Profile returns the profile for key, falling back to the default fleet
// vehicle for unknown keys.
func (c *VehicleCatalog) Profile(key string) VehicleProfile {
	if p, ok := c.profiles[key]; ok {
		return p
	}
	return c.fallback
}

// Keys returns the closed set of known profile keys.
func (c *VehicleCatalog) Keys() []string {
	keys := make([]string, 0, len(c.profiles))
	for k := range c.profiles {
		keys = append(keys, k)
	}
	return keys
}

// RouteTypeFactor carries empirical consumption and stop-time adjustments
// for one way type.
type RouteTypeFactor struct {
	ConsumptionFactor float64
	StopTimeFactor    float64
	AvgStopSpeedKmh   float64
}

// RouteFactors is the read-only way-type factor table.
type RouteFactors struct {
	factors map[WayType]RouteTypeFactor
}

func NewRouteFactors() *RouteFactors {
	return &RouteFactors{
		factors: map[WayType]RouteTypeFactor{
			WayTypeUrban:     {ConsumptionFactor: 1.2, StopTimeFactor: 3.0, AvgStopSpeedKmh: 15},
			WayTypeIntercity: {ConsumptionFactor: 0.9, StopTimeFactor: 5.0, AvgStopSpeedKmh: 20},
		},
	}
}

// Factor returns the adjustment table for a way type, defaulting to urban.
func (f *RouteFactors) Factor(w WayType) RouteTypeFactor {
	if v, ok := f.factors[w]; ok {
		return v
	}
	return f.factors[WayTypeUrban]
}
