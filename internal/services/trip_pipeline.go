package services

import (
	"context"
	"encoding/json"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"

	"go.uber.org/zap"
)

// tripStage names one step of the pipeline state machine. Any failure moves
// the run straight to stageFailed carrying the failing component's error.
type tripStage string

const (
	stageStart               tripStage = "start"
	stageOriginResolved      tripStage = "origin_resolved"
	stageDestinationResolved tripStage = "destination_resolved"
	stageSanityChecked       tripStage = "sanity_checked"
	stageRouted              tripStage = "routed"
	stageOptimized           tripStage = "optimized"
	stageDone                tripStage = "done"
	stageFailed              tripStage = "failed"
)

// AddressInput is a free-text address, optionally accompanied by
// caller-supplied coordinates that skip geocoding.
type AddressInput struct {
	Address     string
	Coordinates *domain.Coordinates
}

// TripRequest carries everything needed for one full trip optimization.
type TripRequest struct {
	Origin            AddressInput
	Destination       AddressInput
	Waypoints         []AddressInput
	ProfileKey        string
	VehicleName       string
	VehicleKey        string
	FuelPrice         float64
	DriverCostPerHour float64
}

// TripResult merges the optimization output with its originating route data.
type TripResult struct {
	Optimization *domain.OptimizationResult
	Route        domain.RouteResult
	Origin       domain.GeoPoint
	Destination  domain.GeoPoint
	Vehicle      domain.VehicleProfile
	VehicleName  string
}

// TripPipeline orchestrates geocoding, sanity checking, routing and speed
// optimization for one request. Runs are independent and share no mutable
// state, so concurrent requests need no coordination.
type TripPipeline struct {
	logger    *zap.Logger
	geocoder  *GeocodeValidator
	assembler *RouteAssembler
	optimizer *SpeedCostOptimizer
	catalog   *domain.VehicleCatalog
	repo      ports.TripRepository
}

func NewTripPipeline(
	logger *zap.Logger,
	geocoder *GeocodeValidator,
	assembler *RouteAssembler,
	optimizer *SpeedCostOptimizer,
	catalog *domain.VehicleCatalog,
	repo ports.TripRepository,
) *TripPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if catalog == nil {
		catalog = domain.NewVehicleCatalog()
	}
	return &TripPipeline{
		logger:    logger,
		geocoder:  geocoder,
		assembler: assembler,
		optimizer: optimizer,
		catalog:   catalog,
		repo:      repo,
	}
}

// ResolveAddress resolves one address input to a validated GeoPoint.
// Caller-supplied coordinates skip geocoding but still pass the
// bounding-box gate; they carry no confidence and an unknown match type.
func (p *TripPipeline) ResolveAddress(ctx context.Context, in AddressInput) (domain.GeoPoint, error) {
	if in.Coordinates != nil {
		if !inServiceRegion(*in.Coordinates) {
			return domain.GeoPoint{}, &domain.OutOfRegionError{
				Address:     in.Address,
				Coordinates: *in.Coordinates,
			}
		}
		return domain.GeoPoint{
			Coordinates:      *in.Coordinates,
			FormattedAddress: in.Address,
			MatchType:        domain.MatchUnknown,
		}, nil
	}

	return p.geocoder.Resolve(ctx, in.Address)
}

// ComputeRoute resolves both endpoints, applies the plausibility gate, and
// assembles a route.
func (p *TripPipeline) ComputeRoute(
	ctx context.Context,
	origin AddressInput,
	destination AddressInput,
	waypoints []AddressInput,
	profileKey string,
) (domain.RouteResult, domain.GeoPoint, domain.GeoPoint, error) {
	originPt, err := p.ResolveAddress(ctx, origin)
	if err != nil {
		return domain.RouteResult{}, domain.GeoPoint{}, domain.GeoPoint{},
			fmt.Errorf("resolve origin: %w", err)
	}

	destPt, err := p.ResolveAddress(ctx, destination)
	if err != nil {
		return domain.RouteResult{}, domain.GeoPoint{}, domain.GeoPoint{},
			fmt.Errorf("resolve destination: %w", err)
	}

	if err := CheckTripPlausibility(originPt, destPt); err != nil {
		return domain.RouteResult{}, domain.GeoPoint{}, domain.GeoPoint{}, err
	}

	waypointPts := make([]domain.GeoPoint, 0, len(waypoints))
	for i, w := range waypoints {
		pt, err := p.ResolveAddress(ctx, w)
		if err != nil {
			return domain.RouteResult{}, domain.GeoPoint{}, domain.GeoPoint{},
				fmt.Errorf("resolve waypoint #%d: %w", i+1, err)
		}
		waypointPts = append(waypointPts, pt)
	}

	route, err := p.assembler.Route(ctx, originPt, destPt, waypointPts, profileKey)
	if err != nil {
		return domain.RouteResult{}, domain.GeoPoint{}, domain.GeoPoint{}, err
	}

	return route, originPt, destPt, nil
}

// Run executes the full pipeline and persists the completed optimization.
// A history-store failure is logged and never fails the response.
func (p *TripPipeline) Run(ctx context.Context, req TripRequest) (*TripResult, error) {
	stage := stageStart
	fail := func(err error) (*TripResult, error) {
		p.logger.Warn("trip pipeline failed",
			zap.String("stage", string(stage)),
			zap.String("next_stage", string(stageFailed)),
			zap.Error(err),
		)
		return nil, err
	}
	advance := func(next tripStage) {
		p.logger.Debug("trip pipeline stage",
			zap.String("stage", string(next)),
		)
		stage = next
	}

	originPt, err := p.ResolveAddress(ctx, req.Origin)
	if err != nil {
		return fail(fmt.Errorf("resolve origin: %w", err))
	}
	advance(stageOriginResolved)

	destPt, err := p.ResolveAddress(ctx, req.Destination)
	if err != nil {
		return fail(fmt.Errorf("resolve destination: %w", err))
	}
	advance(stageDestinationResolved)

	if err := CheckTripPlausibility(originPt, destPt); err != nil {
		return fail(err)
	}
	advance(stageSanityChecked)

	waypointPts := make([]domain.GeoPoint, 0, len(req.Waypoints))
	for i, w := range req.Waypoints {
		pt, err := p.ResolveAddress(ctx, w)
		if err != nil {
			return fail(fmt.Errorf("resolve waypoint #%d: %w", i+1, err))
		}
		waypointPts = append(waypointPts, pt)
	}

	route, err := p.assembler.Route(ctx, originPt, destPt, waypointPts, req.ProfileKey)
	if err != nil {
		return fail(err)
	}
	advance(stageRouted)

	vehicle := p.catalog.Profile(req.VehicleKey)

	result, err := p.optimizer.Optimize(OptimizeRequest{
		DistanceKm:            route.DistanceKm,
		FuelPrice:             req.FuelPrice,
		BaseConsumptionKmPerL: vehicle.BaseConsumptionKmPerL,
		DriverCostPerHour:     req.DriverCostPerHour,
		Vehicle:               vehicle,
		WayType:               route.PredominantWayType,
	})
	if err != nil {
		return fail(err)
	}
	advance(stageOptimized)

	p.persist(ctx, req, originPt, destPt, route, result)
	advance(stageDone)

	return &TripResult{
		Optimization: result,
		Route:        route,
		Origin:       originPt,
		Destination:  destPt,
		Vehicle:      vehicle,
		VehicleName:  req.VehicleName,
	}, nil
}

// persist writes the trip record best-effort.
func (p *TripPipeline) persist(
	ctx context.Context,
	req TripRequest,
	origin domain.GeoPoint,
	destination domain.GeoPoint,
	route domain.RouteResult,
	result *domain.OptimizationResult,
) {
	if p.repo == nil {
		return
	}

	analysisJSON, err := json.Marshal(result.Analysis)
	if err != nil {
		p.logger.Error("marshal analysis for history", zap.Error(err))
		return
	}
	curveJSON, err := json.Marshal(result.CostCurve)
	if err != nil {
		p.logger.Error("marshal cost curve for history", zap.Error(err))
		return
	}

	rec := &domain.TripRecord{
		VehicleName:     req.VehicleName,
		Origin:          req.Origin.Address,
		Destination:     req.Destination.Address,
		DistanceKm:      route.DistanceKm,
		OptimalSpeedKmh: result.OptimalSpeedKmh,
		TotalCost:       result.MinimalTotalCost,
		Savings:         result.SavingsVsReference,
		SavingsPct:      result.SavingsPct,
		TravelTimeHours: result.Scenario.TravelTimeHours,
		FuelPrice:       req.FuelPrice,
		DriverCostHour:  req.DriverCostPerHour,
		AnalysisJSON:    string(analysisJSON),
		CostCurveJSON:   string(curveJSON),
	}

	if err := p.repo.Save(ctx, rec); err != nil {
		p.logger.Error("trip history write failed",
			zap.String("vehicle_name", req.VehicleName),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("trip saved",
		zap.Int64("trip_id", rec.ID),
		zap.String("vehicle_name", rec.VehicleName),
		zap.Float64("savings", rec.Savings),
	)
}

// History returns the most recent trips from the store.
func (p *TripPipeline) History(ctx context.Context, limit int) ([]*domain.TripRecord, error) {
	if p.repo == nil {
		return []*domain.TripRecord{}, nil
	}
	return p.repo.List(ctx, limit)
}

// Statistics aggregates the history store.
func (p *TripPipeline) Statistics(ctx context.Context) (domain.TripStats, error) {
	if p.repo == nil {
		return domain.TripStats{}, nil
	}
	return p.repo.Stats(ctx)
}
