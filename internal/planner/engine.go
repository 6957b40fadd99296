// Package planner implements the Optimisation Engine: a shortest-path
// solver over a directed acyclic graph whose edges encode driving cost
// as a function of fuel price at the upstream node. It is pure — no
// I/O, no shared state, safe to run concurrently across requests.
package planner

import (
	"container/heap"
	"math"
	"sort"

	"longhaul-fuel-planner/internal/domain"
)

// Config holds the Optimisation Engine's fixed-per-instance tunables.
type Config struct {
	// VehicleRange is the maximum drivable distance, in miles, between
	// any two consecutive nodes (start, stations, end).
	VehicleRange float64
	// MPG is the constant miles-per-gallon efficiency assumed for the
	// whole trip.
	MPG float64
	// PriceWeight is the scoring coefficient on normalised price.
	PriceWeight float64
	// DeviationWeight is the scoring coefficient on deviation distance.
	DeviationWeight float64
	// DetourPenalty is reserved for a future scoring refinement. It is
	// intentionally unreferenced by PlanTrip and score — do not wire it
	// in without an explicit decision to change the scoring model.
	DetourPenalty float64
	// StartPriceBufferMiles is the radius within which a station's
	// price is eligible to seed the synthetic Start node's price.
	StartPriceBufferMiles float64
}

// DefaultConfig returns the engine defaults named in spec.md §4.2.
func DefaultConfig() Config {
	return Config{
		VehicleRange:          500.0,
		MPG:                   10.0,
		PriceWeight:           10.0,
		DeviationWeight:       2.0,
		DetourPenalty:         5.0,
		StartPriceBufferMiles: 15.0,
	}
}

// fallbackPrice is used when no candidate stations exist at all, both
// for the synthetic Start node's price and for score normalisation.
const fallbackPrice = 3.5

// InfeasibleCost is the sentinel total cost reported when no path from
// Start to End exists under the range constraint.
const InfeasibleCost = -1.0

// Engine runs the Optimisation Engine with a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// node is an internal graph vertex: either the synthetic Start/End
// endpoints or a candidate station, carrying only the fields the
// graph construction and cost formulas need.
type node struct {
	mile      float64
	deviation float64
	price     float64
	station   *domain.FuelStation // nil for Start/End
}

// PlanTrip solves the fuel-stop shortest-path problem for a single
// request. stations need not be sorted; PlanTrip sorts a copy by
// ascending MileMarker. Stations whose MileMarker falls outside
// [0, routeDistance] are dropped before graph construction.
//
// Returns the chosen stops in increasing mile-marker order, the total
// cost (InfeasibleCost if End is unreachable), the per-mile spend
// tracker, and the total gallons purchased.
func (e *Engine) PlanTrip(routeDistance float64, stations []domain.FuelStation) ([]domain.FuelStopDecision, float64, []domain.TrackerEntry, float64) {
	valid := make([]domain.FuelStation, 0, len(stations))
	for _, s := range stations {
		if s.MileMarker < 0 || s.MileMarker > routeDistance {
			continue
		}
		valid = append(valid, s)
	}

	sorted := make([]domain.FuelStation, len(valid))
	copy(sorted, valid)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MileMarker < sorted[j].MileMarker
	})

	nodes := e.buildNodes(routeDistance, sorted)

	dist, prev, reached := e.shortestPath(nodes)

	endIdx := len(nodes) - 1
	if !reached[endIdx] {
		return nil, InfeasibleCost, nil, 0
	}

	path := reconstructPath(prev, endIdx)

	avgPrice := averagePrice(valid)

	stops := make([]domain.FuelStopDecision, 0, len(path)-1)
	tracker := make([]domain.TrackerEntry, 0)
	var totalGallons float64
	var cumulativeSpent float64

	for i := 0; i < len(path)-1; i++ {
		u := nodes[path[i]]
		v := nodes[path[i+1]]

		segmentDrive := segmentDriveDistance(u, v)
		gallons := segmentDrive / e.cfg.MPG
		totalGallons += gallons

		if path[i] != 0 { // u is a station, not Start
			cost := gallons * u.price
			stops = append(stops, domain.FuelStopDecision{
				Station:       *u.station,
				MileMarker:    u.mile,
				GallonsFilled: round2(gallons),
				Cost:          round2(cost),
				PricePerGal:   u.price,
				Score:         e.score(*u.station, avgPrice),
			})
		}

		startMile := math.Floor(u.mile)
		endMile := math.Floor(v.mile)
		milesInt := int(endMile - startMile)

		segmentCost := (segmentDrive / e.cfg.MPG) * u.price
		var costPerMile float64
		if milesInt > 0 {
			costPerMile = segmentCost / float64(milesInt)
		}

		for m := int(startMile) + 1; m <= int(endMile); m++ {
			cumulativeSpent += costPerMile
			tracker = append(tracker, domain.TrackerEntry{
				Mile:       m,
				TotalSpent: round2(cumulativeSpent),
			})
		}
	}

	return stops, round2(dist[endIdx]), tracker, round2(totalGallons)
}

// buildNodes assembles Start -> sorted stations -> End.
func (e *Engine) buildNodes(routeDistance float64, sortedStations []domain.FuelStation) []node {
	startPrice := e.startPrice(sortedStations)

	nodes := make([]node, 0, len(sortedStations)+2)
	nodes = append(nodes, node{mile: 0, deviation: 0, price: startPrice})

	for i := range sortedStations {
		s := sortedStations[i]
		nodes = append(nodes, node{
			mile:      s.MileMarker,
			deviation: s.Deviation,
			price:     s.Price,
			station:   &sortedStations[i],
		})
	}

	nodes = append(nodes, node{mile: routeDistance, deviation: 0, price: 0})
	return nodes
}

// startPrice implements spec §4.2's starting-price fallback chain:
// cheapest station within StartPriceBufferMiles of the origin, else
// the mean price of all candidates, else fallbackPrice.
func (e *Engine) startPrice(sortedStations []domain.FuelStation) float64 {
	var local []domain.FuelStation
	for _, s := range sortedStations {
		if s.MileMarker <= e.cfg.StartPriceBufferMiles {
			local = append(local, s)
		}
	}

	if len(local) > 0 {
		min := local[0].Price
		for _, s := range local[1:] {
			if s.Price < min {
				min = s.Price
			}
		}
		return min
	}

	if len(sortedStations) > 0 {
		return averagePrice(sortedStations)
	}

	return fallbackPrice
}

// segmentDriveDistance is the physical distance driven to get from u
// to v: the route distance between them plus the one-way deviation at
// each endpoint (see spec §9 on the double-counting this
// implies for an intermediate station on two consecutive segments —
// this is a deliberate modelling choice, not a bug).
func segmentDriveDistance(u, v node) float64 {
	return (v.mile - u.mile) + u.deviation + v.deviation
}

// shortestPath runs Dijkstra from node 0 over the forward-only DAG.
// Because nodes are already sorted by mile, once a neighbour's bare
// route distance alone exceeds VehicleRange no later neighbour from
// the same u can be feasible either, so enumeration breaks early.
func (e *Engine) shortestPath(nodes []node) (dist []float64, prev []int, reached []bool) {
	n := len(nodes)
	dist = make([]float64, n)
	prev = make([]int, n)
	reached = make([]bool, n)
	for i := range prev {
		prev[i] = -1
	}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, pqItem{cost: 0, node: 0})
	dist[0] = 0
	reached[0] = true

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		u := item.node

		if reached[u] && item.cost > dist[u] {
			continue // stale entry
		}

		for v := u + 1; v < n; v++ {
			routeDist := nodes[v].mile - nodes[u].mile
			if routeDist > e.cfg.VehicleRange {
				break // scan-break: sorted by mile, nothing further is feasible
			}

			segmentDrive := segmentDriveDistance(nodes[u], nodes[v])
			if segmentDrive > e.cfg.VehicleRange {
				continue
			}

			gallons := segmentDrive / e.cfg.MPG
			edgeCost := gallons * nodes[u].price
			newCost := dist[u] + edgeCost

			if !reached[v] || newCost < dist[v] {
				dist[v] = newCost
				prev[v] = u
				reached[v] = true
				heap.Push(pq, pqItem{cost: newCost, node: v})
			}
		}
	}

	return dist, prev, reached
}

func reconstructPath(prev []int, end int) []int {
	var path []int
	for at := end; at != -1; at = prev[at] {
		path = append(path, at)
		if at == 0 {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// score returns a [0, 10] figure that is informative only — it never
// feeds back into routing decisions. Strictly decreasing in price and
// deviation distance.
func (e *Engine) score(s domain.FuelStation, avgPrice float64) float64 {
	normPrice := 1.0
	if avgPrice != 0 {
		normPrice = s.Price / avgPrice
	}

	penalty := e.cfg.PriceWeight*normPrice + e.cfg.DeviationWeight*s.Deviation
	return round2(10.0 / (1.0 + penalty*0.1))
}

func averagePrice(stations []domain.FuelStation) float64 {
	if len(stations) == 0 {
		return fallbackPrice
	}
	var sum float64
	for _, s := range stations {
		sum += s.Price
	}
	return sum / float64(len(stations))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
