package road

import (
	"math"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
)

// WayType classifies the highway tag of a way by how it can be walked.
type WayType int

const (
	Unknown WayType = iota
	Footway
	Pedestrian
	Path
	Steps
	LivingStreet
	Residential
	Service
	Track
	Cycleway
	Unclassified
	Tertiary
	Secondary
	Primary
)

var wayTypes = map[string]WayType{
	"footway":        Footway,
	"sidewalk":       Footway,
	"crossing":       Footway,
	"pedestrian":     Pedestrian,
	"path":           Path,
	"bridleway":      Path,
	"steps":          Steps,
	"living_street":  LivingStreet,
	"residential":    Residential,
	"service":        Service,
	"track":          Track,
	"cycleway":       Cycleway,
	"unclassified":   Unclassified,
	"road":           Unclassified,
	"tertiary":       Tertiary,
	"tertiary_link":  Tertiary,
	"secondary":      Secondary,
	"secondary_link": Secondary,
	"primary":        Primary,
	"primary_link":   Primary,
}

// ParseWayType maps a highway value to its type. Motorways, trunks and
// everything unknown map to Unknown.
func ParseWayType(highway string) WayType {
	return wayTypes[highway]
}

func (w WayType) String() string {
	return []string{"Unknown", "Footway", "Pedestrian", "Path", "Steps", "LivingStreet", "Residential",
		"Service", "Track", "Cycleway", "Unclassified", "Tertiary", "Secondary", "Primary"}[w]
}

// Walking speed in metres per second
const (
	DefaultWalkingSpeed = 1.4
	stepsWalkingSpeed   = 0.5
	trackWalkingSpeed   = 1.2
)

func WalkingSpeed(w WayType) float64 {
	switch w {
	case Steps:
		return stepsWalkingSpeed
	case Track, Path:
		return trackWalkingSpeed
	default:
		return DefaultWalkingSpeed
	}
}

// Walkable reports whether pedestrians may use a way with the given tags.
func Walkable(tags map[string]string) bool {
	if ParseWayType(tags["highway"]) == Unknown {
		return false
	}
	switch tags["foot"] {
	case "no", "private":
		return false
	case "yes", "designated", "permissive":
		return true
	}
	access := tags["access"]
	return access != "no" && access != "private"
}

// Segment is a walkable way. Nodes are in way order.
type Segment struct {
	ID    osm.WayID
	Type  WayType
	Nodes []osm.NodeID
	Tags  map[string]string
}

func NewSegment(id int64, tags map[string]string, nodeIds []int64) *Segment {
	s := &Segment{
		ID:    osm.WayID(id),
		Type:  ParseWayType(tags["highway"]),
		Nodes: make([]osm.NodeID, len(nodeIds)),
		Tags:  tags,
	}
	for i, nodeId := range nodeIds {
		s.Nodes[i] = osm.NodeID(nodeId)
	}
	return s
}

// Speed is the walking speed on this segment in metres per second.
func (s *Segment) Speed() float64 {
	return WalkingSpeed(s.Type)
}

// TravelTime returns the seconds needed to walk from a to b at speed, rounded
// up and clamped to graph.MaxCost.
func TravelTime(a, b orb.Point, speed float64) graph.Cost {
	seconds := math.Ceil(geo.Distance(a, b) / speed)
	if seconds >= float64(graph.MaxCost) {
		return graph.MaxCost
	}
	return graph.Cost(seconds)
}
