package pbf

import (
	"encoding/json"
	"os"

	"github.com/natevvv/osm-floodfill/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
)

// RoadFeatures renders the roads as GeoJSON line strings. Nodes without a
// coordinate are left out, roads with fewer than two known nodes are skipped.
func RoadFeatures(roads []*road.Segment, nodes map[osm.NodeID]orb.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, segment := range roads {
		line := make(orb.LineString, 0, len(segment.Nodes))
		for _, id := range segment.Nodes {
			if p, ok := nodes[id]; ok {
				line = append(line, p)
			}
		}
		if len(line) < 2 {
			continue
		}
		f := geojson.NewFeature(line)
		f.Properties["id"] = int64(segment.ID)
		f.Properties["type"] = segment.Type.String()
		fc.Append(f)
	}
	return fc
}

func ExportRoadGeoJson(roads []*road.Segment, importer *RoadImporter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(RoadFeatures(roads, importer.Nodes()))
}
