package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/serjvanilla/go-overpass"

	"github.com/san-kum/agemap/internal/geo"
)

// DefaultEndpoint is the public Overpass API instance.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// Fetcher pulls building ways, with their start_date tags, from Overpass.
type Fetcher struct {
	client  *overpass.Client
	timeout time.Duration
	log     *log.Logger
}

func NewFetcher(endpoint string, timeout time.Duration, logger *log.Logger) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = log.Default()
	}
	httpClient := &http.Client{Timeout: timeout}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &Fetcher{client: &client, timeout: timeout, log: logger}
}

// FetchBuildings queries every building way inside the box and converts
// closed ways into footprints. Ways without a start_date tag keep year 0.
func (f *Fetcher) FetchBuildings(ctx context.Context, box geo.BBox) (*geo.FeatureSet, error) {
	// Overpass bbox order is south,west,north,east.
	bbox := fmt.Sprintf("%f,%f,%f,%f", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	query := fmt.Sprintf(`
		[out:json];
		(
			way["building"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindOverpass, Err: err}
	}

	f.log.Debug("querying overpass", "bbox", bbox)
	result, err := f.client.Query(query)
	if err != nil {
		return nil, &Error{Kind: KindOverpass, Err: fmt.Errorf("query failed: %w", err)}
	}

	feats := convertWays(&result)
	f.log.Info("fetched buildings", "ways", len(result.Ways), "footprints", len(feats))

	return geo.NewFeatureSet("overpass", feats), nil
}

// convertWays turns building ways into footprints, sorted by way ID so a
// fetch is reproducible despite map iteration order.
func convertWays(result *overpass.Result) []geo.Feature {
	ids := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var feats []geo.Feature
	for _, id := range ids {
		way := result.Ways[id]
		ring := wayRing(way)
		if len(ring) < 3 {
			continue
		}
		feats = append(feats, geo.Feature{
			ID:       id,
			Name:     way.Tags["name"],
			Year:     parseYear(way.Tags["start_date"]),
			Polygons: []geo.Polygon{{Outer: ring}},
		})
	}
	return feats
}

// wayRing collects a way's node coordinates, dropping the duplicate closing
// node OSM ways carry.
func wayRing(way *overpass.Way) geo.Ring {
	var r geo.Ring
	for _, node := range way.Nodes {
		if node == nil {
			continue
		}
		r = append(r, geo.Point{Lon: node.Lon, Lat: node.Lat})
	}
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	return r
}
