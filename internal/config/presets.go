package config

import (
	"sort"

	"github.com/san-kum/agemap/internal/geo"
)

// Presets are ready-made viewing windows: city quarters with good
// start_date coverage in OSM, plus the built-in synthetic city.
var Presets = map[string]*Config{
	"synth-city": {
		Source: "synth",
		Synth:  SynthConfig{Seed: DefaultSeed, Blocks: DefaultBlocks},
	},
	"soho": {
		Source: "overpass",
		BBox:   geo.BBox{MinLon: -0.140, MinLat: 51.510, MaxLon: -0.128, MaxLat: 51.516},
	},
	"alexanderplatz": {
		Source: "overpass",
		BBox:   geo.BBox{MinLon: 13.404, MinLat: 52.515, MaxLon: 13.422, MaxLat: 52.525},
	},
	"montmartre": {
		Source: "overpass",
		BBox:   geo.BBox{MinLon: 2.332, MinLat: 48.884, MaxLon: 2.348, MaxLat: 48.892},
	},
	"zurich-altstadt": {
		Source: "overpass",
		BBox:   geo.BBox{MinLon: 8.538, MinLat: 47.368, MaxLon: 8.548, MaxLat: 47.375},
	},
}

// GetPreset returns a copy of the named preset merged over the defaults, or
// nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Source = p.Source
	cfg.BBox = p.BBox
	if p.Path != "" {
		cfg.Path = p.Path
	}
	if p.Synth.Blocks != 0 {
		cfg.Synth = p.Synth
	}
	return cfg
}

// PresetNames lists the presets in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
