package config

import "sort"

func preset(alg string, size int, pattern string, speed float64) *Config {
	cfg := DefaultConfig()
	cfg.Algorithm = alg
	cfg.Input.Size = size
	cfg.Input.Pattern = pattern
	cfg.Playback.Speed = speed
	return cfg
}

// Presets maps algorithm to named starting configurations.
var Presets = map[string]map[string]*Config{
	"bubble": {
		"small":   preset("bubble", 10, "random", 10),
		"worst":   preset("bubble", 25, "reversed", 80),
		"nearly":  preset("bubble", 30, "nearly_sorted", 50),
		"plateau": preset("bubble", 30, "few_unique", 50),
	},
	"quick": {
		"small":  preset("quick", 10, "random", 10),
		"worst":  preset("quick", 30, "reversed", 80),
		"large":  preset("quick", 100, "random", 200),
		"nearly": preset("quick", 40, "nearly_sorted", 60),
	},
	"merge": {
		"small": preset("merge", 8, "random", 10),
		"large": preset("merge", 100, "random", 200),
		"worst": preset("merge", 32, "reversed", 60),
	},
	"insertion": {
		"small":  preset("insertion", 10, "random", 10),
		"best":   preset("insertion", 40, "nearly_sorted", 50),
		"worst":  preset("insertion", 25, "reversed", 80),
		"repeat": preset("insertion", 30, "few_unique", 50),
	},
	"selection": {
		"small": preset("selection", 10, "random", 10),
		"worst": preset("selection", 30, "reversed", 80),
	},
	"heap": {
		"small":  preset("heap", 10, "random", 10),
		"large":  preset("heap", 100, "random", 200),
		"sorted": preset("heap", 30, "nearly_sorted", 60),
	},
}

// GetPreset returns a copy of the named preset so callers may modify it.
func GetPreset(algorithm, name string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names for algorithm in alphabetical order.
func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
