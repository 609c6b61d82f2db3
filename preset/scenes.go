package preset

import (
	"fmt"
	"sort"
	"strings"
)

// Builtin scenes ship as TOML source: the same format users write,
// loaded through the same parse-and-validate path.
const (
	sceneNebula = `name = "nebula"
capacity = 2048
drift_scale = 0.0009
palette = "vivid"
backdrop = true

[canvas]
width = 1600
height = 900
`

	sceneTidepool = `name = "tidepool"
capacity = 1024
trail = 64
drift_scale = 0.00022
phase_speed = 0.0011
palette = "pastel"
`

	sceneFilmstrip = `name = "filmstrip"
capacity = 512
palette = "hash"

[canvas]
width = 640
height = 360

[[keyframe]]
tick = 30
label = "settle"

[[keyframe]]
tick = 120
label = "spread"

[[keyframe]]
tick = 240
label = "diffuse"
`
)

var builtins = map[string]string{
	"nebula":    sceneNebula,
	"tidepool":  sceneTidepool,
	"filmstrip": sceneFilmstrip,
}

// Builtin returns a compiled-in scene by name. The genesis scene is
// Default, not a builtin.
func Builtin(name string) (*Preset, error) {
	src, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("preset: no builtin scene %q (have %s)",
			name, strings.Join(BuiltinNames(), ", "))
	}
	p, err := Parse([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("preset: builtin %s: %w", name, err)
	}
	return p, nil
}

// BuiltinNames lists the compiled-in scenes in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
