package acg

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Settings tunes a Renderer. The zero value is not useful; start from DefaultSettings() or LoadSettings().
type Settings struct {
	// Workers is the number of goroutines rasterizing in parallel; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Primitives with fewer vertices than this are vertex-shaded on the calling goroutine.
	VertexParallelThreshold int `yaml:"vertex_parallel_threshold"`
	// Opaque primitives with fewer triangles than this are rasterized on the calling goroutine.
	TriangleParallelThreshold int `yaml:"triangle_parallel_threshold"`

	BackfaceCulling bool `yaml:"backface_culling"`
	FrustumCulling  bool `yaml:"frustum_culling"`

	// ClearColor is the color every pixel gets when the buffer is cleared at the start of a frame.
	ClearColor Color `yaml:"clear_color"`

	ShadowMapSize int     `yaml:"shadow_map_size"`
	ShadowBias    float32 `yaml:"shadow_bias"`
}

// DefaultSettings returns the settings a Renderer uses when none are given.
func DefaultSettings() Settings {
	return Settings{
		Workers:                   runtime.GOMAXPROCS(0),
		VertexParallelThreshold:   1024,
		TriangleParallelThreshold: 64,
		BackfaceCulling:           true,
		FrustumCulling:            true,
		ClearColor:                NewColor(0, 0, 0, 1),
		ShadowMapSize:             1024,
		ShadowBias:                0.05,
	}
}

// ParseSettings reads YAML on top of DefaultSettings(), so a file only needs the keys it changes.
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	settings.sanitize()
	return settings, nil
}

// LoadSettings reads a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	settings, err := ParseSettings(data)
	if err != nil {
		return settings, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Debug("loaded render settings", "path", path, "workers", settings.Workers)
	return settings, nil
}

// sanitize replaces values that can't work with their defaults.
func (s *Settings) sanitize() {
	def := DefaultSettings()
	if s.Workers <= 0 {
		s.Workers = def.Workers
	}
	if s.VertexParallelThreshold < 0 {
		Logger().Warn("negative vertex_parallel_threshold, using default", "value", s.VertexParallelThreshold)
		s.VertexParallelThreshold = def.VertexParallelThreshold
	}
	if s.TriangleParallelThreshold < 0 {
		Logger().Warn("negative triangle_parallel_threshold, using default", "value", s.TriangleParallelThreshold)
		s.TriangleParallelThreshold = def.TriangleParallelThreshold
	}
	if s.ShadowMapSize <= 0 {
		Logger().Warn("invalid shadow_map_size, using default", "value", s.ShadowMapSize)
		s.ShadowMapSize = def.ShadowMapSize
	}
	if s.ShadowBias < 0 {
		s.ShadowBias = def.ShadowBias
	}
}
