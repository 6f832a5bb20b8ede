package acg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSettings(t *testing.T) {

	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, s Settings)
	}{
		{
			"empty keeps defaults",
			"",
			func(t *testing.T, s Settings) {
				def := DefaultSettings()
				if s != def {
					t.Errorf("settings = %+v, want the defaults %+v", s, def)
				}
			},
		},
		{
			"overrides",
			"workers: 3\nbackface_culling: false\nclear_color: {r: 0.5, g: 0.25, b: 1, a: 1}\n",
			func(t *testing.T, s Settings) {
				if s.Workers != 3 || s.BackfaceCulling {
					t.Errorf("settings = %+v, want 3 workers and no back-face culling", s)
				}
				if s.ClearColor != NewColor(0.5, 0.25, 1, 1) {
					t.Errorf("clear color = %v", s.ClearColor)
				}
				if !s.FrustumCulling {
					t.Error("keys not in the file should keep their default")
				}
			},
		},
		{
			"invalid values fall back",
			"workers: -2\nshadow_map_size: 0\ntriangle_parallel_threshold: -1\n",
			func(t *testing.T, s Settings) {
				def := DefaultSettings()
				if s.Workers != def.Workers || s.ShadowMapSize != def.ShadowMapSize || s.TriangleParallelThreshold != def.TriangleParallelThreshold {
					t.Errorf("settings = %+v, invalid values should be replaced by defaults", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSettings([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, s)
		})
	}

	if _, err := ParseSettings([]byte("workers: [1, 2")); err == nil {
		t.Error("malformed YAML should fail")
	}

}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("shadow_bias: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.ShadowBias != 0.2 {
		t.Errorf("ShadowBias = %v, want 0.2", s.ShadowBias)
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadSettings(missing) = %v, want a not-exist error", err)
	}
}
