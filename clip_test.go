package acg

import (
	"testing"
)

func clipVertex(x, y, z, w, u, v float32) UnlitVertex {
	vert := UnlitVertex{Pos: Vector4{x, y, z, w}}
	vert.SetUV(Vector2{u, v})
	return vert
}

func signedArea(tri [3]UnlitVertex) float32 {
	a, b, c := tri[0].Pos, tri[1].Pos, tri[2].Pos
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

func TestClipNear(t *testing.T) {

	tests := []struct {
		name   string
		tri    [3]UnlitVertex
		pieces int
	}{
		{
			"all in front",
			[3]UnlitVertex{clipVertex(0, 0, 1, 2, 0, 0), clipVertex(1, 0, 1, 2, 1, 0), clipVertex(0, 1, 1, 2, 0, 1)},
			1,
		},
		{
			"one behind",
			[3]UnlitVertex{clipVertex(0, 0, -1, 1, 0, 0), clipVertex(1, 0, 1, 2, 1, 0), clipVertex(0, 1, 1, 2, 0, 1)},
			2,
		},
		{
			"one behind, rotated",
			[3]UnlitVertex{clipVertex(1, 0, 1, 2, 1, 0), clipVertex(0, 1, 1, 2, 0, 1), clipVertex(0, 0, -1, 1, 0, 0)},
			2,
		},
		{
			"two behind",
			[3]UnlitVertex{clipVertex(0, 0, -1, 1, 0, 0), clipVertex(1, 0, -2, 1, 1, 0), clipVertex(0, 1, 3, 4, 0, 1)},
			1,
		},
		{
			"all behind",
			[3]UnlitVertex{clipVertex(0, 0, -1, 1, 0, 0), clipVertex(1, 0, -1, 1, 1, 0), clipVertex(0, 1, -1, 1, 0, 1)},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			var out [2][3]UnlitVertex
			n := clipNear(tt.tri, &out)
			if n != tt.pieces {
				t.Fatalf("clipNear() = %d triangles, want %d", n, tt.pieces)
			}

			original := signedArea(tt.tri)
			for i := 0; i < n; i++ {
				for _, v := range out[i] {
					if v.Pos.Z < 0 {
						t.Errorf("piece %d has a vertex behind the near plane: %v", i, v.Pos)
					}
				}
				if area := signedArea(out[i]); area != 0 && (area > 0) != (original > 0) {
					t.Errorf("piece %d winding flipped: area %v, original %v", i, area, original)
				}
			}

			if tt.pieces == 1 && tt.tri[0].Pos.Z >= 0 && tt.tri[1].Pos.Z >= 0 && tt.tri[2].Pos.Z >= 0 {
				if out[0] != tt.tri {
					t.Errorf("a triangle in front should pass through unchanged")
				}
			}
		})
	}

}

func TestClipNearKeepsAreaOfVisiblePart(t *testing.T) {
	// A triangle with one vertex behind: the two pieces together must cover exactly the part with z >= 0,
	// which is the whole triangle minus the corner cut off at the plane.
	tri := [3]UnlitVertex{clipVertex(0, 0, -1, 1, 0, 0), clipVertex(4, 0, 1, 2, 1, 0), clipVertex(0, 4, 1, 2, 0, 1)}

	var out [2][3]UnlitVertex
	n := clipNear(tri, &out)
	if n != 2 {
		t.Fatalf("clipNear() = %d triangles, want 2", n)
	}

	// The plane cuts both edges from the vertex behind at their midpoints (z goes -1 to 1), so the cut corner
	// has a quarter of the area.
	want := signedArea(tri) * 3 / 4
	got := signedArea(out[0]) + signedArea(out[1])
	if !approx(got, want, 1e-5) {
		t.Errorf("clipped area = %v, want %v", got, want)
	}
}

func TestClipNearInterpolatesVaryings(t *testing.T) {
	tri := [3]UnlitVertex{clipVertex(0, 0, -1, 1, 0, 0), clipVertex(1, 0, -1, 1, 0, 0), clipVertex(0, 0, 3, 4, 1, 1)}

	var out [2][3]UnlitVertex
	if n := clipNear(tri, &out); n != 1 {
		t.Fatalf("clipNear() = %d triangles, want 1", n)
	}

	// z runs from -1 to 3 towards the vertex in front, so the new vertices sit a quarter of the way there.
	for _, v := range out[0][1:] {
		if v.Pos.Z != 0 {
			t.Errorf("new vertex z = %v, want exactly 0", v.Pos.Z)
		}
		if uv := v.UV(); !approx(uv.X, 0.25, 1e-6) || !approx(uv.Y, 0.25, 1e-6) {
			t.Errorf("new vertex uv = %v, want {0.25, 0.25}", uv)
		}
		if !approx(v.Pos.W, 1.75, 1e-6) {
			t.Errorf("new vertex w = %v, want 1.75", v.Pos.W)
		}
	}
}

func BenchmarkClipNear(b *testing.B) {
	tri := [3]PBRVertex{
		{Pos: Vector4{0, 0, -1, 1}},
		{Pos: Vector4{1, 0, 1, 2}},
		{Pos: Vector4{0, 1, 1, 2}},
	}
	var out [2][3]PBRVertex
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		clipNear(tri, &out)
	}
}
