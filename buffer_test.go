package acg

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
)

func TestBufferClear(t *testing.T) {
	buffer := NewBuffer(4, 3)
	buffer.ClearWithColor(NewColor(1, 0, 0, 1))

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if !math.IsInf(float64(buffer.Depth(x, y)), 1) {
				t.Fatalf("cell (%d, %d) depth = %v, want +Inf", x, y, buffer.Depth(x, y))
			}
			if buffer.ARGB(x, y) != 0xffff0000 {
				t.Fatalf("cell (%d, %d) color = %#x, want 0xffff0000", x, y, buffer.ARGB(x, y))
			}
		}
	}
}

func TestBufferTestAndSet(t *testing.T) {
	buffer := NewBuffer(2, 2)

	if !buffer.Test(1, 1, -0.5) {
		t.Fatal("any finite depth should pass against a cleared cell")
	}
	if !buffer.TestAndSet(1, 1, -0.5, 0xff00ff00) {
		t.Fatal("first write should succeed")
	}
	if buffer.TestAndSet(1, 1, -0.25, 0xff0000ff) {
		t.Fatal("farther write should fail")
	}
	if buffer.TestAndSet(1, 1, -0.5, 0xff0000ff) {
		t.Fatal("equal depth should fail, the test is strict")
	}
	if buffer.ARGB(1, 1) != 0xff00ff00 {
		t.Fatalf("color = %#x, want the first write's", buffer.ARGB(1, 1))
	}
	if !buffer.TestAndSet(1, 1, -1, 0xff0000ff) {
		t.Fatal("nearer write should succeed")
	}
	if buffer.Depth(1, 1) != -1 || buffer.ARGB(1, 1) != 0xff0000ff {
		t.Fatalf("cell = (%v, %#x), want (-1, 0xff0000ff)", buffer.Depth(1, 1), buffer.ARGB(1, 1))
	}
	if d := buffer.Distance(1, 1); d != 1 {
		t.Fatalf("distance = %v, want 1", d)
	}
}

func TestBufferConcurrentWritersNearestWins(t *testing.T) {
	const writers = 16
	const writesPerWriter = 500

	buffer := NewBuffer(1, 1)
	rng := rand.New(rand.NewSource(1))

	depths := make([][]float32, writers)
	want := float32(math.Inf(1))
	for w := range depths {
		depths[w] = make([]float32, writesPerWriter)
		for i := range depths[w] {
			d := -rng.Float32() * 100
			depths[w][i] = d
			want = min(want, d)
		}
	}

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for w := 0; w < writers; w++ {
		done.Add(1)
		go func(w int) {
			defer done.Done()
			start.Wait()
			for _, d := range depths[w] {
				// The color encodes the writer so that a torn depth/color pair would be visible.
				buffer.TestAndSet(0, 0, d, uint32(w)<<8|0xff000000)
			}
		}(w)
	}
	start.Done()
	done.Wait()

	if got := buffer.Depth(0, 0); got != want {
		t.Fatalf("depth = %v, want minimum %v", got, want)
	}

	winner := -1
	for w := range depths {
		for _, d := range depths[w] {
			if d == want {
				winner = w
			}
		}
	}
	if got := buffer.ARGB(0, 0); got != uint32(winner)<<8|0xff000000 {
		t.Fatalf("color = %#x does not belong to the writer of the nearest depth (%d)", got, winner)
	}
}

func TestBufferTestAndBlend(t *testing.T) {
	buffer := NewBuffer(1, 1)
	buffer.TestAndSet(0, 0, -0.1, NewColor(0, 0, 1, 1).ToARGB())

	if !buffer.TestAndBlend(0, 0, -0.5, NewColor(1, 0, 0, 0.5)) {
		t.Fatal("nearer blend should succeed")
	}

	// Color decodes the stored sRGB byte back to linear, within 8-bit precision.
	got := buffer.Color(0, 0)
	if !approx(got.R, 0.5, 0.01) || !approx(got.B, 0.5, 0.01) || got.G != 0 || got.A != 1 {
		t.Fatalf("blended color = %+v, want 50/50 red over blue", got)
	}

	if buffer.TestAndBlend(0, 0, -0.2, NewColor(0, 1, 0, 1)) {
		t.Fatal("farther blend should fail")
	}
}

func TestBufferStoresSRGB(t *testing.T) {
	buffer := NewBuffer(1, 1)
	buffer.ClearWithColor(NewColor(0.5, 0, 1, 1))

	// Linear 0.5 encodes to sRGB 188.
	if got := buffer.ARGB(0, 0); got != 0xffbc00ff {
		t.Errorf("cleared to %#x, want 0xffbc00ff", got)
	}
	if got := buffer.Color(0, 0); !approx(got.R, 0.5, 0.01) || got.B != 1 {
		t.Errorf("Color() = %+v, want the linear clear color back", got)
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	buffer := NewBuffer(2, 2)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("access at %v recovered %v, want ErrOutOfBounds", c, r)
				}
			}()
			buffer.TestAndSet(c[0], c[1], 0, 0)
		}()
	}
}

func TestBufferResizeKeepsClearColor(t *testing.T) {
	buffer := NewBuffer(2, 2)
	buffer.ClearWithColor(NewColor(0, 1, 0, 1))
	buffer.Resize(3, 5)

	if w, h := buffer.Size(); w != 3 || h != 5 {
		t.Fatalf("size = %dx%d, want 3x5", w, h)
	}
	if got := buffer.ARGB(2, 4); got != 0xff00ff00 {
		t.Fatalf("color = %#x, want clear color 0xff00ff00", got)
	}
	if len(buffer.Pixels(nil)) != 15 {
		t.Fatal("Pixels should return one value per cell")
	}
}

func approx(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func BenchmarkBufferTestAndSet(b *testing.B) {
	buffer := NewBuffer(256, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, y := i%256, (i/256)%256
		buffer.TestAndSet(x, y, -float32(i%1000), 0xffffffff)
	}
}
