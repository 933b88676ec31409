package geom

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func TestIntersectsRejectsFarApartBoxes(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 1000, Y: 1000, W: 10, H: 10}
	if hit, _ := a.Intersects(b); hit {
		t.Fatal("expected no hit for boxes far apart")
	}
}

func TestIntersectsSymmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randomBox(rnd)
		b := randomBox(rnd)
		hitAB, _ := a.Intersects(b)
		hitBA, _ := b.Intersects(a)
		if hitAB != hitBA {
			t.Fatalf("asymmetric hit result for %+v vs %+v", a, b)
		}
	}
}

func TestMTVSeparates(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		a := randomBox(rnd)
		b := randomBox(rnd)
		hit, mtv := a.Intersects(b)
		if !hit {
			continue
		}
		moved := a
		moved.X += mtv.X
		moved.Y += mtv.Y
		stillHit, residual := moved.Intersects(b)
		if stillHit && residual.Magnitude() > 0.01 {
			t.Fatalf("mtv %+v did not separate %+v from %+v: residual %+v", mtv, a, b, residual)
		}
	}
}

func TestContainsMatchesRotatedAxisTest(t *testing.T) {
	b := Box{X: 100, Y: 50, W: 40, H: 20, A: math32.Pi / 4}
	if !b.Contains(Vector2{100, 50}) {
		t.Fatal("center must be contained")
	}
	if b.Contains(Vector2{1000, 1000}) {
		t.Fatal("far point must not be contained")
	}
}

func randomBox(rnd *rand.Rand) Box {
	return Box{
		X: rnd.Float32()*200 - 100,
		Y: rnd.Float32()*200 - 100,
		W: rnd.Float32()*50 + 5,
		H: rnd.Float32()*50 + 5,
		A: rnd.Float32() * 2 * math32.Pi,
	}
}
