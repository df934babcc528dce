package thread

import (
	"sync"
	"testing"
)

func Test_PackToken_Layout(t *testing.T) {
	tok := PackToken(0x1234<<2, 0x5678<<2)
	if tok>>32 != 0x1234 {
		t.Fatalf("high half = %#x, want %#x", tok>>32, 0x1234)
	}
	if tok&0xFFFFFFFF != 0x5678 {
		t.Fatalf("low half = %#x, want %#x", tok&0xFFFFFFFF, 0x5678)
	}
}

func Test_PackToken_DropsLowBits(t *testing.T) {
	// Host ids are four-aligned; the low two bits must not affect the token.
	base := PackToken(0x100, 0x200)
	for i := uint64(1); i < 4; i++ {
		if got := PackToken(0x100|i, 0x200|i); got != base {
			t.Fatalf("PackToken(%#x, %#x) = %#x, want %#x", 0x100|i, 0x200|i, got, base)
		}
	}
}

func Test_PackToken_DistinguishesOccupants(t *testing.T) {
	// Same thread id under different owning processes must yield different
	// tokens - this is the reuse-detection property.
	a := PackToken(0x1000, 0x44)
	b := PackToken(0x2000, 0x44)
	if a == b {
		t.Fatalf("tokens collide across processes: %#x", a)
	}
}

func Test_GoroutineProvider_StableWithinGoroutine(t *testing.T) {
	p := GoroutineProvider{}
	first := p.Current()
	for range 100 {
		if got := p.Current(); !got.Same(first) {
			t.Fatalf("identity drifted: %+v then %+v", first, got)
		}
	}
}

func Test_GoroutineProvider_DistinctAcrossGoroutines(t *testing.T) {
	p := GoroutineProvider{}

	const n = 16
	ids := make([]Identity, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = p.Current()
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		if seen[id.ID] {
			t.Fatalf("duplicate goroutine id %d", id.ID)
		}
		seen[id.ID] = true
	}
}
