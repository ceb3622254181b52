package prescription

import (
	"math/rand"
	"testing"
)

func TestSelectRitualSkipsExcluded(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	excluded := map[string]struct{}{"a": {}, "b": {}, "c": {}}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		if got := selectRitual(keys, excluded, rng); got != "d" {
			t.Fatalf("selectRitual picked excluded key %q", got)
		}
	}
}

func TestSelectRitualFallsBackWhenPoolEmpty(t *testing.T) {
	keys := []string{"a", "b"}
	excluded := map[string]struct{}{"a": {}, "b": {}}
	rng := rand.New(rand.NewSource(1))

	got := selectRitual(keys, excluded, rng)
	if got != "a" && got != "b" {
		t.Fatalf("fallback pick %q not in catalog", got)
	}
}

func TestSelectRitualCoversPool(t *testing.T) {
	keys := []string{"a", "b", "c"}
	rng := rand.New(rand.NewSource(42))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[selectRitual(keys, nil, rng)] = true
	}
	for _, k := range keys {
		if !seen[k] {
			t.Errorf("key %q never selected over 200 draws", k)
		}
	}
}

func TestSelectRitualEmptyKeys(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := selectRitual(nil, nil, rng); got != "" {
		t.Errorf("expected empty pick for empty catalog, got %q", got)
	}
}
