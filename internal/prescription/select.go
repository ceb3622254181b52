package prescription

import "math/rand"

// selectRitual picks a ritual key uniformly at random from keys, skipping
// anything in excluded. When the exclusions consume the whole pool the
// exclusion is abandoned and the pick falls back to all of keys: a fresh
// ritual is preferred but never required.
func selectRitual(keys []string, excluded map[string]struct{}, rng *rand.Rand) string {
	if len(keys) == 0 {
		return ""
	}

	pool := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, skip := excluded[k]; !skip {
			pool = append(pool, k)
		}
	}
	if len(pool) == 0 {
		pool = keys
	}
	return pool[rng.Intn(len(pool))]
}
