package catalog

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	if c.Len() < 8 {
		t.Errorf("catalog has %d entries, want at least 8 so the exclusion window leaves candidates", c.Len())
	}
	if len(c.Keys()) != c.Len() {
		t.Errorf("Keys() length %d != Len() %d", len(c.Keys()), c.Len())
	}
}

func TestGet(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	for _, key := range c.Keys() {
		d, ok := c.Get(key)
		if !ok {
			t.Fatalf("key %q listed but not gettable", key)
		}
		if d.Key != key {
			t.Errorf("Get(%q) returned definition keyed %q", key, d.Key)
		}
		if d.Intensity < 1 || d.Intensity > 5 {
			t.Errorf("entry %q intensity %d out of range", key, d.Intensity)
		}
		if d.Category == "" || d.Instructions == "" {
			t.Errorf("entry %q missing category or instructions", key)
		}
	}

	if _, ok := c.Get("no_such_ritual"); ok {
		t.Error("Get should miss for unknown key")
	}
}

func TestOrderStable(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	first := c.Keys()
	second := c.Keys()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("catalog order not stable at index %d: %q vs %q", i, first[i], second[i])
		}
	}

	// Mutating the returned slice must not affect the catalog.
	first[0] = "mutated"
	if c.Keys()[0] == "mutated" {
		t.Error("Keys() must return a copy")
	}
}
