package moods

import "testing"

func TestLookup(t *testing.T) {
	m, ok := Lookup("calm")
	if !ok || m.Label != "Calm" {
		t.Fatalf("Lookup(calm): got=%+v ok=%v", m, ok)
	}
	if _, ok := Lookup("euphoric"); ok {
		t.Fatalf("Lookup should miss for unknown id")
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Catalog {
		if seen[m.ID] {
			t.Fatalf("duplicate mood id %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestIsKnownReaction(t *testing.T) {
	if !IsKnownReaction("heart") {
		t.Fatalf("heart id should be known")
	}
	if !IsKnownReaction("⚡") {
		t.Fatalf("bolt emoji should be known")
	}
	if IsKnownReaction("thumbsup") {
		t.Fatalf("unknown symbol accepted")
	}
}
