package memory

import "testing"

func TestInstructionCacheRoundTrip(t *testing.T) {
	c := NewInstructionCache()

	if _, found := c.Get("p1"); found {
		t.Fatal("expected miss on empty cache")
	}

	c.Save("p1", "You are a pirate.")
	got, found := c.Get("p1")
	if !found || got != "You are a pirate." {
		t.Errorf("Get = (%q, %v), want (%q, true)", got, found, "You are a pirate.")
	}

	c.Delete("p1")
	if _, found := c.Get("p1"); found {
		t.Error("expected miss after Delete")
	}
}
