package uuid

import (
	"strings"
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNewIsVersion7(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("New returned an invalid uuid %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestCanonical(t *testing.T) {
	id := New()

	if got := Canonical(strings.ToUpper(id)); got != id {
		t.Errorf("Canonical(upper) = %s, want %s", got, id)
	}
	if got := Canonical("not-a-uuid"); got != "not-a-uuid" {
		t.Errorf("Canonical should leave invalid input untouched, got %s", got)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated id to be valid")
	}
	if IsValid("12345") {
		t.Error("expected numeric id to be invalid")
	}
}
