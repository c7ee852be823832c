package refcode

import (
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	g, err := NewGenerator("test-salt")
	if err != nil {
		t.Fatal(err)
	}

	code, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code, "BK-") {
		t.Errorf("code %q should start with BK-", code)
	}
	if len(code) < len("BK-")+8 {
		t.Errorf("code %q shorter than the minimum length", code)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g, err := NewGenerator("test-salt")
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	a, err := g.generateAt(at)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.generateAt(at)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same instant produced %q and %q", a, b)
	}

	c, err := g.generateAt(at.Add(time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Error("different instants should produce different codes")
	}
}
