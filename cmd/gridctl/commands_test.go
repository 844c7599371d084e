package main

import (
	"bytes"
	"strings"
	"testing"
)

const testSeeds = "../../data/seeds/grids.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--seeds", testSeeds}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestZoneCommand(t *testing.T) {
	out, err := run(t, "zone", "60", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "32V" {
		t.Fatalf("out = %q, want 32V", out)
	}
}

func TestForwardCommand(t *testing.T) {
	out, err := run(t, "forward", "--", "-33.8688", "151.2093")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "56H 334368.634 6250948.345" {
		t.Fatalf("out = %q", out)
	}
}

func TestForwardCommandZoneOverride(t *testing.T) {
	out, err := run(t, "forward", "--zone", "31", "60", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "31V ") {
		t.Fatalf("out = %q, want zone 31V", out)
	}
}

func TestInverseCommand(t *testing.T) {
	out, err := run(t, "inverse", "--zone", "20S", "325165.7693", "3569608.462")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "32.24955209 -64.85587614" {
		t.Fatalf("out = %q", out)
	}
}

func TestInverseCommandRequiresZone(t *testing.T) {
	if _, err := run(t, "inverse", "325165.7693", "3569608.462"); err == nil {
		t.Fatal("expected an error without --zone")
	}
}

func TestGridCommand(t *testing.T) {
	out, err := run(t, "grid", "540046", "127672")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "32.24950270 -64.85562799" {
		t.Fatalf("out = %q", out)
	}
}

func TestGridCommandReverse(t *testing.T) {
	out, err := run(t, "grid", "--reverse", "--", "32", "-64.75")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "550000.000 100000.000" {
		t.Fatalf("out = %q", out)
	}
}

func TestGridCommandUnknownGrid(t *testing.T) {
	if _, err := run(t, "grid", "--grid", "atlantis", "1", "2"); err == nil {
		t.Fatal("expected an error for an unknown grid")
	}
}

func TestEllipsoidsCommand(t *testing.T) {
	out, err := run(t, "ellipsoids")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"NAME", "WGS-84", "Airy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRejectsNonNumericArgs(t *testing.T) {
	_, err := run(t, "zone", "north", "5")
	if err == nil || !strings.Contains(err.Error(), "LAT") {
		t.Fatalf("err = %v, want a LAT parse error", err)
	}
}
