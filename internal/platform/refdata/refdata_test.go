package refdata

import "testing"

func TestLoad(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.AirportCodes().Has("BDL") {
		t.Fatalf("expected BDL in airport set")
	}
	if p.AirportCodes().Has("bdl") {
		t.Fatalf("airport codes are case-sensitive")
	}
	if !p.Colleges().Has("Amherst College") {
		t.Fatalf("expected Amherst College in college set")
	}
	if p.Colleges().Has("") {
		t.Fatalf("empty string must not match")
	}
}

func TestParseLines(t *testing.T) {
	got, err := parseLines("# comment\n\nBDL\n  JFK  \n")
	if err != nil {
		t.Fatalf("parseLines: %v", err)
	}
	if len(got) != 2 || got[0] != "BDL" || got[1] != "JFK" {
		t.Fatalf("got %v", got)
	}

	if _, err := parseLines("# only comments\n\n"); err == nil {
		t.Fatalf("expected error for empty data")
	}
}
