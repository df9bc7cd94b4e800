package models

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func testContext() context.Context { return context.Background() }

func TestDisplayNamePriority(t *testing.T) {
	p := Property{
		Nickname:     "Riverside House",
		StreetNumber: "12",
		StreetName:   "Main Street",
		Complement:   "Apt 3",
	}
	if got := p.DisplayName(); got != "Riverside House" {
		t.Fatalf("expected nickname to win, got %q", got)
	}

	p.Nickname = ""
	if got := p.DisplayName(); got != "12 Main Street" {
		t.Fatalf("expected street address, got %q", got)
	}

	p.StreetNumber = ""
	p.StreetName = ""
	if got := p.DisplayName(); got != "Apt 3" {
		t.Fatalf("expected complement fallback, got %q", got)
	}

	p.Complement = "  "
	p.Model = gorm.Model{ID: 9}
	if got := p.DisplayName(); got != "Property #9" {
		t.Fatalf("expected canonical fallback, got %q", got)
	}
}

func TestDisplayNamePartialAddress(t *testing.T) {
	p := Property{StreetName: "Main Street"}
	if got := p.DisplayName(); got != "Main Street" {
		t.Fatalf("expected trimmed street name, got %q", got)
	}
}

func TestUnitTypeLabel(t *testing.T) {
	cases := map[string]string{
		UnitEntirePlace: "Entire place",
		UnitPrivateRoom: "Private room",
		UnitDormBed:     "Dorm bed",
		"":              "-",
		"loft":          "loft",
	}
	for unitType, want := range cases {
		p := Property{UnitType: unitType}
		if got := p.UnitTypeLabel(); got != want {
			t.Fatalf("UnitTypeLabel(%q) = %q, want %q", unitType, got, want)
		}
	}
}

func TestWithActorRoundTrip(t *testing.T) {
	ctx := WithActor(testContext(), 5)
	actor := actorFrom(ctx)
	if actor == nil || *actor != 5 {
		t.Fatalf("expected actor 5, got %v", actor)
	}
	if actorFrom(testContext()) != nil {
		t.Fatal("expected nil actor for bare context")
	}
	if actorFrom(nil) != nil {
		t.Fatal("expected nil actor for nil context")
	}
}
