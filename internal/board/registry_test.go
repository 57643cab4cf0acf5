package board

import (
	"testing"

	"storyboarder/internal/domain"
)

func TestRegistryUpdateDescription(t *testing.T) {
	r := NewRegistry([]domain.CharacterProfile{
		{Name: "Mara", Description: "tall, red coat"},
		{Name: "Joon", Description: "wiry, glasses"},
	})

	if err := r.UpdateDescription(1, "stocky, leather jacket"); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}
	got := r.Characters()
	if got[1].Description != "stocky, leather jacket" {
		t.Fatalf("description not updated: %+v", got[1])
	}
	if got[1].Name != "Joon" {
		t.Fatalf("name must be immutable, got %q", got[1].Name)
	}
}

func TestRegistryUpdateDescriptionRange(t *testing.T) {
	r := NewRegistry([]domain.CharacterProfile{{Name: "Mara"}})
	if err := r.UpdateDescription(-1, "x"); err == nil {
		t.Fatalf("expected range error for negative index")
	}
	if err := r.UpdateDescription(1, "x"); err == nil {
		t.Fatalf("expected range error for out-of-bounds index")
	}
}

func TestRegistryCharactersReturnsCopy(t *testing.T) {
	r := NewRegistry([]domain.CharacterProfile{{Name: "Mara", Description: "d"}})
	got := r.Characters()
	got[0].Description = "mutated"
	if r.Characters()[0].Description != "d" {
		t.Fatalf("Characters() must return a copy")
	}
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry([]domain.CharacterProfile{{Name: "Mara"}})
	r.Reset([]domain.CharacterProfile{{Name: "Joon"}, {Name: "Vex"}})
	if r.Len() != 2 {
		t.Fatalf("Len = %d after reset, want 2", r.Len())
	}
	if r.Characters()[0].Name != "Joon" {
		t.Fatalf("reset did not replace entries")
	}
}
