package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/moodshot/moodshot/internal/model"
)

func TestApplyReaction_Appends(t *testing.T) {
	p := model.Post{PostID: "p1"}
	p, err := ApplyReaction(p, "heart")
	if err != nil {
		t.Fatalf("ApplyReaction: %v", err)
	}
	if len(p.Reactions) != 1 || p.Reactions[0] != "heart" {
		t.Fatalf("reactions: %v", p.Reactions)
	}
}

func TestApplyReaction_RingEvictsOldest(t *testing.T) {
	p := model.Post{PostID: "p1"}
	var err error
	p, err = ApplyReaction(p, "hug")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for i := 0; i < 10; i++ {
		p, err = ApplyReaction(p, "heart")
		if err != nil {
			t.Fatalf("react %d: %v", i, err)
		}
	}
	if len(p.Reactions) != MaxReactions {
		t.Fatalf("ring length: got %d want %d", len(p.Reactions), MaxReactions)
	}
	for i, r := range p.Reactions {
		if r == "hug" {
			t.Fatalf("oldest reaction survived at index %d: %v", i, p.Reactions)
		}
	}
}

func TestApplyReaction_DuplicatesRetained(t *testing.T) {
	p := model.Post{PostID: "p1"}
	var err error
	for i := 0; i < 3; i++ {
		p, err = ApplyReaction(p, "sprout")
		if err != nil {
			t.Fatalf("react %d: %v", i, err)
		}
	}
	if len(p.Reactions) != 3 {
		t.Fatalf("duplicates should all be kept: %v", p.Reactions)
	}
}

func TestApplyReaction_UnknownSymbolRejected(t *testing.T) {
	p := model.Post{PostID: "p1", Reactions: []string{"heart"}}
	got, err := ApplyReaction(p, "confetti")
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fmt.Sprint(got.Reactions) != fmt.Sprint(p.Reactions) {
		t.Fatalf("rejected reaction mutated post: %v", got.Reactions)
	}
}

func TestApplyReaction_InputNotMutated(t *testing.T) {
	p := model.Post{PostID: "p1", Reactions: []string{"heart", "hug"}}
	if _, err := ApplyReaction(p, "bolt"); err != nil {
		t.Fatalf("ApplyReaction: %v", err)
	}
	if len(p.Reactions) != 2 {
		t.Fatalf("input slice mutated: %v", p.Reactions)
	}
}
