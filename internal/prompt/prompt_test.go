package prompt

import (
	"strings"
	"testing"

	"storyboarder/internal/compositor"
	"storyboarder/internal/domain"
)

func TestComposeImagePromptUsesCachedPrompt(t *testing.T) {
	p := domain.Panel{
		Number:            1,
		ImagePrompt:       "Wide shot: Mara crosses the rain-slick street",
		VisualDescription: "something else entirely",
	}
	got := ComposeImagePrompt(p, "Film noir", nil)
	if !strings.Contains(got, "Mara crosses the rain-slick street") {
		t.Fatalf("cached prompt not used: %q", got)
	}
	if strings.Contains(got, "something else entirely") {
		t.Fatalf("reconstruction used despite cached prompt: %q", got)
	}
	if !strings.HasPrefix(got, "Film noir style. ") {
		t.Fatalf("style header missing: %q", got)
	}
}

func TestComposeImagePromptReconstructsWithoutCache(t *testing.T) {
	p := domain.Panel{
		Number:            2,
		ShotType:          "Close-up",
		VisualDescription: "Mara stares at the photograph",
	}
	chars := []domain.CharacterProfile{{Name: "Mara", Description: "tall, red coat"}}
	got := ComposeImagePrompt(p, "", chars)
	if !strings.Contains(got, "Close-up: Mara stares at the photograph") {
		t.Fatalf("reconstruction missing: %q", got)
	}
	if !strings.HasPrefix(got, DefaultStyle+" style. ") {
		t.Fatalf("default style not applied: %q", got)
	}
}

// An edited description must reach panels whose prompts were cached before
// the edit.
func TestCharacterEditPropagatesToCachedPrompt(t *testing.T) {
	p := domain.Panel{ImagePrompt: "Mara leans against the doorframe"}
	before := ComposeImagePrompt(p, "", []domain.CharacterProfile{{Name: "Mara", Description: "tall, red coat"}})
	after := ComposeImagePrompt(p, "", []domain.CharacterProfile{{Name: "Mara", Description: "shaved head, bomber jacket"}})
	if !strings.Contains(before, "(Mara is tall, red coat)") {
		t.Fatalf("reinforcement missing before edit: %q", before)
	}
	if !strings.Contains(after, "(Mara is shaved head, bomber jacket)") {
		t.Fatalf("edit did not propagate: %q", after)
	}
	if strings.Contains(after, "red coat") {
		t.Fatalf("stale description survived the edit: %q", after)
	}
}

func TestComposeImagePromptSkipsUnmentionedAndBlankCharacters(t *testing.T) {
	p := domain.Panel{ImagePrompt: "An empty hallway"}
	chars := []domain.CharacterProfile{
		{Name: "Mara", Description: "tall"},
		{Name: "Hallway"}, // mentioned but no description
	}
	got := ComposeImagePrompt(p, "", chars)
	if strings.Contains(got, "(Mara") {
		t.Fatalf("unmentioned character injected: %q", got)
	}
	if strings.Contains(got, "(Hallway") {
		t.Fatalf("blank description injected: %q", got)
	}
}

func TestComposeImagePromptEndsWithQualitySuffix(t *testing.T) {
	got := ComposeImagePrompt(domain.Panel{ImagePrompt: "x"}, "", nil)
	if !strings.HasSuffix(got, qualitySuffix) {
		t.Fatalf("quality suffix missing: %q", got)
	}
}

func TestComposeImagePromptIsPure(t *testing.T) {
	p := domain.Panel{ImagePrompt: "Mara at the window"}
	chars := []domain.CharacterProfile{{Name: "Mara", Description: "tall"}}
	a := ComposeImagePrompt(p, "Anime", chars)
	b := ComposeImagePrompt(p, "Anime", chars)
	if a != b {
		t.Fatalf("same inputs produced different prompts:\n%q\n%q", a, b)
	}
}

func TestComposeOutpaintPromptNamesRegion(t *testing.T) {
	cases := map[compositor.Direction]string{
		compositor.Left:    "left",
		compositor.Right:   "right",
		compositor.Up:      "top",
		compositor.Down:    "bottom",
		compositor.ZoomOut: "all sides",
	}
	for dir, want := range cases {
		got := ComposeOutpaintPrompt(dir)
		if !strings.Contains(got, want) {
			t.Fatalf("prompt for %s misses %q: %q", dir, want, got)
		}
		if !strings.Contains(got, "Preserve all existing image content") {
			t.Fatalf("preservation clause missing for %s", dir)
		}
	}
}

func TestComposeAnimaticPromptStitchesTransitions(t *testing.T) {
	panels := domain.Panels{
		{VisualDescription: "Mara at the door", Transition: domain.TransitionFade},
		{VisualDescription: "The hallway beyond", Transition: domain.TransitionCut},
		{VisualDescription: "A window at the end", Transition: domain.TransitionWipe},
	}
	got := ComposeAnimaticPrompt(panels)
	if !strings.Contains(got, "Shot 1: Mara at the door.") {
		t.Fatalf("shot summary missing: %q", got)
	}
	if !strings.Contains(got, "Transition to the next shot with a fade.") {
		t.Fatalf("fade transition missing: %q", got)
	}
	if !strings.Contains(got, "Transition to the next shot with a cut.") {
		t.Fatalf("cut transition missing: %q", got)
	}
	// The last panel's transition leads nowhere.
	if strings.Contains(got, "wipe") {
		t.Fatalf("trailing transition should be dropped: %q", got)
	}
}

func TestComposeAnimaticPromptSkipsNoneTransition(t *testing.T) {
	panels := domain.Panels{
		{VisualDescription: "a", Transition: domain.TransitionNone},
		{VisualDescription: "b"},
	}
	got := ComposeAnimaticPrompt(panels)
	if strings.Contains(got, "Transition to the next shot") {
		t.Fatalf("none transition should not emit a directive: %q", got)
	}
}

func TestComposeMotionPromptMentionsScene(t *testing.T) {
	got := ComposeMotionPrompt(domain.Panel{VisualDescription: "Mara runs"})
	if !strings.Contains(got, "Mara runs.") {
		t.Fatalf("scene missing: %q", got)
	}
}
