package board

import (
	"reflect"
	"sync"
	"testing"

	"storyboarder/internal/domain"
)

func threePanels() domain.Panels {
	return domain.Panels{
		{ID: "a", Number: 1, VisualDescription: "alley"},
		{ID: "b", Number: 2, VisualDescription: "rooftop"},
		{ID: "c", Number: 3, VisualDescription: "chase"},
	}
}

func TestSetPushesUndoAndUndoRestores(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())

	before := s.Panels()
	next := threePanels()
	next[1].VisualDescription = "rooftop at night"
	s.Set(next)

	if !s.CanUndo() {
		t.Fatalf("expected undo available after Set")
	}
	if !s.Undo() {
		t.Fatalf("Undo returned false")
	}
	if got := s.Panels(); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo did not restore previous state:\n got %+v\nwant %+v", got, before)
	}
}

func TestRedoReappliesUndoneState(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())

	next := threePanels()
	next[0].ImageRef = "data:image/png;base64,AA=="
	s.Set(next)

	after := s.Panels()
	s.Undo()
	if !s.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	if !s.Redo() {
		t.Fatalf("Redo returned false")
	}
	if got := s.Panels(); !reflect.DeepEqual(got, after) {
		t.Fatalf("redo mismatch:\n got %+v\nwant %+v", got, after)
	}
}

func TestNewEditClearsRedoStack(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())

	s.UpdatePanel("a", func(p *domain.Panel) { p.VisualDescription = "v2" })
	s.Undo()
	s.UpdatePanel("a", func(p *domain.Panel) { p.VisualDescription = "v3" })

	if s.CanRedo() {
		t.Fatalf("redo stack must be cleared by a new edit")
	}
}

func TestUndoRedoNoOpOnEmptyStacks(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())
	if s.Undo() {
		t.Fatalf("undo on empty history must be a no-op")
	}
	if s.Redo() {
		t.Fatalf("redo on empty future must be a no-op")
	}
	if s.Len() != 3 {
		t.Fatalf("no-op undo/redo changed state")
	}
}

func TestLoadDropsHistory(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())
	s.UpdatePanel("a", func(p *domain.Panel) { p.VisualDescription = "edited" })

	s.Load(domain.Panels{{ID: "x", Number: 1}})
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("Load must drop history")
	}
	if s.Len() != 1 {
		t.Fatalf("Load did not replace collection")
	}
}

func TestResetHistoryKeepsCurrent(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())
	s.UpdatePanel("b", func(p *domain.Panel) { p.Dialogue = "run" })

	cur := s.Panels()
	s.ResetHistory()
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("ResetHistory left stacks populated")
	}
	if got := s.Panels(); !reflect.DeepEqual(got, cur) {
		t.Fatalf("ResetHistory changed current state")
	}
}

func TestTransientUpdatesRecordNoHistory(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())

	s.UpdatePanelTransient("a", func(p *domain.Panel) { p.GeneratingImage = true })
	if s.CanUndo() {
		t.Fatalf("transient update must not be undoable")
	}
	p, _ := s.Panel("a")
	if !p.GeneratingImage {
		t.Fatalf("transient update not applied")
	}
}

// A snapshot taken while a marker is set must come back clean: undoing past a
// generation completion may not resurrect a spinner.
func TestHistorySnapshotsAreSanitized(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())

	s.UpdatePanelTransient("a", func(p *domain.Panel) { p.GeneratingImage = true })
	s.UpdatePanel("a", func(p *domain.Panel) {
		p.ImageRef = "data:image/png;base64,AA=="
		p.GeneratingImage = false
	})

	s.Undo()
	p, _ := s.Panel("a")
	if p.GeneratingImage {
		t.Fatalf("undo resurrected an in-flight marker")
	}
	if p.ImageRef != "" {
		t.Fatalf("undo did not revert the image ref")
	}

	s.Redo()
	p, _ = s.Panel("a")
	if p.ImageRef == "" {
		t.Fatalf("redo did not restore the image ref")
	}
	if p.GeneratingImage {
		t.Fatalf("redo restored an in-flight marker")
	}
}

func TestUpdatePanelReportsMissingID(t *testing.T) {
	s := NewStore()
	s.Load(threePanels())
	if s.UpdatePanel("nope", func(p *domain.Panel) {}) {
		t.Fatalf("UpdatePanel should report false for unknown ID")
	}
	if !s.UpdatePanel("c", func(p *domain.Panel) {}) {
		t.Fatalf("UpdatePanel should report true for known ID")
	}
}

func TestConcurrentUpdatesNeverClobber(t *testing.T) {
	s := NewStore()
	panels := make(domain.Panels, 8)
	for i := range panels {
		panels[i] = domain.Panel{ID: string(rune('a' + i)), Number: i + 1}
	}
	s.Load(panels)

	var wg sync.WaitGroup
	for _, p := range panels {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.UpdatePanel(id, func(p *domain.Panel) { p.ImageRef = "data:image/png;base64," + id })
		}(p.ID)
	}
	wg.Wait()

	for _, p := range s.Panels() {
		if p.ImageRef == "" {
			t.Fatalf("panel %s lost its completion", p.ID)
		}
	}
}
