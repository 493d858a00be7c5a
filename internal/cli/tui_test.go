package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/optio/pkg/pipeline"
	"github.com/matzehuels/optio/pkg/transform"
)

func newTestStageModel() StageListModel {
	plan := pipeline.NewPlan("test")
	return NewStageListModel("Hello, World!", plan.Trace("Hello, World!", "test", transform.Forward))
}

func press(m StageListModel, key tea.KeyMsg) (StageListModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(StageListModel), cmd
}

var (
	keyDown = tea.KeyMsg{Type: tea.KeyDown}
	keyUp   = tea.KeyMsg{Type: tea.KeyUp}
	keyQuit = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyLast = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}
)

func TestStageListNavigation(t *testing.T) {
	m := newTestStageModel()
	if m.rows() != 13 {
		t.Fatalf("rows = %d, want 13", m.rows())
	}

	m, _ = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.Cursor)
	}

	m, _ = press(m, keyDown)
	m, _ = press(m, keyDown)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	m, _ = press(m, keyLast)
	if m.Cursor != 12 {
		t.Errorf("cursor = %d, want 12", m.Cursor)
	}
	m, _ = press(m, keyDown)
	if m.Cursor != 12 {
		t.Errorf("cursor moved past last row: %d", m.Cursor)
	}
	if m.Offset != 12-m.Height+1 {
		t.Errorf("offset = %d, want %d", m.Offset, 12-m.Height+1)
	}
}

func TestStageListQuit(t *testing.T) {
	_, cmd := press(newTestStageModel(), keyQuit)
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStageListView(t *testing.T) {
	m := newTestStageModel()
	view := m.View()
	for _, want := range []string{"Trace", "input", "porta", `"Hello, World!"`} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(m, keyLast)
	if !strings.Contains(m.View(), `",E!fKEqgK fDU"`) {
		t.Error("view should show the selected stage's full text")
	}
}

func TestStageListWindowSize(t *testing.T) {
	next, _ := newTestStageModel().Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if h := next.(StageListModel).Height; h != 5 {
		t.Errorf("Height = %d, want minimum 5", h)
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short"); got != `"short"` {
		t.Errorf("preview(short) = %q", got)
	}
	long := preview(strings.Repeat("x", 100))
	if n := len([]rune(long)); n != previewWidth {
		t.Errorf("preview length = %d, want %d", n, previewWidth)
	}
}
