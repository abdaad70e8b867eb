package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hotsquiz/internal/router"
	"github.com/abhisek/hotsquiz/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

// tickUntil sends n ticks and returns the command from the last one.
func tickUntil(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func ticksFor(d time.Duration) int {
	return int(d / tickInterval)
}

func TestPyramidGrowsFromTheBase(t *testing.T) {
	w, _ := newWelcome()

	view := w.View(80, 30)
	if strings.Contains(view, "Remember") {
		t.Fatal("no tier should show before the first tick interval")
	}

	tickUntil(w, ticksFor(tierEvery))
	view = w.View(80, 30)
	if !strings.Contains(view, "Remember") || strings.Contains(view, "Understand") {
		t.Fatalf("after one tier only Remember should show:\n%s", view)
	}

	tickUntil(w, ticksFor(4*tierEvery))
	view = w.View(80, 30)
	if !strings.Contains(view, "Evaluate") || strings.Contains(view, "Create") {
		t.Fatalf("after five tiers Create should still be hidden:\n%s", view)
	}
	if strings.Contains(view, "Think higher") {
		t.Fatal("banner should wait for the full pyramid")
	}

	tickUntil(w, ticksFor(tierEvery))
	view = w.View(80, 30)
	if !strings.Contains(view, "Create") || !strings.Contains(view, "Think higher") {
		t.Fatalf("finished splash should show the top tier and the tagline:\n%s", view)
	}
}

func TestTopTierRendersAboveBase(t *testing.T) {
	out := renderPyramid(len(bloomTiers))
	if strings.Index(out, "Create") > strings.Index(out, "Remember") {
		t.Fatalf("Create should be drawn above Remember:\n%s", out)
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newWelcome()
	tickUntil(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", msg)
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestAutoTransitionAfterHold(t *testing.T) {
	w, calls := newWelcome()
	total := ticksFor(w.built() + holdFor)

	if cmd := tickUntil(w, total-1); cmd == nil || *calls != 0 {
		t.Fatalf("splash left early (calls=%d)", *calls)
	}
	cmd := tickUntil(w, 1)
	if cmd == nil {
		t.Fatal("expected the transition once the hold ends")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if cmd := tickUntil(w, 5); cmd != nil {
		t.Error("ticks after the transition should stop")
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, calls := newWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
