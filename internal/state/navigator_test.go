package state

import (
	"errors"
	"testing"
)

func TestNewNavigatorStartsViewingFirstPage(t *testing.T) {
	nav := NewNavigator(5, NavigatorOptions{WrapForward: true})

	if nav.Index() != 0 || nav.Total() != 5 {
		t.Fatalf("expected 0/5, got %d/%d", nav.Index(), nav.Total())
	}
	if !nav.Running() || nav.Status() != StatusViewing {
		t.Fatalf("expected viewing, got %v", nav.Status())
	}
	if !nav.Refresh() {
		t.Fatalf("first frame must be drawn")
	}
}

func TestNewNavigatorClampsStart(t *testing.T) {
	tests := []struct {
		start, total, want int
	}{
		{start: 2, total: 5, want: 2},
		{start: -3, total: 5, want: 0},
		{start: 9, total: 5, want: 4},
		{start: 4, total: 0, want: 0},
	}
	for _, tt := range tests {
		nav := NewNavigator(tt.total, NavigatorOptions{Start: tt.start})
		if nav.Index() != tt.want {
			t.Errorf("start=%d total=%d: expected index %d, got %d", tt.start, tt.total, tt.want, nav.Index())
		}
	}
}

func TestNextCyclesBackToStart(t *testing.T) {
	for total := 1; total <= 7; total++ {
		nav := NewNavigator(total, NavigatorOptions{WrapForward: true})
		for i := 0; i < total; i++ {
			nav.Apply(NextPageAction{})
		}
		if nav.Index() != 0 || !nav.Running() {
			t.Fatalf("total=%d: expected to return to page 0 while viewing, got %d (%v)", total, nav.Index(), nav.Status())
		}
	}
}

func TestNextOnLastPageWraps(t *testing.T) {
	nav := NewNavigator(3, NavigatorOptions{WrapForward: true, Start: 2})
	nav.MarkDrawn()
	nav.Apply(NextPageAction{})

	if nav.Index() != 0 {
		t.Fatalf("expected wrap to 0, got %d", nav.Index())
	}
	if !nav.Refresh() {
		t.Fatalf("expected refresh after moving")
	}
}

func TestNextOnLastPageStopsWithoutWrap(t *testing.T) {
	nav := NewNavigator(3, NavigatorOptions{Start: 2})
	nav.Apply(NextPageAction{})

	if nav.Running() || nav.Status() != StatusAfterLast {
		t.Fatalf("expected after-last, got %v", nav.Status())
	}
	if nav.Reason() != ReasonBoundaryAfterLast {
		t.Fatalf("expected boundary reason, got %v", nav.Reason())
	}
	if nav.Index() != 2 {
		t.Fatalf("index must not move past the end, got %d", nav.Index())
	}
}

func TestPreviousOnFirstPageStopsAtBoundary(t *testing.T) {
	nav := NewNavigator(4, NavigatorOptions{WrapForward: true})
	nav.Apply(PreviousPageAction{})

	if nav.Running() {
		t.Fatalf("expected navigator to stop")
	}
	if nav.Status() != StatusBeforeFirst || nav.Reason() != ReasonBoundaryBeforeFirst {
		t.Fatalf("expected before-first, got %v / %v", nav.Status(), nav.Reason())
	}
	if nav.Index() != 0 {
		t.Fatalf("index must stay at 0, got %d", nav.Index())
	}
}

func TestPreviousOnFirstPageWrapsWhenEnabled(t *testing.T) {
	nav := NewNavigator(4, NavigatorOptions{WrapBackward: true})
	nav.Apply(PreviousPageAction{})

	if !nav.Running() || nav.Index() != 3 {
		t.Fatalf("expected wrap to 3, got %d (%v)", nav.Index(), nav.Status())
	}
}

func TestPreviousMovesBack(t *testing.T) {
	nav := NewNavigator(4, NavigatorOptions{Start: 2})
	nav.MarkDrawn()
	nav.Apply(PreviousPageAction{})

	if nav.Index() != 1 || !nav.Refresh() {
		t.Fatalf("expected index 1 with refresh, got %d refresh=%v", nav.Index(), nav.Refresh())
	}
}

func TestFirstAndLastJump(t *testing.T) {
	nav := NewNavigator(6, NavigatorOptions{Start: 3})

	nav.Apply(LastPageAction{})
	if nav.Index() != 5 {
		t.Fatalf("expected last page, got %d", nav.Index())
	}
	nav.MarkDrawn()
	nav.Apply(FirstPageAction{})
	if nav.Index() != 0 || !nav.Refresh() {
		t.Fatalf("expected first page with refresh, got %d refresh=%v", nav.Index(), nav.Refresh())
	}
}

func TestRedrawKeepsIndex(t *testing.T) {
	nav := NewNavigator(3, NavigatorOptions{Start: 1})
	nav.MarkDrawn()
	nav.Apply(RedrawAction{})

	if nav.Index() != 1 || !nav.Refresh() {
		t.Fatalf("expected redraw of page 1, got %d refresh=%v", nav.Index(), nav.Refresh())
	}
}

func TestUnknownActionLeavesPositionUnchanged(t *testing.T) {
	type bogusAction struct{}

	nav := NewNavigator(3, NavigatorOptions{Start: 1})
	nav.MarkDrawn()
	nav.Apply(bogusAction{})

	if nav.Index() != 1 || nav.Total() != 3 || nav.Refresh() {
		t.Fatalf("unexpected change: index=%d total=%d refresh=%v", nav.Index(), nav.Total(), nav.Refresh())
	}
	if !nav.Running() {
		t.Fatalf("unknown action must not stop the navigator")
	}
}

func TestQuitStops(t *testing.T) {
	nav := NewNavigator(3, NavigatorOptions{})
	nav.Apply(QuitAction{})

	if nav.Running() || nav.Status() != StatusQuit || nav.Reason() != ReasonQuitRequested {
		t.Fatalf("expected quit, got %v / %v", nav.Status(), nav.Reason())
	}

	nav.Apply(NextPageAction{})
	if nav.Index() != 0 {
		t.Fatalf("stopped navigator must ignore actions, got index %d", nav.Index())
	}
}

func TestEmptyComicOnlyQuits(t *testing.T) {
	nav := NewNavigator(0, NavigatorOptions{WrapForward: true, WrapBackward: true})

	for _, action := range []Action{NextPageAction{}, PreviousPageAction{}, FirstPageAction{}, LastPageAction{}, RedrawAction{}} {
		nav.Apply(action)
		if !nav.Running() || nav.Index() != 0 {
			t.Fatalf("%T changed an empty comic: index=%d status=%v", action, nav.Index(), nav.Status())
		}
	}

	nav.Apply(QuitAction{})
	if nav.Status() != StatusQuit {
		t.Fatalf("expected quit, got %v", nav.Status())
	}
}

func TestFailRecordsError(t *testing.T) {
	boom := errors.New("boom")
	nav := NewNavigator(2, NavigatorOptions{})
	nav.Fail(boom)

	if nav.Running() || nav.Reason() != ReasonError {
		t.Fatalf("expected error stop, got %v", nav.Reason())
	}
	if !errors.Is(nav.Err(), boom) {
		t.Fatalf("expected %v, got %v", boom, nav.Err())
	}
}
