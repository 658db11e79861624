package state

import "fmt"

// Status is the navigator's position relative to the comic.
type Status int

const (
	StatusViewing Status = iota
	StatusQuit
	StatusBeforeFirst
	StatusAfterLast
)

func (s Status) String() string {
	switch s {
	case StatusViewing:
		return "viewing"
	case StatusQuit:
		return "quit"
	case StatusBeforeFirst:
		return "before-first"
	case StatusAfterLast:
		return "after-last"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ExitReason records why a viewing loop stopped.
type ExitReason int

const (
	ReasonNone ExitReason = iota
	ReasonQuitRequested
	ReasonBoundaryBeforeFirst
	ReasonBoundaryAfterLast
	ReasonError
)

func (r ExitReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuitRequested:
		return "quit requested"
	case ReasonBoundaryBeforeFirst:
		return "before first page"
	case ReasonBoundaryAfterLast:
		return "after last page"
	case ReasonError:
		return "error"
	}
	return fmt.Sprintf("ExitReason(%d)", int(r))
}

// NavigatorOptions configures wrapping at the ends of a comic.
type NavigatorOptions struct {
	// WrapForward sends Next on the last page back to the first page instead
	// of stopping with StatusAfterLast.
	WrapForward bool
	// WrapBackward sends Previous on the first page to the last page instead
	// of stopping with StatusBeforeFirst.
	WrapBackward bool
	// Start is the zero-based page to open; out of range values are clamped.
	Start int
}

// Navigator tracks the current page of one comic. The page count is fixed for
// the navigator's lifetime.
type Navigator struct {
	index   int
	total   int
	refresh bool
	status  Status
	reason  ExitReason
	err     error
	opts    NavigatorOptions
}

// NewNavigator starts viewing at opts.Start with a redraw pending.
func NewNavigator(total int, opts NavigatorOptions) *Navigator {
	if total < 0 {
		total = 0
	}
	n := &Navigator{total: total, refresh: true, status: StatusViewing, opts: opts}
	if total > 0 {
		n.index = clampIndex(opts.Start, total)
	}
	return n
}

func clampIndex(i, total int) int {
	if i < 0 {
		return 0
	}
	if i >= total {
		return total - 1
	}
	return i
}

// Apply performs one action. Actions it does not recognize only clear the
// refresh flag. Once the navigator has stopped, every action is ignored.
func (n *Navigator) Apply(action Action) {
	if !n.Running() {
		return
	}
	if _, ok := action.(QuitAction); ok {
		n.stop(StatusQuit, ReasonQuitRequested)
		return
	}
	if n.total == 0 {
		n.refresh = false
		return
	}

	switch action.(type) {
	case NextPageAction:
		n.next()
	case PreviousPageAction:
		n.previous()
	case FirstPageAction:
		n.index = 0
		n.refresh = true
	case LastPageAction:
		n.index = n.total - 1
		n.refresh = true
	case RedrawAction:
		n.refresh = true
	default:
		n.refresh = false
	}
}

func (n *Navigator) next() {
	if n.index+1 < n.total {
		n.index++
		n.refresh = true
		return
	}
	if n.opts.WrapForward {
		n.index = 0
		n.refresh = true
		return
	}
	n.stop(StatusAfterLast, ReasonBoundaryAfterLast)
}

func (n *Navigator) previous() {
	if n.index > 0 {
		n.index--
		n.refresh = true
		return
	}
	if n.opts.WrapBackward {
		n.index = n.total - 1
		n.refresh = true
		return
	}
	n.stop(StatusBeforeFirst, ReasonBoundaryBeforeFirst)
}

func (n *Navigator) stop(status Status, reason ExitReason) {
	n.status = status
	n.reason = reason
	n.refresh = true
}

// MarkDrawn clears the refresh flag after the current page was rendered.
func (n *Navigator) MarkDrawn() { n.refresh = false }

// Fail stops the navigator because rendering could not continue.
func (n *Navigator) Fail(err error) {
	n.err = err
	n.status = StatusQuit
	n.reason = ReasonError
}

func (n *Navigator) Index() int         { return n.index }
func (n *Navigator) Total() int         { return n.total }
func (n *Navigator) Refresh() bool      { return n.refresh }
func (n *Navigator) Status() Status     { return n.status }
func (n *Navigator) Reason() ExitReason { return n.reason }
func (n *Navigator) Err() error         { return n.err }

// Running reports whether the viewing loop should keep going.
func (n *Navigator) Running() bool { return n.status == StatusViewing }
