package state

// Action is the base interface for all navigation mutations
type Action interface{}

// ===== PAGE ACTIONS =====

type NextPageAction struct{}
type PreviousPageAction struct{}
type FirstPageAction struct{}
type LastPageAction struct{}

// ===== VIEW ACTIONS =====

// RedrawAction repaints the current page without moving.
type RedrawAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
