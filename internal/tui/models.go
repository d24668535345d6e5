package tui

type View int

const (
	ViewSearch View = iota
	ViewDetail
	ViewHistory
)

// focus is the part of the search view that receives keys.
type focus int

const (
	focusInput focus = iota
	focusResults
)
