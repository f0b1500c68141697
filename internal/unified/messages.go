package unified

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target View
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// mountedMsg tags a view's async result with the mount it was issued from.
// Results from a view that has since been unmounted are dropped.
type mountedMsg struct {
	mount int
	msg   any
}
