package xlgrid

// CellChange describes a value written to a cell.
type CellChange struct {
	Ref      CellRef
	OldValue string
	NewValue string
}

// FocusChange describes a move of the focus. Previous and Current are only
// meaningful when HadPrevious and HasCurrent are set.
type FocusChange struct {
	Previous    CellRef
	HadPrevious bool
	Current     CellRef
	HasCurrent  bool
}

// Label returns the focus indicator after the change, or "" when focus was cleared.
func (c FocusChange) Label() string {
	if !c.HasCurrent {
		return ""
	}
	return c.Current.Label()
}

// Listener is notified after the grid's state changes.
// Implement this interface to keep a presentation layer in sync with a Grid;
// the grid itself holds no reference to any rendering surface.
type Listener interface {
	// CellChanged is called after Set stores a value different from the previous one.
	CellChanged(change CellChange)

	// FocusChanged is called after the focused cell changes or focus is cleared.
	FocusChanged(change FocusChange)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil fields are ignored.
type ListenerFuncs struct {
	OnCellChanged  func(CellChange)
	OnFocusChanged func(FocusChange)
}

func (l ListenerFuncs) CellChanged(change CellChange) {
	if l.OnCellChanged != nil {
		l.OnCellChanged(change)
	}
}

func (l ListenerFuncs) FocusChanged(change FocusChange) {
	if l.OnFocusChanged != nil {
		l.OnFocusChanged(change)
	}
}
