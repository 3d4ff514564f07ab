package domain

import "fmt"

// FoodItem is one entry of a search result batch
type FoodItem struct {
	Name   string
	Fields map[string]any // remaining decoded keys, camelCase
}

// Field returns a decoded attribute other than the name
func (f FoodItem) Field(key string) (any, bool) {
	if f.Fields == nil {
		return nil, false
	}
	v, ok := f.Fields[key]
	return v, ok
}

// Phase identifies which variant a ViewState holds
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseLoading
	PhaseDone
	PhaseEmpty
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseLoading:
		return "Loading"
	case PhaseDone:
		return "Done"
	case PhaseEmpty:
		return "Empty"
	case PhaseFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ViewState is the value the presentation layer renders.
// Items is only meaningful for PhaseDone and Err only for PhaseFailed.
type ViewState struct {
	Phase Phase
	Items []FoodItem
	Err   error
}

func NotStarted() ViewState { return ViewState{Phase: PhaseNotStarted} }

func Loading() ViewState { return ViewState{Phase: PhaseLoading} }

func Empty() ViewState { return ViewState{Phase: PhaseEmpty} }

// Done wraps a result batch. A nil batch is stored as an empty one.
func Done(items []FoodItem) ViewState {
	if items == nil {
		items = []FoodItem{}
	}
	return ViewState{Phase: PhaseDone, Items: items}
}

func Failed(err error) ViewState { return ViewState{Phase: PhaseFailed, Err: err} }

// NumberOfSections is 1 when there is something to list, 0 otherwise
func (s ViewState) NumberOfSections() int {
	if len(s.Items) > 0 {
		return 1
	}
	return 0
}

// NumberOfRows returns the row count of the result list
func (s ViewState) NumberOfRows() int {
	return len(s.Items)
}

// ItemAt returns the item at row, or false when row is out of range
func (s ViewState) ItemAt(row int) (FoodItem, bool) {
	if row < 0 || row >= len(s.Items) {
		return FoodItem{}, false
	}
	return s.Items[row], true
}

func (s ViewState) String() string {
	switch s.Phase {
	case PhaseDone:
		return fmt.Sprintf("Done(%d items)", len(s.Items))
	case PhaseFailed:
		return fmt.Sprintf("Failed(%v)", s.Err)
	default:
		return s.Phase.String()
	}
}
