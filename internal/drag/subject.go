// Package drag implements the drag session state machine for reordering
// sections and items already placed in a session.
//
// A drag snapshots the playlist when it starts and works on a preview copy.
// Cancelling restores the snapshot; ending commits the preview.
package drag

import "fmt"

// State of a Controller
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Subject is the entity being dragged: SectionSubject or ItemSubject
type Subject interface {
	isSubject()
	String() string
}

// SectionSubject drags a whole section within the top-level sequence
type SectionSubject struct {
	ID string
}

// ItemSubject drags a single item within or across sections
type ItemSubject struct {
	ID string
}

func (SectionSubject) isSubject() {}
func (ItemSubject) isSubject()    {}

func (s SectionSubject) String() string { return fmt.Sprintf("section(%s)", s.ID) }
func (s ItemSubject) String() string    { return fmt.Sprintf("item(%s)", s.ID) }

// Origin is where the subject was picked up
type Origin struct {
	SectionID string // Empty for section drags
	Index     int
}
