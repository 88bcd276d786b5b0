package service

import (
	"github.com/iliyamo/court-reservation/internal/model"
)

// Event is a lifecycle event that moves a booking between statuses.
type Event string

const (
	EventConfirm  Event = "confirm"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

// Relation describes how a principal relates to a booking.  A principal
// can hold several relations at once (an admin who also made the booking).
type Relation uint8

const (
	RelUser Relation = 1 << iota
	RelOwner
	RelAdmin
)

// Has reports whether r includes any of the bits in o.
func (r Relation) Has(o Relation) bool { return r&o != 0 }

// RelationOf computes the relations of actor to booking b on a court
// owned by courtOwnerID.
func RelationOf(actor model.Principal, b *model.Booking, courtOwnerID uint64) Relation {
	var r Relation
	if actor.UserID != 0 && actor.UserID == b.UserID {
		r |= RelUser
	}
	if actor.UserID != 0 && actor.UserID == courtOwnerID {
		r |= RelOwner
	}
	if actor.IsAdmin() {
		r |= RelAdmin
	}
	return r
}

// Transition is one permitted edge of the booking state machine.
type Transition struct {
	From    model.Status
	Event   Event
	To      model.Status
	Allowed Relation
}

// Lifecycle is the booking state machine.  Every status change goes
// through Resolve and Authorize; there are no other transition checks.
type Lifecycle struct {
	table []Transition
}

// DefaultLifecycle returns the court booking state machine:
//
//	PENDING   --confirm-->  CONFIRMED   owner, admin
//	PENDING   --cancel--->  CANCELLED   user, admin
//	CONFIRMED --cancel--->  CANCELLED   user, owner, admin
//	CONFIRMED --complete->  COMPLETED   owner, admin
//
// CANCELLED and COMPLETED are terminal.
func DefaultLifecycle() *Lifecycle {
	return &Lifecycle{table: []Transition{
		{From: model.StatusPending, Event: EventConfirm, To: model.StatusConfirmed, Allowed: RelOwner | RelAdmin},
		{From: model.StatusPending, Event: EventCancel, To: model.StatusCancelled, Allowed: RelUser | RelAdmin},
		{From: model.StatusConfirmed, Event: EventCancel, To: model.StatusCancelled, Allowed: RelUser | RelOwner | RelAdmin},
		{From: model.StatusConfirmed, Event: EventComplete, To: model.StatusCompleted, Allowed: RelOwner | RelAdmin},
	}}
}

// InitialStatus is the status of every newly created booking.
func (l *Lifecycle) InitialStatus() model.Status { return model.StatusPending }

// Fire returns the edge taken by event from status from.
func (l *Lifecycle) Fire(from model.Status, ev Event) (Transition, error) {
	for _, t := range l.table {
		if t.From == from && t.Event == ev {
			return t, nil
		}
	}
	return Transition{}, newError(KindInvalidTransition, "cannot %s a %s booking", ev, from)
}

// Resolve returns the edge from status from to status to.
func (l *Lifecycle) Resolve(from, to model.Status) (Transition, error) {
	if !to.Valid() {
		return Transition{}, newError(KindInvalidInput, "unknown status %q", to)
	}
	for _, t := range l.table {
		if t.From == from && t.To == to {
			return t, nil
		}
	}
	return Transition{}, newError(KindInvalidTransition, "cannot move booking from %s to %s", from, to)
}

// Authorize checks that a principal with relation rel may take edge t.
func (l *Lifecycle) Authorize(t Transition, rel Relation) error {
	if !rel.Has(t.Allowed) {
		return newError(KindAccessDenied, "not allowed to %s this booking", t.Event)
	}
	return nil
}
