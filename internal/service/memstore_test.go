package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
)

// memStore is an in-memory BookingStore and CourtRegistry.  A single mutex
// makes Create atomic, and the slots map plays the part of the
// booking_slots primary key.
type memStore struct {
	mu     sync.Mutex
	seq    uint64
	rows   map[uint64]*model.Booking
	slots  map[slotKey]uint64
	courts map[uint64]*model.Court
}

type slotKey struct {
	court uint64
	date  string
	start model.ClockTime
}

func newMemStore(courts ...*model.Court) *memStore {
	m := &memStore{
		rows:   map[uint64]*model.Booking{},
		slots:  map[slotKey]uint64{},
		courts: map[uint64]*model.Court{},
	}
	for _, c := range courts {
		m.courts[c.ID] = c
	}
	return m
}

// seed stores b as is, bypassing validation and the lifecycle.
func (m *memStore) seed(b model.Booking) *model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b.ID = m.seq
	if b.Reference == "" {
		b.Reference = NewReference(b.BookingDate)
	}
	m.rows[b.ID] = &b
	out := b
	return &out
}

func (m *memStore) status(id uint64) model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id].Status
}

func (m *memStore) FindByID(_ context.Context, id uint64) (*model.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

// bookingStore exposes the BookingStore half of memStore; FindByID is
// taken by the CourtRegistry half.
type bookingStore struct{ *memStore }

func (s bookingStore) FindByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (m *memStore) Create(_ context.Context, b *model.Booking, buckets []model.ClockTime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.SameDay(b.CourtID, b.BookingDate) && r.Status.Active() && r.Slot().Overlaps(b.Slot()) {
			return repository.ErrConflict
		}
	}
	date := b.BookingDate.Format(model.DateLayout)
	for _, t := range buckets {
		if _, taken := m.slots[slotKey{b.CourtID, date, t}]; taken {
			return repository.ErrConflict
		}
	}
	m.seq++
	b.ID = m.seq
	for _, t := range buckets {
		m.slots[slotKey{b.CourtID, date, t}] = b.ID
	}
	row := *b
	m.rows[b.ID] = &row
	return nil
}

func (m *memStore) FindByCourtAndDate(_ context.Context, courtID uint64, date time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, r := range m.rows {
		if r.SameDay(courtID, date) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (m *memStore) CountConflicting(_ context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	slot := model.Interval{Start: start, End: end}
	for _, r := range m.rows {
		if r.ID != excludeID && r.SameDay(courtID, date) && r.Status.Active() && r.Slot().Overlaps(slot) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) FindByStatusCreatedBefore(_ context.Context, status model.Status, before time.Time, ownerID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, r := range m.rows {
		if r.Status != status || !r.CreatedAt.Before(before) {
			continue
		}
		if ownerID != 0 && m.courts[r.CourtID].OwnerID != ownerID {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FindUpcoming(_ context.Context, userID uint64, date time.Time, from, to model.ClockTime) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, r := range m.rows {
		if r.UserID == userID && r.BookingDate.Equal(date) && r.Status == model.StatusConfirmed &&
			r.StartTime >= from && r.StartTime < to {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) List(_ context.Context, f model.BookingFilter) ([]model.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Booking
	for _, r := range m.rows {
		switch {
		case f.UserID != 0 && r.UserID != f.UserID:
			continue
		case f.CourtID != 0 && r.CourtID != f.CourtID:
			continue
		case f.OwnerID != 0 && m.courts[r.CourtID].OwnerID != f.OwnerID:
			continue
		case f.Status != "" && r.Status != f.Status:
			continue
		case f.From != nil && r.BookingDate.Before(*f.From):
			continue
		case f.To != nil && r.BookingDate.After(*f.To):
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	lo := f.Offset()
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + f.Size
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (m *memStore) SumAmountByCourt(_ context.Context, ownerID uint64, start, end time.Time, statuses []model.Status) ([]model.CourtRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byCourt := map[uint64]*model.CourtRevenue{}
	for _, r := range m.rows {
		c := m.courts[r.CourtID]
		if c == nil || c.OwnerID != ownerID || r.BookingDate.Before(start) || r.BookingDate.After(end) {
			continue
		}
		match := false
		for _, st := range statuses {
			match = match || r.Status == st
		}
		if !match {
			continue
		}
		cr := byCourt[c.ID]
		if cr == nil {
			cr = &model.CourtRevenue{CourtID: c.ID, CourtName: c.Name}
			byCourt[c.ID] = cr
		}
		cr.Bookings++
		cr.TotalCents += r.TotalAmountCents
	}
	out := make([]model.CourtRevenue, 0, len(byCourt))
	for _, cr := range byCourt {
		out = append(out, *cr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourtID < out[j].CourtID })
	return out, nil
}

func (m *memStore) CountByStatus(_ context.Context, courtID uint64) (map[model.Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[model.Status]int64{}
	for _, r := range m.rows {
		if r.CourtID == courtID {
			out[r.Status]++
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint64, from, to model.Status) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.Status != from {
		return nil, repository.ErrStaleStatus
	}
	r.Status = to
	if to.Terminal() {
		for k, owner := range m.slots {
			if owner == id {
				delete(m.slots, k)
			}
		}
	}
	out := *r
	return &out, nil
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []model.BookingEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, ev model.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
