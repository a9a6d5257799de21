package attendance

import (
	"context"
	"encoding/json"
	"sort"

	"dayflow/internal/store"

	"github.com/google/uuid"
)

type Filter struct {
	EmployeeID *uuid.UUID
	From       string // inclusive, YYYY-MM-DD
	To         string // inclusive, YYYY-MM-DD
}

type Repository interface {
	FindByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, day string) (*Attendance, bool)
	FindAll(ctx context.Context, filter Filter) []Attendance
	Upsert(ctx context.Context, a Attendance) (persisted bool)
	// Transition runs fn against the current record for (employeeID, day)
	// in one critical section; fn sees nil when no record exists and
	// returns the record to store. An error from fn leaves the collection
	// untouched, so concurrent toggles on the same day cannot both pass
	// the same state check.
	Transition(ctx context.Context, employeeID uuid.UUID, day string, fn func(existing *Attendance) (Attendance, error)) (Attendance, bool, error)
}

type repository struct {
	st      *store.Store
	records []Attendance
}

func NewRepository(st *store.Store) Repository {
	r := &repository{st: st}
	st.Register(r)
	return r
}

func (r *repository) Name() string { return "attendance" }

func (r *repository) State() (json.RawMessage, error) {
	return json.Marshal(r.records)
}

func (r *repository) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &r.records)
}

func (r *repository) FindByEmployeeAndDay(_ context.Context, employeeID uuid.UUID, day string) (*Attendance, bool) {
	var out *Attendance
	r.st.View(func() {
		for i := range r.records {
			if r.records[i].EmployeeID == employeeID && r.records[i].Day == day {
				a := r.records[i]
				out = &a
				return
			}
		}
	})
	return out, out != nil
}

func (r *repository) FindAll(_ context.Context, filter Filter) []Attendance {
	var out []Attendance
	r.st.View(func() {
		for i := range r.records {
			a := r.records[i]
			if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
				continue
			}
			// Day strings are YYYY-MM-DD, so lexicographic compare is
			// chronological compare.
			if filter.From != "" && a.Day < filter.From {
				continue
			}
			if filter.To != "" && a.Day > filter.To {
				continue
			}
			out = append(out, a)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day > out[j].Day
		}
		return out[i].CheckIn > out[j].CheckIn
	})
	return out
}

func (r *repository) Upsert(_ context.Context, a Attendance) bool {
	return r.st.Update(func() {
		for i := range r.records {
			if r.records[i].EmployeeID == a.EmployeeID && r.records[i].Day == a.Day {
				r.records[i] = a
				return
			}
		}
		r.records = append(r.records, a)
	})
}

func (r *repository) Transition(_ context.Context, employeeID uuid.UUID, day string, fn func(existing *Attendance) (Attendance, error)) (Attendance, bool, error) {
	var out Attendance
	persisted, err := r.st.Mutate(func() error {
		idx := -1
		for i := range r.records {
			if r.records[i].EmployeeID == employeeID && r.records[i].Day == day {
				idx = i
				break
			}
		}

		var existing *Attendance
		if idx >= 0 {
			a := r.records[idx]
			existing = &a
		}

		next, err := fn(existing)
		if err != nil {
			return err
		}

		if idx >= 0 {
			r.records[idx] = next
		} else {
			r.records = append(r.records, next)
		}
		out = next
		return nil
	})
	return out, persisted, err
}
