package leave

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	leaveerrors "dayflow/internal/leave/errors"
	"dayflow/internal/store"

	"github.com/google/uuid"
)

type Filter struct {
	EmployeeID *uuid.UUID
	Status     string
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, bool)
	FindAll(ctx context.Context, filter Filter) []Leave
	Insert(ctx context.Context, l Leave) (persisted bool)
	// Decide runs the whole decision transition in one critical section:
	// apply sees the current record and balance under the store lock, and
	// the leave update plus the balance row (when apply returns one) land
	// in the same flush. An error from apply leaves everything untouched,
	// so two concurrent decisions can never both observe PENDING.
	Decide(ctx context.Context, id uuid.UUID, apply func(l *Leave, balance Balance) (*Balance, error)) (Leave, bool, error)
	// FindBalance returns the stored row, or the lazy default. The read
	// materializes nothing.
	FindBalance(ctx context.Context, employeeID uuid.UUID) Balance
}

type repository struct {
	st       *store.Store
	leaves   []Leave
	balances []Balance
}

// The repo owns two collections; each gets its own snapshot entry.
type leavesCollection struct{ r *repository }
type balancesCollection struct{ r *repository }

func (c leavesCollection) Name() string { return "leaves" }
func (c leavesCollection) State() (json.RawMessage, error) {
	return json.Marshal(c.r.leaves)
}
func (c leavesCollection) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &c.r.leaves)
}

func (c balancesCollection) Name() string { return "leave_balances" }
func (c balancesCollection) State() (json.RawMessage, error) {
	return json.Marshal(c.r.balances)
}
func (c balancesCollection) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &c.r.balances)
}

func NewRepository(st *store.Store) Repository {
	r := &repository{st: st}
	st.Register(leavesCollection{r})
	st.Register(balancesCollection{r})
	return r
}

func (r *repository) FindByID(_ context.Context, id uuid.UUID) (*Leave, bool) {
	var out *Leave
	r.st.View(func() {
		for i := range r.leaves {
			if r.leaves[i].ID == id {
				l := r.leaves[i]
				out = &l
				return
			}
		}
	})
	return out, out != nil
}

func (r *repository) FindAll(_ context.Context, filter Filter) []Leave {
	var out []Leave
	r.st.View(func() {
		for i := range r.leaves {
			l := r.leaves[i]
			if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
				continue
			}
			if filter.Status != "" && !strings.EqualFold(l.Status, filter.Status) {
				continue
			}
			out = append(out, l)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate > out[j].StartDate
	})
	return out
}

func (r *repository) Insert(_ context.Context, l Leave) bool {
	return r.st.Update(func() {
		r.leaves = append(r.leaves, l)
	})
}

func (r *repository) Decide(_ context.Context, id uuid.UUID, apply func(l *Leave, balance Balance) (*Balance, error)) (Leave, bool, error) {
	var decided Leave
	persisted, err := r.st.Mutate(func() error {
		idx := -1
		for i := range r.leaves {
			if r.leaves[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return leaveerrors.ErrLeaveNotFound
		}

		l := r.leaves[idx]
		next, err := apply(&l, r.balanceLocked(l.EmployeeID))
		if err != nil {
			return err
		}

		r.leaves[idx] = l
		if next != nil {
			r.upsertBalanceLocked(*next)
		}
		decided = l
		return nil
	})
	return decided, persisted, err
}

func (r *repository) balanceLocked(employeeID uuid.UUID) Balance {
	for i := range r.balances {
		if r.balances[i].EmployeeID == employeeID {
			return r.balances[i]
		}
	}
	return DefaultBalance(employeeID)
}

func (r *repository) upsertBalanceLocked(b Balance) {
	for i := range r.balances {
		if r.balances[i].EmployeeID == b.EmployeeID {
			r.balances[i] = b
			return
		}
	}
	r.balances = append(r.balances, b)
}

func (r *repository) FindBalance(_ context.Context, employeeID uuid.UUID) Balance {
	out := DefaultBalance(employeeID)
	r.st.View(func() {
		out = r.balanceLocked(employeeID)
	})
	return out
}
