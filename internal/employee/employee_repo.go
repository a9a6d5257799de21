package employee

import (
	"context"
	"encoding/json"
	"strings"

	"dayflow/internal/store"

	"github.com/google/uuid"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, bool)
	FindByEmail(ctx context.Context, email string) (*Employee, bool)
	FindAll(ctx context.Context) []Employee
	Insert(ctx context.Context, e Employee) (persisted bool)
	Update(ctx context.Context, e Employee) (persisted bool)
}

type repository struct {
	st      *store.Store
	records []Employee
}

func NewRepository(st *store.Store) Repository {
	r := &repository{st: st}
	st.Register(r)
	return r
}

func (r *repository) Name() string { return "employees" }

func (r *repository) State() (json.RawMessage, error) {
	return json.Marshal(r.records)
}

func (r *repository) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &r.records)
}

func (r *repository) FindByID(_ context.Context, id uuid.UUID) (*Employee, bool) {
	var out *Employee
	r.st.View(func() {
		for i := range r.records {
			if r.records[i].ID == id {
				e := r.records[i]
				out = &e
				return
			}
		}
	})
	return out, out != nil
}

func (r *repository) FindByEmail(_ context.Context, email string) (*Employee, bool) {
	var out *Employee
	r.st.View(func() {
		for i := range r.records {
			if strings.EqualFold(r.records[i].Email, email) {
				e := r.records[i]
				out = &e
				return
			}
		}
	})
	return out, out != nil
}

func (r *repository) FindAll(_ context.Context) []Employee {
	var out []Employee
	r.st.View(func() {
		out = make([]Employee, len(r.records))
		copy(out, r.records)
	})
	return out
}

func (r *repository) Insert(_ context.Context, e Employee) bool {
	return r.st.Update(func() {
		r.records = append(r.records, e)
	})
}

func (r *repository) Update(_ context.Context, e Employee) bool {
	return r.st.Update(func() {
		for i := range r.records {
			if r.records[i].ID == e.ID {
				r.records[i] = e
				return
			}
		}
	})
}
