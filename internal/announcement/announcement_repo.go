package announcement

import (
	"context"
	"encoding/json"
	"sort"

	"dayflow/internal/store"
)

type Repository interface {
	FindAll(ctx context.Context) []Announcement
	Insert(ctx context.Context, a Announcement) (persisted bool)
}

type repository struct {
	st      *store.Store
	records []Announcement
}

func NewRepository(st *store.Store) Repository {
	r := &repository{st: st}
	st.Register(r)
	return r
}

func (r *repository) Name() string { return "announcements" }

func (r *repository) State() (json.RawMessage, error) {
	return json.Marshal(r.records)
}

func (r *repository) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &r.records)
}

func (r *repository) FindAll(_ context.Context) []Announcement {
	var out []Announcement
	r.st.View(func() {
		out = make([]Announcement, len(r.records))
		copy(out, r.records)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *repository) Insert(_ context.Context, a Announcement) bool {
	return r.st.Update(func() {
		r.records = append(r.records, a)
	})
}
