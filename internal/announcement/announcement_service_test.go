package announcement

import (
	"context"
	"testing"

	"dayflow/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAnnouncementFixture(t *testing.T) Service {
	t.Helper()

	st := store.New(store.NewMemoryPersister())
	repo := NewRepository(st)
	assert.NoError(t, st.Open())
	return NewService(repo)
}

func TestCreateAndList(t *testing.T) {
	svc := newAnnouncementFixture(t)
	actor := uuid.NewString()

	created, err := svc.Create(context.Background(), actor, CreateAnnouncementRequest{
		Title: "Office closed Friday",
		Body:  "Maintenance work on the third floor.",
	})
	assert.NoError(t, err)
	assert.True(t, created.Persisted)
	assert.Equal(t, actor, created.Announcement.PostedBy)

	list, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Office closed Friday", list[0].Title)
}

func TestCreate_RequiresValidActor(t *testing.T) {
	svc := newAnnouncementFixture(t)

	_, err := svc.Create(context.Background(), "not-a-uuid", CreateAnnouncementRequest{
		Title: "hello",
		Body:  "world",
	})
	assert.Error(t, err)
}
