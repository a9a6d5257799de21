package announcement

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a company-wide notice. There is no targeting or read
// tracking; every authenticated employee sees the same list.
type Announcement struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PostedBy  uuid.UUID `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}
