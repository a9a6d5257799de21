package announcement

type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=3,max=200"`
	Body  string `json:"body" binding:"required"`
}

type AnnouncementResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	PostedBy  string `json:"posted_by"`
	CreatedAt string `json:"created_at"`
}

type CreateAnnouncementResponse struct {
	Announcement AnnouncementResponse `json:"announcement"`
	Persisted    bool                 `json:"persisted"`
}
