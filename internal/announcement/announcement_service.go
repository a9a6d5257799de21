package announcement

import (
	"context"
	"time"

	"dayflow/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateAnnouncementRequest) (CreateAnnouncementResponse, error)
	GetAll(ctx context.Context) ([]AnnouncementResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("announcement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("announcement.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateAnnouncementRequest) (CreateAnnouncementResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return CreateAnnouncementResponse{}, apperror.ErrUnauthorized
	}

	record := Announcement{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		PostedBy:  actor,
		CreatedAt: s.now(),
	}

	persisted := s.repo.Insert(ctx, record)
	s.logger.Info("announcement posted",
		zap.String("announcement_id", record.ID.String()),
		zap.String("posted_by", actorID),
		zap.Bool("persisted", persisted),
	)
	return CreateAnnouncementResponse{Announcement: mapToResponse(record), Persisted: persisted}, nil
}

func (s *service) GetAll(ctx context.Context) ([]AnnouncementResponse, error) {
	records := s.repo.FindAll(ctx)
	res := make([]AnnouncementResponse, len(records))
	for i, a := range records {
		res[i] = mapToResponse(a)
	}
	return res, nil
}

func mapToResponse(a Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID.String(),
		Title:     a.Title,
		Body:      a.Body,
		PostedBy:  a.PostedBy.String(),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
