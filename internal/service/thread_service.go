package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

// ThreadService exposes community-feed use-cases.
type ThreadService interface {
	ListPosts(ctx context.Context, category string) ([]models.ThreadPost, error)
	GetPost(ctx context.Context, id string) (models.ThreadPost, error)
	CreatePost(ctx context.Context, userID string, payload dto.ThreadPostCreateRequest) (models.ThreadPost, error)
	DeletePost(ctx context.Context, id, userID string) error
	Like(ctx context.Context, postID, userID string) (models.ThreadPost, error)
	Unlike(ctx context.Context, postID, userID string) (models.ThreadPost, error)
	CreateComment(ctx context.Context, postID, userID string, payload dto.ThreadCommentCreateRequest) (models.ThreadComment, error)
	ListComments(ctx context.Context, postID string) ([]models.ThreadComment, error)
}

type threadService struct {
	repo          repository.ThreadRepository
	notifications NotificationPublisher
	validator     *validator.Validate
	logger        zerolog.Logger
	sanitizer     *bluemonday.Policy
}

// NewThreadService constructs a thread service.
func NewThreadService(repo repository.ThreadRepository, notifications NotificationPublisher, validate *validator.Validate, logger zerolog.Logger) ThreadService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &threadService{
		repo:          repo,
		notifications: notifications,
		validator:     validate,
		logger:        logger.With().Str("component", "thread_service").Logger(),
		sanitizer:     policy,
	}
}

func (s *threadService) ListPosts(ctx context.Context, category string) ([]models.ThreadPost, error) {
	return s.repo.ListPosts(ctx, category)
}

func (s *threadService) GetPost(ctx context.Context, id string) (models.ThreadPost, error) {
	return s.repo.GetPost(ctx, id)
}

func (s *threadService) CreatePost(ctx context.Context, userID string, payload dto.ThreadPostCreateRequest) (models.ThreadPost, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ThreadPost{}, err
	}

	post := payload.ToModel(userID)
	post.Title = strings.TrimSpace(s.sanitizer.Sanitize(post.Title))
	post.Content = strings.TrimSpace(s.sanitizer.Sanitize(post.Content))
	if post.Title == "" {
		return models.ThreadPost{}, errors.New("post title empty after sanitization")
	}

	if err := s.repo.CreatePost(ctx, &post); err != nil {
		return models.ThreadPost{}, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", userID).Str("category", post.Category).Msg("thread post created")

	return post, nil
}

func (s *threadService) DeletePost(ctx context.Context, id, userID string) error {
	return s.repo.DeletePost(ctx, id, userID)
}

func (s *threadService) Like(ctx context.Context, postID, userID string) (models.ThreadPost, error) {
	return s.repo.Like(ctx, postID, userID)
}

func (s *threadService) Unlike(ctx context.Context, postID, userID string) (models.ThreadPost, error) {
	return s.repo.Unlike(ctx, postID, userID)
}

// CreateComment stores the comment and notifies the post author.
func (s *threadService) CreateComment(ctx context.Context, postID, userID string, payload dto.ThreadCommentCreateRequest) (models.ThreadComment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ThreadComment{}, err
	}

	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return models.ThreadComment{}, err
	}

	comment := payload.ToModel(postID, userID)
	comment.Content = strings.TrimSpace(s.sanitizer.Sanitize(comment.Content))
	if comment.Content == "" {
		return models.ThreadComment{}, errors.New("comment content empty after sanitization")
	}

	if err := s.repo.CreateComment(ctx, &comment); err != nil {
		return models.ThreadComment{}, err
	}

	if s.notifications != nil && post.UserID != userID {
		notification := models.Notification{
			UserID:   post.UserID,
			Title:    "New comment",
			Message:  "Someone commented on \"" + post.Title + "\"",
			Type:     "thread_comment",
			EntityID: post.ID,
		}
		if err := s.notifications.Publish(ctx, notification); err != nil {
			s.logger.Warn().Err(err).Str("post_id", post.ID).Msg("failed to notify post author")
		}
	}

	return comment, nil
}

func (s *threadService) ListComments(ctx context.Context, postID string) ([]models.ThreadComment, error) {
	return s.repo.ListComments(ctx, postID)
}
