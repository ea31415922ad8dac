package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
)

type stubVibeRepo struct {
	sessions map[string]models.VibeSession
	listed   int
}

func newStubVibeRepo() *stubVibeRepo {
	return &stubVibeRepo{sessions: make(map[string]models.VibeSession)}
}

func (s *stubVibeRepo) ListActive(ctx context.Context, excludeUserID string) ([]models.VibeSession, error) {
	s.listed++
	var sessions []models.VibeSession
	for _, session := range s.sessions {
		if session.UserID == excludeUserID || session.Status != "available" {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *stubVibeRepo) GetByUser(ctx context.Context, userID string) (models.VibeSession, error) {
	session, ok := s.sessions[userID]
	if !ok {
		return models.VibeSession{}, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (s *stubVibeRepo) Upsert(ctx context.Context, session *models.VibeSession) error {
	if session.ID == "" {
		session.ID = "session-" + session.UserID
	}
	s.sessions[session.UserID] = *session
	return nil
}

func (s *stubVibeRepo) UpdateByUser(ctx context.Context, userID string, updates map[string]interface{}) (models.VibeSession, error) {
	session, ok := s.sessions[userID]
	if !ok {
		return models.VibeSession{}, gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(string); ok {
		session.Status = status
	}
	s.sessions[userID] = session
	return session, nil
}

func (s *stubVibeRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, ok := s.sessions[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.sessions, userID)
	return nil
}

func setupVibeService(t *testing.T) (VibeService, *stubVibeRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newStubVibeRepo()
	svc := NewVibeService(repo, client, time.Minute, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	return svc, repo, mr
}

func TestVibeListActiveCachesAndExcludesCaller(t *testing.T) {
	svc, repo, _ := setupVibeService(t)
	ctx := context.Background()

	status := "available"
	_, err := svc.Save(ctx, "alice", dto.VibeSessionRequest{Status: &status})
	require.NoError(t, err)
	_, err = svc.Save(ctx, "bob", dto.VibeSessionRequest{Status: &status})
	require.NoError(t, err)

	sessions, err := svc.ListActive(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "bob", sessions[0].UserID)

	listsBefore := repo.listed
	sessions, err = svc.ListActive(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "alice", sessions[0].UserID)
	require.Equal(t, listsBefore, repo.listed, "second read is served from cache")
}

func TestVibeListActiveDropsSessionsExpiringInsideCacheTTL(t *testing.T) {
	svc, repo, _ := setupVibeService(t)
	ctx := context.Background()

	status := "available"
	until := time.Now().Add(100 * time.Millisecond)
	_, err := svc.Save(ctx, "bob", dto.VibeSessionRequest{Status: &status, AvailableUntil: &until})
	require.NoError(t, err)

	sessions, err := svc.ListActive(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, sessions, 1, "session is live on first read and gets cached")

	time.Sleep(150 * time.Millisecond)

	listsBefore := repo.listed
	sessions, err = svc.ListActive(ctx, "carol")
	require.NoError(t, err)
	require.Empty(t, sessions, "an expired session must not surface from the cached list")
	require.Equal(t, listsBefore, repo.listed, "still served from cache, expiry filtered in memory")
}

func TestVibeWritesInvalidateCache(t *testing.T) {
	svc, repo, mr := setupVibeService(t)
	ctx := context.Background()

	status := "available"
	_, err := svc.Save(ctx, "alice", dto.VibeSessionRequest{Status: &status})
	require.NoError(t, err)

	_, err = svc.ListActive(ctx, "nobody")
	require.NoError(t, err)
	require.True(t, mr.Exists(vibeCacheKey))

	require.NoError(t, svc.End(ctx, "alice"))
	require.False(t, mr.Exists(vibeCacheKey), "ending a session drops the cached list")

	sessions, err := svc.ListActive(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, sessions)
	require.Equal(t, 2, repo.listed)
}

func TestVibeSaveReplacesExistingSession(t *testing.T) {
	svc, repo, _ := setupVibeService(t)
	ctx := context.Background()

	available := "available"
	busy := "busy"
	_, err := svc.Save(ctx, "alice", dto.VibeSessionRequest{Status: &available})
	require.NoError(t, err)
	session, err := svc.Save(ctx, "alice", dto.VibeSessionRequest{Status: &busy})
	require.NoError(t, err)

	require.Equal(t, "busy", session.Status)
	require.Len(t, repo.sessions, 1)
}

func TestVibeUpdateMissingSession(t *testing.T) {
	svc, _, _ := setupVibeService(t)

	busy := "busy"
	_, err := svc.Update(context.Background(), "ghost", dto.VibeSessionRequest{Status: &busy})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
