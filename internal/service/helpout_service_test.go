package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/dto"
	"github.com/hommiefi/hommiefi-api/internal/models"
)

type stubUserRepo struct {
	users map[string]models.User
}

func (s *stubUserRepo) Get(ctx context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Upsert(ctx context.Context, user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (models.User, error) {
	return s.Get(ctx, id)
}

func (s *stubUserRepo) ListNearby(ctx context.Context, neighborhood, city, excludeUserID string) ([]models.User, error) {
	var nearby []models.User
	for _, user := range s.users {
		if user.ID == excludeUserID {
			continue
		}
		if neighborhood != "" && user.Neighborhood == neighborhood {
			nearby = append(nearby, user)
			continue
		}
		if neighborhood == "" && city != "" && user.City == city {
			nearby = append(nearby, user)
		}
	}
	return nearby, nil
}

type stubRelay struct {
	pushed []interface{}
}

func (s *stubRelay) ServeConnection(conn *websocket.Conn, opts RelayConnectionOptions) {}

func (s *stubRelay) Push(ctx context.Context, event interface{}) {
	s.pushed = append(s.pushed, event)
}

func (s *stubRelay) Start(ctx context.Context) {}

func TestHelpOutNotifiesNeighborsAndRequester(t *testing.T) {
	users := &stubUserRepo{users: map[string]models.User{
		"alice": {ID: "alice", Neighborhood: "Maple Street", City: "Springfield"},
		"bob":   {ID: "bob", Neighborhood: "Maple Street", City: "Springfield"},
		"carol": {ID: "carol", Neighborhood: "Oak Avenue", City: "Springfield"},
	}}
	notifications := &stubPublisher{}
	relay := &stubRelay{}
	svc := NewHelpOutService(users, notifications, relay, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	result, err := svc.RequestHelp(context.Background(), "alice", dto.EmergencyRequest{
		Title:       "Flat tire",
		Description: "Need a jack near the park",
		Urgency:     "high",
		Location:    "Elm & 3rd",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Notified, "only same-neighborhood users are targeted")

	require.Len(t, notifications.published, 2)
	recipients := []string{notifications.published[0].UserID, notifications.published[1].UserID}
	require.ElementsMatch(t, []string{"bob", "alice"}, recipients)

	require.Len(t, relay.pushed, 1)
	event, ok := relay.pushed[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "emergency", event["type"])
	require.Equal(t, "alice", event["userId"])
}

func TestHelpOutFallsBackToCity(t *testing.T) {
	users := &stubUserRepo{users: map[string]models.User{
		"alice": {ID: "alice", City: "Springfield"},
		"dave":  {ID: "dave", City: "Springfield"},
	}}
	notifications := &stubPublisher{}
	svc := NewHelpOutService(users, notifications, nil, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	result, err := svc.RequestHelp(context.Background(), "alice", dto.EmergencyRequest{
		Title:       "Power out",
		Description: "Anyone else without power?",
		Urgency:     "low",
		Location:    "5th Street",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Notified)
}

func TestHelpOutRejectsInvalidUrgency(t *testing.T) {
	users := &stubUserRepo{users: map[string]models.User{"alice": {ID: "alice"}}}
	svc := NewHelpOutService(users, &stubPublisher{}, nil, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	_, err := svc.RequestHelp(context.Background(), "alice", dto.EmergencyRequest{
		Title:       "Hmm",
		Description: "Something",
		Urgency:     "catastrophic",
		Location:    "Here",
	})
	require.Error(t, err)
}
