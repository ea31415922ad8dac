package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/hommiefi/hommiefi-api/internal/models"
	"github.com/hommiefi/hommiefi-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService populates the database with demo neighborhood data. It is
// disabled unless explicitly enabled and always requires the configured
// token.
type SeedService interface {
	Seed(ctx context.Context, token string) error
}

type seedService struct {
	users   repository.UserRepository
	loops   repository.LoopRepository
	gigs    repository.GigRepository
	threads repository.ThreadRepository
	vibes   repository.VibeRepository
	havens  repository.HavenRepository
	chats   repository.ChatRepository
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(
	users repository.UserRepository,
	loops repository.LoopRepository,
	gigs repository.GigRepository,
	threads repository.ThreadRepository,
	vibes repository.VibeRepository,
	havens repository.HavenRepository,
	chats repository.ChatRepository,
	enabled bool,
	token string,
	logger zerolog.Logger,
) SeedService {
	return &seedService{
		users:   users,
		loops:   loops,
		gigs:    gigs,
		threads: threads,
		vibes:   vibes,
		havens:  havens,
		chats:   chats,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Seed(ctx context.Context, token string) error {
	if !s.enabled {
		return ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return ErrSeedUnauthorized
	}

	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedLoopItems(ctx); err != nil {
		return err
	}
	if err := s.seedGigs(ctx); err != nil {
		return err
	}
	if err := s.seedThreadPosts(ctx); err != nil {
		return err
	}
	if err := s.seedVibeSessions(ctx); err != nil {
		return err
	}
	if err := s.seedHavenGroups(ctx); err != nil {
		return err
	}
	if err := s.seedConversations(ctx); err != nil {
		return err
	}

	s.logger.Info().Msg("database seeded")
	return nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}

func (s *seedService) seedUsers(ctx context.Context) error {
	users := []models.User{
		{
			ID:              "user-1",
			Email:           "mike@example.com",
			FirstName:       "Mike",
			LastName:        "Rodriguez",
			Bio:             "Friendly neighbor who loves helping out with tools and home projects. DIY enthusiast and father of two.",
			Neighborhood:    "Downtown",
			TrustScore:      4.8,
			CommunityPoints: 89,
		},
		{
			ID:              "user-2",
			Email:           "emma@example.com",
			FirstName:       "Emma",
			LastName:        "Wilson",
			Bio:             "Coffee lover and book enthusiast. Always happy to share recommendations and help with childcare.",
			Neighborhood:    "Downtown",
			TrustScore:      4.9,
			CommunityPoints: 76,
		},
		{
			ID:              "user-3",
			Email:           "lisa@example.com",
			FirstName:       "Lisa",
			LastName:        "Chen",
			Bio:             "Professional tutor and community organizer. Love connecting neighbors and building friendships.",
			Neighborhood:    "Downtown",
			TrustScore:      5.0,
			CommunityPoints: 124,
		},
	}
	for i := range users {
		if err := s.users.Upsert(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedLoopItems(ctx context.Context) error {
	items := []models.LoopItem{
		{
			UserID:      "user-1",
			Title:       "Power Drill Set",
			Description: "Complete Dewalt power drill set with bits. Perfect for home projects and furniture assembly.",
			Category:    "tools",
			Type:        "offer",
			Status:      "available",
			Location:    "Downtown",
		},
		{
			UserID:      "user-2",
			Title:       "Children's Books Collection",
			Description: "Beautiful collection of picture books for ages 3-8. Educational and entertaining stories.",
			Category:    "books",
			Type:        "offer",
			Status:      "available",
			Location:    "Downtown",
		},
		{
			UserID:      "user-3",
			Title:       "Looking for Baby Stroller",
			Description: "Need a lightweight stroller for city walks. Good condition preferred.",
			Category:    "baby_gear",
			Type:        "request",
			Status:      "active",
			Location:    "Downtown",
		},
	}
	for i := range items {
		if err := s.loops.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedGigs(ctx context.Context) error {
	dogWalking := 25.0
	tutoring := 30.0
	babysitting := 20.0
	gigs := []models.Gig{
		{
			UserID:      "user-1",
			Title:       "Dog Walking Service",
			Description: "Reliable dog walking for busy professionals. 30-60 minute walks, flexible schedule.",
			Category:    "pet_care",
			HourlyRate:  &dogWalking,
			Status:      "open",
			Location:    "Downtown",
		},
		{
			UserID:         "user-2",
			Title:          "Math Tutoring for Kids",
			Description:    "Experienced tutor offering help with elementary and middle school math. Patient and encouraging approach.",
			Category:       "tutoring",
			HourlyRate:     &tutoring,
			Status:         "open",
			Location:       "Downtown",
			SkillsRequired: datatypes.NewJSONSlice([]string{"Mathematics", "Teaching", "Patience"}),
		},
		{
			UserID:      "user-3",
			Title:       "Urgent: Babysitter Needed Tonight",
			Description: "Need reliable babysitter for two kids (ages 5 and 8) from 6-10 PM. References required.",
			Category:    "childcare",
			HourlyRate:  &babysitting,
			Status:      "open",
			Location:    "Downtown",
			IsUrgent:    true,
		},
	}
	for i := range gigs {
		if err := s.gigs.Create(ctx, &gigs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedThreadPosts(ctx context.Context) error {
	posts := []models.ThreadPost{
		{
			UserID:        "user-1",
			Title:         "Neighborhood Block Party Planning",
			Content:       "Hi everyone! I'm organizing a block party for next month. Looking for volunteers to help with planning and setup. Let's bring our community together!",
			Category:      "announcement",
			LikesCount:    12,
			CommentsCount: 8,
		},
		{
			UserID:        "user-2",
			Title:         "Best Local Coffee Shops?",
			Content:       "New to the area and looking for great coffee recommendations. Any hidden gems I should know about?",
			Category:      "recommendation",
			LikesCount:    7,
			CommentsCount: 15,
		},
		{
			UserID:        "user-3",
			Title:         "Safety Tip: Lock Your Cars",
			Content:       "PSA: There have been reports of car break-ins on Oak Street. Please remember to lock your vehicles and don't leave valuables visible.",
			Category:      "tip",
			LikesCount:    23,
			CommentsCount: 5,
		},
	}
	for i := range posts {
		if err := s.threads.CreatePost(ctx, &posts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedVibeSessions(ctx context.Context) error {
	until := time.Now().Add(4 * time.Hour)
	session := models.VibeSession{
		UserID:         "user-2",
		Status:         "available",
		Mood:           "coffee",
		Message:        "Looking for someone to grab coffee and chat about books!",
		AvailableUntil: &until,
		Location:       "Downtown",
	}
	return s.vibes.Upsert(ctx, &session)
}

func (s *seedService) seedHavenGroups(ctx context.Context) error {
	groups := []models.HavenGroup{
		{
			Name:        "Toddler Moms Support",
			Description: "Support group for mothers of toddlers (1-3 years). Share experiences, tips, and encouragement.",
			AgeGroup:    "toddler",
			IsPrivate:   true,
			MemberCount: 15,
		},
		{
			Name:        "New Moms Circle",
			Description: "Safe space for new mothers to connect, ask questions, and share the journey of early motherhood.",
			AgeGroup:    "newborn",
			IsPrivate:   true,
			MemberCount: 8,
		},
	}
	for i := range groups {
		if err := s.havens.CreateGroup(ctx, &groups[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedConversations(ctx context.Context) error {
	conversation := models.Conversation{Type: "direct"}
	if err := s.chats.CreateConversation(ctx, &conversation, []string{"user-1", "user-2"}); err != nil {
		return err
	}

	messages := []models.Message{
		{
			ConversationID: conversation.ID,
			UserID:         "user-1",
			Content:        "Hi Emma! Thanks for letting me borrow those books. My kids loved them!",
			MessageType:    "text",
		},
		{
			ConversationID: conversation.ID,
			UserID:         "user-2",
			Content:        "You're so welcome! I'm glad they enjoyed them. Feel free to borrow more anytime!",
			MessageType:    "text",
		},
	}
	for i := range messages {
		if err := s.chats.CreateMessage(ctx, &messages[i]); err != nil {
			return err
		}
	}
	return nil
}
