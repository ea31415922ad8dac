package models

import "time"

// UserSettings holds one row of preference fields per user, upserted
// wholesale on save.
type UserSettings struct {
	UserID string `gorm:"primaryKey;size:64" json:"userId"`

	// Privacy & visibility
	ProfileVisibility             string `gorm:"size:32;default:verified_neighbors" json:"profileVisibility"`
	LocationSharing               bool   `gorm:"default:true" json:"locationSharing"`
	OnlineStatus                  bool   `gorm:"default:true" json:"onlineStatus"`
	ShowEmail                     bool   `gorm:"default:false" json:"showEmail"`
	ShowPhone                     bool   `gorm:"default:false" json:"showPhone"`
	ShowTrustScore                bool   `gorm:"default:true" json:"showTrustScore"`
	HideFromSearch                bool   `gorm:"default:false" json:"hideFromSearch"`
	AllowDirectMessages           bool   `gorm:"default:true" json:"allowDirectMessages"`
	RequireVerificationForContact bool   `gorm:"default:false" json:"requireVerificationForContact"`

	// Notifications
	PushNotifications           bool `gorm:"default:true" json:"pushNotifications"`
	EmailNotifications          bool `gorm:"default:true" json:"emailNotifications"`
	SMSNotifications            bool `gorm:"default:false" json:"smsNotifications"`
	NewMessages                 bool `gorm:"default:true" json:"newMessages"`
	EmergencyAlerts             bool `gorm:"default:true" json:"emergencyAlerts"`
	CommunityUpdates            bool `gorm:"default:false" json:"communityUpdates"`
	GigNotifications            bool `gorm:"default:true" json:"gigNotifications"`
	LoopNotifications           bool `gorm:"default:true" json:"loopNotifications"`
	VibeNotifications           bool `gorm:"default:true" json:"vibeNotifications"`
	HavenNotifications          bool `gorm:"default:true" json:"havenNotifications"`
	ThreadNotifications         bool `gorm:"default:true" json:"threadNotifications"`
	NearbyActivityNotifications bool `gorm:"default:true" json:"nearbyActivityNotifications"`

	// Communication
	EmailFrequency       string `gorm:"size:32;default:daily" json:"emailFrequency"`
	QuietHoursEnabled    bool   `gorm:"default:false" json:"quietHoursEnabled"`
	QuietHoursStart      string `gorm:"size:8;default:22:00" json:"quietHoursStart"`
	QuietHoursEnd        string `gorm:"size:8;default:07:00" json:"quietHoursEnd"`
	AutoResponderEnabled bool   `gorm:"default:false" json:"autoResponderEnabled"`
	AutoResponderMessage string `gorm:"type:text" json:"autoResponderMessage"`

	// Appearance
	Theme         string `gorm:"size:16;default:light" json:"theme"`
	Language      string `gorm:"size:32;default:english" json:"language"`
	FontSize      string `gorm:"size:16;default:medium" json:"fontSize"`
	HighContrast  bool   `gorm:"default:false" json:"highContrast"`
	ReducedMotion bool   `gorm:"default:false" json:"reducedMotion"`
	CompactMode   bool   `gorm:"default:false" json:"compactMode"`

	// Location & discovery
	SearchRadius          int    `gorm:"default:5" json:"searchRadius"`
	AutoLocationUpdates   bool   `gorm:"default:true" json:"autoLocationUpdates"`
	ShowDistanceInResults bool   `gorm:"default:true" json:"showDistanceInResults"`
	PreferLocalResults    bool   `gorm:"default:true" json:"preferLocalResults"`
	MapStyle              string `gorm:"size:16;default:standard" json:"mapStyle"`

	// Safety & security
	VerificationBadgeVisible bool `gorm:"default:true" json:"verificationBadgeVisible"`
	BackgroundCheckVisible   bool `gorm:"default:false" json:"backgroundCheckVisible"`
	TwoFactorEnabled         bool `gorm:"default:false" json:"twoFactorEnabled"`
	LoginAlerts              bool `gorm:"default:true" json:"loginAlerts"`
	SessionTimeout           int  `gorm:"default:30" json:"sessionTimeout"`
	DeviceTrustEnabled       bool `gorm:"default:true" json:"deviceTrustEnabled"`

	// Community
	AutoMatchmaking                   bool   `gorm:"default:true" json:"autoMatchmaking"`
	SkillsVisibility                  string `gorm:"size:32;default:public" json:"skillsVisibility"`
	InterestsVisibility               string `gorm:"size:32;default:public" json:"interestsVisibility"`
	AllowGigRecommendations           bool   `gorm:"default:true" json:"allowGigRecommendations"`
	AllowVibeMatching                 bool   `gorm:"default:true" json:"allowVibeMatching"`
	CommunityLeaderboardParticipation bool   `gorm:"default:true" json:"communityLeaderboardParticipation"`

	// Data & privacy
	DataRetention      string `gorm:"size:16;default:2years" json:"dataRetention"`
	AnalyticsOptOut    bool   `gorm:"default:false" json:"analyticsOptOut"`
	MarketingOptOut    bool   `gorm:"default:false" json:"marketingOptOut"`
	DataExportRequests bool   `gorm:"default:false" json:"dataExportRequests"`
	BackupEnabled      bool   `gorm:"default:true" json:"backupEnabled"`
	SyncAcrossDevices  bool   `gorm:"default:true" json:"syncAcrossDevices"`

	// Advanced
	BetaFeaturesEnabled bool `gorm:"default:false" json:"betaFeaturesEnabled"`
	DeveloperMode       bool `gorm:"default:false" json:"developerMode"`
	APIAccessEnabled    bool `gorm:"default:false" json:"apiAccessEnabled"`
	WebhooksEnabled     bool `gorm:"default:false" json:"webhooksEnabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
