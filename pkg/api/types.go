package api

import "time"

// WebhookEvent is one notification received from the video platform's push
// hub, as recorded by the ingestion pipeline.
type WebhookEvent struct {
	ID          int64      `json:"id"`
	ChannelID   string     `json:"channel_id"`
	VideoID     string     `json:"video_id"`
	EventType   string     `json:"event_type"`
	Status      string     `json:"status"`
	Error       *string    `json:"error,omitempty"`
	ReceivedAt  time.Time  `json:"received_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// Channel is a tracked channel.
type Channel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Subscribed  bool      `json:"subscribed"`
	VideoCount  int64     `json:"video_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChannelEnrichment is the platform metadata fetched for a channel by an
// enrichment job.
type ChannelEnrichment struct {
	ChannelID       string    `json:"channel_id"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	ViewCount       int64     `json:"view_count"`
	Country         *string   `json:"country,omitempty"`
	CustomURL       *string   `json:"custom_url,omitempty"`
	EnrichedAt      time.Time `json:"enriched_at"`
}

// Video is a tracked video.
type Video struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VideoEnrichment is the platform metadata fetched for a video by an
// enrichment job.
type VideoEnrichment struct {
	VideoID      string    `json:"video_id"`
	Duration     *string   `json:"duration,omitempty"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	Tags         []string  `json:"tags,omitempty"`
	EnrichedAt   time.Time `json:"enriched_at"`
}

// VideoUpdate is one audited field change on a video, recorded when a
// webhook notification alters a stored value.
type VideoUpdate struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"video_id"`
	Field     string    `json:"field"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionStatus is the lifecycle state of a push-hub lease.
type SubscriptionStatus string

// Subscription statuses.
const (
	SubscriptionPending      SubscriptionStatus = "pending"
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionExpired      SubscriptionStatus = "expired"
	SubscriptionFailed       SubscriptionStatus = "failed"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

// Subscription is a push-hub lease for one channel's notifications.
type Subscription struct {
	ID           int64              `json:"id"`
	ChannelID    string             `json:"channel_id"`
	Status       SubscriptionStatus `json:"status"`
	LeaseSeconds int64              `json:"lease_seconds"`
	ExpiresAt    *time.Time         `json:"expires_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// BlockedVideo is a video whose webhook events the ingestion pipeline rejects
// before any writes.
type BlockedVideo struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"video_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy *string   `json:"created_by,omitempty"`
}

// JobStatus is the lifecycle state of an asynchronous server-side job.
type JobStatus string

// Job statuses. Pending and running are the non-terminal states.
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s != JobPending && s != JobRunning
}

// Job is an asynchronous enrichment task executed by the server. The client
// only ever observes its status.
type Job struct {
	ID          int64      `json:"id"`
	JobType     string     `json:"job_type"`
	TargetID    string     `json:"target_id"`
	Status      JobStatus  `json:"status"`
	Attempts    int        `json:"attempts"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Sponsor is a known sponsor whose placements the detection pipeline looks
// for in video content.
type Sponsor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SponsorVideo is one detected placement of a sponsor in a video.
type SponsorVideo struct {
	VideoID    string    `json:"video_id"`
	ChannelID  string    `json:"channel_id"`
	Title      string    `json:"title"`
	Confidence float64   `json:"confidence"`
	DetectedAt time.Time `json:"detected_at"`
}

// SponsorDetectionJob is an asynchronous server-side scan of one video for
// sponsor placements.
type SponsorDetectionJob struct {
	ID            int64      `json:"id"`
	VideoID       string     `json:"video_id"`
	Status        JobStatus  `json:"status"`
	SponsorsFound *int       `json:"sponsors_found,omitempty"`
	Error         *string    `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
