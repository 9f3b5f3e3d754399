package models

import (
	"time"
)

type Source string

const (
	SourceInstagram Source = "instagram"
	SourceLinkedIn  Source = "linkedin"
)

// Sources - все поддерживаемые источники в постоянном порядке
var Sources = []Source{SourceInstagram, SourceLinkedIn}

func ParseSource(value string) (Source, bool) {
	for _, s := range Sources {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}

// Post - синхронизированный пост. Для Instagram заполняются ImageURL и Caption,
// для LinkedIn - Title и Summary
type Post struct {
	ID        string    `json:"id,omitempty" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	Permalink string    `json:"permalink" db:"permalink"`
	ImageURL  string    `json:"imageUrl,omitempty" db:"image_url"`
	Caption   string    `json:"caption,omitempty" db:"caption"`
	Title     string    `json:"title,omitempty" db:"title"`
	Summary   string    `json:"summary,omitempty" db:"summary"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

type SyncStatus string

const (
	StatusSuccess SyncStatus = "success"
	StatusError   SyncStatus = "error"
	StatusSkipped SyncStatus = "skipped"
)

type SyncResult struct {
	Source  Source     `json:"source"`
	Status  SyncStatus `json:"status"`
	Message string     `json:"message"`
	Count   int        `json:"count"`
}

type SeedReport struct {
	Results        []SyncResult `json:"results"`
	InstagramCount int          `json:"instagramCount"`
	LinkedInCount  int          `json:"linkedinCount"`
}

type ScheduledSyncReport struct {
	Success   bool       `json:"success"`
	Instagram SyncResult `json:"instagram"`
	LinkedIn  SyncResult `json:"linkedin"`
	Seeded    bool       `json:"seeded"`
}

type FeedResult struct {
	Posts []Post `json:"posts"`
	Error string `json:"error,omitempty"`
}
