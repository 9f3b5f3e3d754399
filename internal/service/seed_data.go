package service

import (
	"time"

	"socialfeed/internal/models"
)

// SentinelPostID - единственный post_id, который удаляется перед заполнением
const SentinelPostID = "sample-1"

func placeholderPosts(now time.Time) map[models.Source][]models.Post {
	day := 24 * time.Hour
	now = now.UTC().Truncate(time.Hour)

	return map[models.Source][]models.Post{
		models.SourceInstagram: {
			{
				PostID:    SentinelPostID,
				Permalink: "https://www.instagram.com/p/sample-1/",
				ImageURL:  "https://images.unsplash.com/photo-1522071820081-009f0129c71c?w=800",
				Caption:   "Welcome to our community! Follow along for events, workshops and more.",
				Timestamp: now.Add(-1 * day),
			},
			{
				PostID:    "sample-2",
				Permalink: "https://www.instagram.com/p/sample-2/",
				ImageURL:  "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800",
				Caption:   "Highlights from our kickoff meetup.",
				Timestamp: now.Add(-3 * day),
			},
			{
				PostID:    "sample-3",
				Permalink: "https://www.instagram.com/p/sample-3/",
				ImageURL:  "https://images.unsplash.com/photo-1515187029135-18ee286d815b?w=800",
				Caption:   "Workshop night: building our first web app together.",
				Timestamp: now.Add(-7 * day),
			},
			{
				PostID:    "sample-4",
				Permalink: "https://www.instagram.com/p/sample-4/",
				ImageURL:  "https://images.unsplash.com/photo-1528605248644-14dd04022da1?w=800",
				Caption:   "",
				Timestamp: now.Add(-14 * day),
			},
		},
		models.SourceLinkedIn: {
			{
				PostID:    SentinelPostID,
				Permalink: "https://www.linkedin.com/feed/update/sample-1",
				Title:     "We are recruiting new team members",
				Summary:   "Applications for the upcoming semester are open. Join us to organize events and grow the community.",
				Timestamp: now.Add(-2 * day),
			},
			{
				PostID:    "sample-2",
				Permalink: "https://www.linkedin.com/feed/update/sample-2",
				Title:     "Recap: Industry panel",
				Summary:   "Thanks to our speakers for sharing their career paths with more than a hundred students.",
				Timestamp: now.Add(-6 * day),
			},
			{
				PostID:    "sample-3",
				Permalink: "https://www.linkedin.com/feed/update/sample-3",
				Title:     "Partnership announcement",
				Summary:   "",
				Timestamp: now.Add(-12 * day),
			},
		},
	}
}
