package events

import "servicapp/internal/models"

// Workflow events published by the services after their writes commit.
// The notification dispatcher subscribes to all of them; anything else
// that needs to react to workflow transitions (list refresh, future
// realtime push) subscribes to the same bus instead of inventing a
// side channel.

const (
	TopicPostCreated         = "post.created"
	TopicPostsUpdated        = "posts.updated"
	TopicApplicationReceived = "application.received"
	TopicApplicationResolved = "application.resolved"
	TopicReviewSubmitted     = "review.submitted"
	TopicProfileViewed       = "profile.viewed"
)

type Event interface {
	Topic() string
}

// PostCreated carries the new post plus the completed worker profiles
// whose professions matched its specialty.
type PostCreated struct {
	Post           models.Post
	MatchedWorkers []models.User
}

func (PostCreated) Topic() string { return TopicPostCreated }

// PostsUpdated signals that a contractor's post list changed (a project
// was closed, a post deleted) and any cached view should re-fetch.
type PostsUpdated struct {
	ContractorID string
	PostID       string
}

func (PostsUpdated) Topic() string { return TopicPostsUpdated }

type ApplicationReceived struct {
	Application models.PostApplication
	Post        models.Post
	WorkerName  string
}

func (ApplicationReceived) Topic() string { return TopicApplicationReceived }

// ApplicationResolved is published once per application that left the
// pending state, including the siblings auto-rejected by an acceptance.
type ApplicationResolved struct {
	Application models.PostApplication
	Post        models.Post
	Accepted    bool
}

func (ApplicationResolved) Topic() string { return TopicApplicationResolved }

type ReviewSubmitted struct {
	Review    models.WorkerReview
	NewRating float64
}

func (ReviewSubmitted) Topic() string { return TopicReviewSubmitted }

type ProfileViewed struct {
	WorkerID   string
	ViewerID   string
	ViewerName string
}

func (ProfileViewed) Topic() string { return TopicProfileViewed }
