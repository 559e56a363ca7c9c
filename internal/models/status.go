package models

import "strings"

// Closed status enumerations. The legacy store kept these as free-form
// strings with inconsistent casing ('Pending' vs 'pending', null meaning
// open); every value read from the database must pass through the
// Normalize* functions so the rest of the code only ever sees these
// constants.

type PostStatus string

const (
	PostOpen       PostStatus = "open"
	PostInProgress PostStatus = "in_progress"
	PostCompleted  PostStatus = "completed"
)

// NormalizePostStatus maps a raw stored value to a PostStatus. Empty,
// 'open' and the legacy 'Pending' all mean open.
func NormalizePostStatus(raw string) PostStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in_progress":
		return PostInProgress
	case "completed":
		return PostCompleted
	default:
		return PostOpen
	}
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func NormalizeApplicationStatus(raw string) ApplicationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accepted":
		return ApplicationAccepted
	case "rejected":
		return ApplicationRejected
	default:
		return ApplicationPending
	}
}

type ProjectStatus string

const (
	ProjectAssigned   ProjectStatus = "assigned"
	ProjectStarted    ProjectStatus = "started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectPaid       ProjectStatus = "paid"
)

var projectStatusOrder = map[ProjectStatus]int{
	ProjectAssigned:   0,
	ProjectStarted:    1,
	ProjectInProgress: 2,
	ProjectCompleted:  3,
	ProjectPaid:       4,
}

func NormalizeProjectStatus(raw string) ProjectStatus {
	s := ProjectStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := projectStatusOrder[s]; ok {
		return s
	}
	return ProjectAssigned
}

// CanAdvanceTo reports whether moving from s to next is a forward step.
// Project status only moves forward, never back.
func (s ProjectStatus) CanAdvanceTo(next ProjectStatus) bool {
	from, ok1 := projectStatusOrder[s]
	to, ok2 := projectStatusOrder[next]
	return ok1 && ok2 && to > from
}

// User roles.
const (
	UserTypeWorker     = "worker"
	UserTypeContractor = "contractor"
)

// Notification types, one per workflow transition.
const (
	NotificationNewJob              = "new_job"
	NotificationApplicationReceived = "application_received"
	NotificationApplicationAccepted = "application_accepted"
	NotificationApplicationRejected = "application_rejected"
	NotificationReviewReceived      = "review_received"
	NotificationProfileViewed       = "profile_viewed"
)
