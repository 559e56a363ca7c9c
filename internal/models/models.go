package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string         `json:"userId" db:"user_id"`
	UserType               string         `json:"userType" db:"user_type"`
	Name                   string         `json:"name" db:"name"`
	Phone                  string         `json:"phone" db:"phone"`
	Email                  string         `json:"email" db:"email"`
	PasswordHash           string         `json:"-" db:"password_hash"`
	Rating                 float64        `json:"rating" db:"rating"`
	Professions            pq.StringArray `json:"professions" db:"professions"`
	Specialties            pq.StringArray `json:"specialties" db:"specialties"`
	CompanyName            string         `json:"companyName" db:"company_name"`
	ProfileCompleted       bool           `json:"profileCompleted" db:"profile_completed"`
	RefreshToken           string         `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time      `json:"-" db:"refresh_token_expiry_time"`
	ResetToken             *string        `json:"-" db:"reset_token"`
	ResetTokenExpiryTime   *time.Time     `json:"-" db:"reset_token_expiry_time"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
}

// HasProfession reports whether name matches one of the user's declared
// professions, case-insensitively.
func (u *User) HasProfession(name string) bool {
	for _, p := range u.Professions {
		if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

type Post struct {
	PostID           string      `json:"postId" db:"post_id"`
	ContractorID     string      `json:"contractorId" db:"contractor_id"`
	Title            string      `json:"title" db:"title"`
	Description      string      `json:"description" db:"description"`
	Specialty        string      `json:"specialty" db:"specialty"`
	Location         string      `json:"location" db:"location"`
	Status           PostStatus  `json:"status" db:"status"`
	AssignedWorkerID *string     `json:"assignedWorkerId" db:"assigned_worker_id"`
	BudgetMin        float64     `json:"budgetMin" db:"budget_min"`
	BudgetMax        float64     `json:"budgetMax" db:"budget_max"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	CompletedAt      *time.Time  `json:"completedAt" db:"completed_at"`
	Images           []PostImage `json:"images" db:"-"`
}

type PostImage struct {
	ImageID    string    `json:"imageId" db:"image_id"`
	PostID     string    `json:"postId" db:"post_id"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	OrderIndex int       `json:"orderIndex" db:"order_index"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type PostApplication struct {
	ApplicationID           string            `json:"applicationId" db:"application_id"`
	PostID                  string            `json:"postId" db:"post_id"`
	WorkerID                string            `json:"workerId" db:"worker_id"`
	Message                 string            `json:"message" db:"message"`
	ProposedCost            float64           `json:"proposedCost" db:"proposed_cost"`
	EstimatedCompletionTime string            `json:"estimatedCompletionTime" db:"estimated_completion_time"`
	Status                  ApplicationStatus `json:"status" db:"status"`
	AppliedAt               time.Time         `json:"appliedAt" db:"applied_at"`

	// Filled when listing applicants for a post.
	WorkerName   string  `json:"workerName,omitempty" db:"worker_name"`
	WorkerRating float64 `json:"workerRating,omitempty" db:"worker_rating"`
}

type ActiveProject struct {
	ProjectID          string        `json:"projectId" db:"project_id"`
	PostID             string        `json:"postId" db:"post_id"`
	ContractorID       string        `json:"contractorId" db:"contractor_id"`
	WorkerID           string        `json:"workerId" db:"worker_id"`
	ApplicationID      string        `json:"applicationId" db:"application_id"`
	Status             ProjectStatus `json:"status" db:"status"`
	ProgressPercentage int           `json:"progressPercentage" db:"progress_percentage"`
	Stage1Photo        *string       `json:"stage1Photo" db:"stage_1_photo"`
	Stage2Photo        *string       `json:"stage2Photo" db:"stage_2_photo"`
	Stage3Photo        *string       `json:"stage3Photo" db:"stage_3_photo"`
	Stage1UploadedAt   *time.Time    `json:"stage1UploadedAt" db:"stage_1_uploaded_at"`
	Stage2UploadedAt   *time.Time    `json:"stage2UploadedAt" db:"stage_2_uploaded_at"`
	Stage3UploadedAt   *time.Time    `json:"stage3UploadedAt" db:"stage_3_uploaded_at"`
	AcceptedAt         time.Time     `json:"acceptedAt" db:"accepted_at"`
	StartedAt          *time.Time    `json:"startedAt" db:"started_at"`
	CompletedAt        *time.Time    `json:"completedAt" db:"completed_at"`
}

// NumStages is the fixed number of photographic milestones per project.
const NumStages = 3

// StagePhoto returns the photo URL for stage k (1..3), or nil.
func (p *ActiveProject) StagePhoto(k int) *string {
	switch k {
	case 1:
		return p.Stage1Photo
	case 2:
		return p.Stage2Photo
	case 3:
		return p.Stage3Photo
	}
	return nil
}

// CurrentStage counts contiguous completed stages starting from stage 1.
// Photos may be uploaded out of order; a stage 3 photo with no stage 2
// photo does not count until stage 2 is filled in. Stored photos are
// never discarded either way.
func (p *ActiveProject) CurrentStage() int {
	stage := 0
	for k := 1; k <= NumStages; k++ {
		if p.StagePhoto(k) == nil {
			break
		}
		stage = k
	}
	return stage
}

type WorkerReview struct {
	ReviewID            string    `json:"reviewId" db:"review_id"`
	WorkerID            string    `json:"workerId" db:"worker_id"`
	ContractorID        string    `json:"contractorId" db:"contractor_id"`
	PostID              string    `json:"postId" db:"post_id"`
	ProjectID           string    `json:"projectId" db:"project_id"`
	Rating              int       `json:"rating" db:"rating"`
	Comment             string    `json:"comment" db:"comment"`
	PunctualityRating   int       `json:"punctualityRating" db:"punctuality_rating"`
	QualityRating       int       `json:"qualityRating" db:"quality_rating"`
	PriceRating         int       `json:"priceRating" db:"price_rating"`
	CommunicationRating int       `json:"communicationRating" db:"communication_rating"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
}

// AverageRating computes the arithmetic mean of the given ratings rounded
// to one decimal place. Returns 0 for an empty slice.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return float64(int(avg*10+0.5)) / 10
}

type Notification struct {
	NotificationID string     `json:"notificationId" db:"notification_id"`
	UserID         string     `json:"userId" db:"user_id"`
	Type           string     `json:"type" db:"type"`
	Title          string     `json:"title" db:"title"`
	Message        string     `json:"message" db:"message"`
	RelatedID      string     `json:"relatedId" db:"related_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	ReadAt         *time.Time `json:"readAt" db:"read_at"`
}
