package domain

import "time"

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application links a developer to a job they applied to. One application
// per developer per job.
type Application struct {
	ID          string            `json:"id" bson:"_id"`
	JobID       string            `json:"jobId" bson:"jobId"`
	DeveloperID string            `json:"developerId" bson:"developerId"`
	CoverLetter string            `json:"coverLetter,omitempty" bson:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	AppliedAt   time.Time         `json:"appliedAt" bson:"appliedAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}
