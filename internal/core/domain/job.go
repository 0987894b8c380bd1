package domain

import "time"

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// Job types match the fixed filter set the listing UI exposes.
const (
	JobTypeFullTime   = "Full-Time"
	JobTypePartTime   = "Part-Time"
	JobTypeRemote     = "Remote"
	JobTypeInternship = "Internship"
)

// Job is a posting owned by an employer account. Required skills gate
// candidates; preferred skills only weigh into recommendations.
type Job struct {
	ID              string    `json:"id" bson:"_id"`
	EmployerID      string    `json:"employerId" bson:"employerId"`
	Title           string    `json:"title" bson:"title"`
	Type            string    `json:"type" bson:"type"`
	Description     string    `json:"description" bson:"description"`
	Location        string    `json:"location" bson:"location"`
	Salary          string    `json:"salary,omitempty" bson:"salary,omitempty"`
	RequiredSkills  []string  `json:"requiredSkills,omitempty" bson:"requiredSkills,omitempty"`
	PreferredSkills []string  `json:"preferredSkills,omitempty" bson:"preferredSkills,omitempty"`
	Status          JobStatus `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SkillMatchCount counts how many of the given skill ids appear in the
// job's required or preferred lists. A skill listed in both counts twice,
// weighting jobs that both require and prefer it.
func (j *Job) SkillMatchCount(skillIDs []string) int {
	if len(skillIDs) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(skillIDs))
	for _, id := range skillIDs {
		have[id] = struct{}{}
	}
	count := 0
	for _, id := range j.RequiredSkills {
		if _, ok := have[id]; ok {
			count++
		}
	}
	for _, id := range j.PreferredSkills {
		if _, ok := have[id]; ok {
			count++
		}
	}
	return count
}
