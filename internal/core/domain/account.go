package domain

import "time"

// Role is the closed set of actor kinds in the system. It is assigned at
// registration and never changes afterwards.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known role variants.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// Account is a registered identity together with its published profile.
// PasswordHash is never serialized; the json tag is the last line of
// defense on top of the Session projection.
type Account struct {
	ID           string `json:"id" bson:"_id"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Role         Role   `json:"role" bson:"role"`
	Company      string `json:"company,omitempty" bson:"company,omitempty"`
	Active       bool   `json:"active" bson:"active"`

	// Published profile fields. These are the only values other users see.
	About        string   `json:"about,omitempty" bson:"about,omitempty"`
	ProfilePhoto string   `json:"profilePhoto,omitempty" bson:"profilePhoto,omitempty"`
	Resume       string   `json:"resume,omitempty" bson:"resume,omitempty"`
	IntroVideo   string   `json:"introVideo,omitempty" bson:"introVideo,omitempty"`
	CompanyLogo  string   `json:"companyLogo,omitempty" bson:"companyLogo,omitempty"`
	Skills       []string `json:"skills,omitempty" bson:"skills,omitempty"`

	SavedJobs []string `json:"savedJobs,omitempty" bson:"savedJobs,omitempty"`

	// Draft is the pending, owner-only working copy. Its presence is the
	// authoritative "has a pending draft" signal.
	Draft *ProfileDraft `json:"draft,omitempty" bson:"draft,omitempty"`

	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
	PublishedAt time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
}

// Name returns the display name of the account.
func (a *Account) Name() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// HasDraft reports whether a non-empty pending draft exists.
func (a *Account) HasDraft() bool {
	return a.Draft != nil
}

// ProfileDraft holds unpublished profile edits. All fields mirror the
// published profile fields on Account.
type ProfileDraft struct {
	Name         string    `json:"name" bson:"name"`
	About        string    `json:"about" bson:"about"`
	ProfilePhoto string    `json:"profilePhoto" bson:"profilePhoto"`
	Resume       string    `json:"resume" bson:"resume"`
	IntroVideo   string    `json:"introVideo" bson:"introVideo"`
	CompanyLogo  string    `json:"companyLogo" bson:"companyLogo"`
	Skills       []string  `json:"skills" bson:"skills"`
	LastModified time.Time `json:"lastModified" bson:"lastModified"`
}

// Clone returns a deep copy of the draft.
func (d *ProfileDraft) Clone() *ProfileDraft {
	if d == nil {
		return nil
	}
	copy := *d
	if d.Skills != nil {
		copy.Skills = append([]string(nil), d.Skills...)
	}
	return &copy
}

// DraftFromPublished seeds a working draft from an account's published
// profile fields.
func DraftFromPublished(a *Account) *ProfileDraft {
	d := &ProfileDraft{
		Name:         a.Name(),
		About:        a.About,
		ProfilePhoto: a.ProfilePhoto,
		Resume:       a.Resume,
		IntroVideo:   a.IntroVideo,
		CompanyLogo:  a.CompanyLogo,
	}
	if a.Skills != nil {
		d.Skills = append([]string(nil), a.Skills...)
	}
	return d
}
