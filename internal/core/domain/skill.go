package domain

// Skill is a shared catalog entry. Profiles reference skills by id and
// resolve names and categories through the catalog.
type Skill struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}
