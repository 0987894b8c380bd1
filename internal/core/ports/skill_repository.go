package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// SkillRepository exposes the shared skill catalog.
type SkillRepository interface {
	List(ctx context.Context) ([]*domain.Skill, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Skill, error)
}
