package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devhire/jobboard/internal/core/domain"
)

const skillCollection = "skills"

// SkillRepository reads the shared skill catalog from MongoDB.
type SkillRepository struct {
	coll *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{coll: db.Collection(skillCollection)}
}

func (r *SkillRepository) List(ctx context.Context) ([]*domain.Skill, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer cur.Close(ctx)

	var skills []*domain.Skill
	if err := cur.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return skills, nil
}

func (r *SkillRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Skill, error) {
	if len(ids) == 0 {
		return []*domain.Skill{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	defer cur.Close(ctx)

	var skills []*domain.Skill
	if err := cur.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return skills, nil
}
