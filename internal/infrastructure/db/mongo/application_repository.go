package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devhire/jobboard/internal/core/domain"
)

const applicationCollection = "applications"

// ApplicationRepository persists job applications in MongoDB.
type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(applicationCollection)}
}

// EnsureIndexes creates the one-application-per-developer-per-job unique
// index. Call once at startup.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "jobId", Value: 1}, {Key: "developerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create application index: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndDeveloper(ctx context.Context, jobID, developerID string) (*domain.Application, error) {
	var app domain.Application
	err := r.coll.FindOne(ctx, bson.M{"jobId": jobID, "developerId": developerID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"developerId": developerID})
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"jobId": jobID})
}

func (r *ApplicationRepository) list(ctx context.Context, query bson.M) ([]*domain.Application, error) {
	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []*domain.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var app domain.Application
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("update application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}
