package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devhire/jobboard/internal/core/domain"
)

const accountCollection = "users"

// AccountRepository persists accounts (with their nested profile drafts)
// in MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

// FindByEmail is an exact-match lookup; email comparison is
// case-sensitive.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []*domain.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": account.ID}, account)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SaveDraft(ctx context.Context, id string, draft *domain.ProfileDraft) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"draft": draft}})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ClearDraft(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{"draft": ""}})
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// PublishDraft promotes the draft content into the published profile
// fields and removes the draft object in a single update, so a reader
// never observes the draft applied but not cleared.
func (r *AccountRepository) PublishDraft(ctx context.Context, id string, draft *domain.ProfileDraft) (*domain.Account, error) {
	now := time.Now().UTC()
	first, last := splitName(draft.Name)

	set := bson.M{
		"firstName":    first,
		"lastName":     last,
		"about":        draft.About,
		"profilePhoto": draft.ProfilePhoto,
		"resume":       draft.Resume,
		"introVideo":   draft.IntroVideo,
		"companyLogo":  draft.CompanyLogo,
		"updatedAt":    now,
		"publishedAt":  now,
	}
	if draft.Skills != nil {
		set["skills"] = draft.Skills
	}

	update := bson.M{"$set": set, "$unset": bson.M{"draft": ""}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account domain.Account
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("publish draft: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) SetSavedJobs(ctx context.Context, id string, jobIDs []string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"savedJobs": jobIDs}})
	if err != nil {
		return fmt.Errorf("set saved jobs: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// splitName maps a display name back onto first/last name fields.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}
