package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

const accountCollection = "accounts"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash"`
	Role               string             `bson:"role"`
	Name               string             `bson:"name"`
	Location           domain.Location    `bson:"location"`
	ProfilePicture     string             `bson:"profile_picture,omitempty"`
	ProfileComplete    int                `bson:"profile_complete"`
	BusinessType       string             `bson:"business_type,omitempty"`
	CompanyName        string             `bson:"company_name,omitempty"`
	CompanyDescription string             `bson:"company_description,omitempty"`
	Website            string             `bson:"website,omitempty"`
	Industry           string             `bson:"industry,omitempty"`
	OrderHistory       []string           `bson:"order_history,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Email:              account.Email,
		PasswordHash:       account.PasswordHash,
		Role:               account.Role,
		Name:               account.Name,
		Location:           account.Location,
		ProfilePicture:     account.ProfilePicture,
		ProfileComplete:    account.ProfileComplete,
		BusinessType:       account.BusinessType,
		CompanyName:        account.CompanyName,
		CompanyDescription: account.CompanyDescription,
		Website:            account.Website,
		Industry:           account.Industry,
		CreatedAt:          account.CreatedAt,
		UpdatedAt:          account.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, update ports.AccountUpdate) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setIfString(set, "name", update.Name)
	setIfString(set, "profile_picture", update.ProfilePicture)
	setIfString(set, "password_hash", update.PasswordHash)
	setIfString(set, "business_type", update.BusinessType)
	setIfString(set, "company_name", update.CompanyName)
	setIfString(set, "company_description", update.CompanyDescription)
	setIfString(set, "website", update.Website)
	setIfString(set, "industry", update.Industry)
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.ProfileComplete != nil {
		set["profile_complete"] = *update.ProfileComplete
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ma mongoAccount
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AccountRepository) AppendOrder(ctx context.Context, id, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"order_history": orderID}})
	if err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index. Concurrent duplicate signups
// are resolved here: the second insert fails and surfaces as ErrEmailExists.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (ma *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:                 ma.ID.Hex(),
		Email:              ma.Email,
		PasswordHash:       ma.PasswordHash,
		Role:               ma.Role,
		Name:               ma.Name,
		Location:           ma.Location,
		ProfilePicture:     ma.ProfilePicture,
		ProfileComplete:    ma.ProfileComplete,
		BusinessType:       ma.BusinessType,
		CompanyName:        ma.CompanyName,
		CompanyDescription: ma.CompanyDescription,
		Website:            ma.Website,
		Industry:           ma.Industry,
		OrderHistory:       ma.OrderHistory,
		CreatedAt:          ma.CreatedAt.UTC(),
		UpdatedAt:          ma.UpdatedAt.UTC(),
	}
}

func setIfString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}
