package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"katador_backend/internal/models"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

const colAccounts = "accounts"

// AccountRepository — credential store: авторитетное хранилище
// идентичности. Email нормализуется к нижнему регистру на записи и поиске.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
}

type AccountRepositoryImpl struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) AccountRepository {
	return &AccountRepositoryImpl{col: db.Collection(colAccounts)}
}

// EnsureAccountIndexes создает уникальный индекс по email.
// Уникальность email держится на этом индексе, а не на
// предварительной проверке: проверка до вставки лишь закрывает
// типовой путь без гонки.
func EnsureAccountIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(colAccounts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.col.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	var account models.Account
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *models.Account) error {
	if account.ID.IsZero() {
		account.ID = bson.NewObjectID()
	}
	account.Email = normalizeEmail(account.Email)
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *AccountRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrAccountNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
