package auth

import (
	"context"
	"errors"
	"strings"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("auth repository: not found")

type Repository interface {
	GetAdmin(ctx context.Context, email string) (model.AdminUserItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetAdmin(ctx context.Context, email string) (model.AdminUserItem, error) {
	var admin model.AdminUserItem
	err := r.db.Client.GetItem(
		ctx,
		model.AdminUsersTable,
		map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		&admin,
	)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return model.AdminUserItem{}, ErrNotFound
		}
		return model.AdminUserItem{}, err
	}
	return admin, nil
}
