package contact

import (
	"context"
	"sort"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

type Repository interface {
	CreateSubmission(ctx context.Context, submission model.ContactSubmissionItem) error
	ListSubmissions(ctx context.Context, limit int) ([]model.ContactSubmissionItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateSubmission(ctx context.Context, submission model.ContactSubmissionItem) error {
	return r.db.Client.PutItem(ctx, model.ContactSubmissionsTable, submission)
}

func (r *DynamoRepository) ListSubmissions(ctx context.Context, limit int) ([]model.ContactSubmissionItem, error) {
	items, err := r.db.Client.ScanItems(ctx, model.ContactSubmissionsTable, int32(limit))
	if err != nil {
		return nil, err
	}

	submissions := make([]model.ContactSubmissionItem, 0, len(items))
	for _, item := range items {
		var submission model.ContactSubmissionItem
		if err := attributevalue.UnmarshalMap(item, &submission); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].CreatedAt > submissions[j].CreatedAt
	})
	return submissions, nil
}
