package chatlog

import (
	"context"
	"sort"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Repository interface {
	CreateLog(ctx context.Context, entry model.ChatLogItem) error
	ListLogs(ctx context.Context, conversationID string, limit int) ([]model.ChatLogItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateLog(ctx context.Context, entry model.ChatLogItem) error {
	return r.db.Client.PutItem(ctx, model.ChatLogsTable, entry)
}

func (r *DynamoRepository) ListLogs(ctx context.Context, conversationID string, limit int) ([]model.ChatLogItem, error) {
	var (
		items []map[string]types.AttributeValue
		err   error
	)

	if conversationID != "" {
		items, err = r.db.Client.QueryItems(
			ctx,
			model.ChatLogsTable,
			aws.String("byConversation"),
			"conversationId = :conversationId",
			map[string]types.AttributeValue{
				":conversationId": &types.AttributeValueMemberS{Value: conversationID},
			},
			int32(limit),
		)
	} else {
		items, err = r.db.Client.ScanItems(ctx, model.ChatLogsTable, int32(limit))
	}
	if err != nil {
		return nil, err
	}

	logs := make([]model.ChatLogItem, 0, len(items))
	for _, item := range items {
		var entry model.ChatLogItem
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].CreatedAt > logs[j].CreatedAt
	})
	return logs, nil
}
