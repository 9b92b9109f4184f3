package repository

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/database"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

type MessageRepository interface {
	ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error)
	CountBySender(ctx context.Context, from, to *time.Time) ([]model.SenderCount, error)
	CountPerDay(ctx context.Context, from, to time.Time) ([]model.DayCount, error)
}

type messageRepo struct {
	client *database.Client
}

func NewMessageRepository(client *database.Client) MessageRepository {
	return &messageRepo{client: client}
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, message list degraded to empty")
		return []model.Message{}, nil
	}

	msgs := []model.Message{}
	err = db.SelectContext(ctx, &msgs, `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY timestamp ASC
	`, conversationID)
	if err != nil {
		log.Warn().Err(err).Int64("conversationId", conversationID).Msg("message list failed, degraded to empty")
		return []model.Message{}, nil
	}
	return msgs, nil
}

// CountBySender groups message counts by sender inside an optional
// inclusive window. Senders with no messages produce no row.
func (r *messageRepo) CountBySender(ctx context.Context, from, to *time.Time) ([]model.SenderCount, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, metrics degraded to empty")
		return []model.SenderCount{}, nil
	}

	var predicates []string
	var args []interface{}
	if from != nil {
		args = append(args, *from)
		predicates = append(predicates, "timestamp >= $1")
	}
	if to != nil {
		args = append(args, *to)
		if len(args) == 2 {
			predicates = append(predicates, "timestamp <= $2")
		} else {
			predicates = append(predicates, "timestamp <= $1")
		}
	}

	query := `SELECT sender, COUNT(*) AS count FROM messages`
	if len(predicates) > 0 {
		query += " WHERE " + strings.Join(predicates, " AND ")
	}
	query += " GROUP BY sender"

	rows := []model.SenderCount{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Warn().Err(err).Msg("metrics query failed, degraded to empty")
		return []model.SenderCount{}, nil
	}
	return rows, nil
}

// CountPerDay buckets messages by calendar day (store-side truncation)
// inside an inclusive window, chronologically. Empty days are omitted.
func (r *messageRepo) CountPerDay(ctx context.Context, from, to time.Time) ([]model.DayCount, error) {
	db, err := r.client.Acquire(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, per-day series degraded to empty")
		return []model.DayCount{}, nil
	}

	rows := []model.DayCount{}
	err = db.SelectContext(ctx, &rows, `
		SELECT DATE(timestamp)::text AS date, COUNT(*) AS count
		FROM messages
		WHERE timestamp >= $1 AND timestamp <= $2
		GROUP BY DATE(timestamp)
		ORDER BY DATE(timestamp) ASC
	`, from, to)
	if err != nil {
		log.Warn().Err(err).Msg("per-day query failed, degraded to empty")
		return []model.DayCount{}, nil
	}
	return rows, nil
}
