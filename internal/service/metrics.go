package service

import (
	"context"
	"time"

	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
)

type MetricsService struct {
	messageRepo repository.MessageRepository
}

func NewMetricsService(messageRepo repository.MessageRepository) *MetricsService {
	return &MetricsService{messageRepo: messageRepo}
}

// Summary shapes the grouped sender counts into the fixed dashboard
// summary. Senders absent from the window stay at zero and the total is
// always the sum of the three categories.
func (s *MetricsService) Summary(ctx context.Context, from, to *time.Time) (*model.Metrics, error) {
	rows, err := s.messageRepo.CountBySender(ctx, from, to)
	if err != nil {
		return nil, err
	}

	metrics := &model.Metrics{}
	for _, row := range rows {
		metrics.Total += row.Count
		switch row.Sender {
		case model.SenderClient:
			metrics.Client = row.Count
		case model.SenderAI:
			metrics.AI = row.Count
		case model.SenderHuman:
			metrics.Human = row.Count
		}
	}
	return metrics, nil
}

// PerDay returns the sparse messages-per-day series for an inclusive
// window; both bounds are required.
func (s *MetricsService) PerDay(ctx context.Context, from, to time.Time) ([]model.DayCount, error) {
	return s.messageRepo.CountPerDay(ctx, from, to)
}
