package service

import (
	"context"

	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
)

type ConversationService struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
}

func NewConversationService(convRepo repository.ConversationRepository, messageRepo repository.MessageRepository) *ConversationService {
	return &ConversationService{convRepo: convRepo, messageRepo: messageRepo}
}

func (s *ConversationService) List(ctx context.Context, filter model.ConversationFilter) ([]model.Conversation, error) {
	return s.convRepo.List(ctx, filter)
}

// Messages returns the chronological message history of one conversation.
func (s *ConversationService) Messages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	return s.messageRepo.ListByConversation(ctx, conversationID)
}
