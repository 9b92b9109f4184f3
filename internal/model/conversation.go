package model

import (
	"time"
)

// Conversation is ingested from the external messaging channel and is
// read-only through this API.
type Conversation struct {
	ID            int64     `db:"id" json:"id"`
	ClientPhone   string    `db:"client_phone" json:"clientPhone"`
	ClientName    *string   `db:"client_name" json:"clientName,omitempty"`
	Channel       string    `db:"channel" json:"channel"`
	LastMessageAt time.Time `db:"last_message_at" json:"lastMessageAt"`
	MessageCount  int       `db:"message_count" json:"messageCount"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// ConversationFilter narrows a conversation listing. All fields are
// optional and AND-combined; bounds are inclusive on last_message_at.
type ConversationFilter struct {
	From   *time.Time
	To     *time.Time
	Search string
}
