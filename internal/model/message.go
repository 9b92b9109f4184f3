package model

import (
	"time"
)

type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversationId"`
	Content        string    `db:"content" json:"content"`
	Sender         Sender    `db:"sender" json:"sender"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// SenderCount is one row of the grouped metrics aggregation.
type SenderCount struct {
	Sender Sender `db:"sender"`
	Count  int    `db:"count"`
}

// Metrics is the fixed-shape summary returned to the dashboard.
// Total is always the sum of the three categories.
type Metrics struct {
	Total  int `json:"total"`
	Client int `json:"client"`
	AI     int `json:"ai"`
	Human  int `json:"human"`
}

// DayCount is one point of the sparse messages-per-day series. Days with
// zero messages are omitted, so consumers must not assume contiguous days.
type DayCount struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"count" json:"count"`
}
