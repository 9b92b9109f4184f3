package model

import (
	"time"
)

// User is a dashboard operator identified by the canonical
// "provider|subjectId" open id issued during the OAuth exchange.
type User struct {
	ID           int64     `db:"id" json:"id"`
	OpenID       string    `db:"open_id" json:"openId"`
	Name         *string   `db:"name" json:"name,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	LoginMethod  *string   `db:"login_method" json:"loginMethod,omitempty"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
	LastSignedIn time.Time `db:"last_signed_in" json:"lastSignedIn"`
}

type UpsertUserParams struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *Role
	LastSignedIn *time.Time
}
