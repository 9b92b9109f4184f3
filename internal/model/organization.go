package model

import (
	"time"
)

// Organization is a tenant record holding credentials to an external
// backing store. StoreKey and APIKey are opaque secrets; their format is
// not validated and they are encrypted at rest when an encryption key is
// configured.
type Organization struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StoreURL  string    `db:"store_url" json:"storeUrl"`
	StoreKey  string    `db:"store_key" json:"storeKey"`
	APIKey    *string   `db:"api_key" json:"apiKey,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type OrganizationParams struct {
	Name     string
	StoreURL string
	StoreKey string
	APIKey   *string
}
