package domain

import "time"

// DefaultProviderPic is the cover image key assigned to providers that have
// not uploaded one yet.
const DefaultProviderPic = "default.png"

// Provider is a bookable service location (a clinic, a venue, ...).
// Name is unique across all providers.
type Provider struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Tel         string    `json:"tel,omitempty" bson:"tel,omitempty"`
	// Images holds opaque object-storage keys, in upload order.
	Images    []string  `json:"images" bson:"images"`
	Pic       string    `json:"pic" bson:"pic"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
