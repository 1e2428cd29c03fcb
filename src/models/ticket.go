package models

import (
	"tiketku/src/types"
)

type TicketType struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	EventID     uint    `json:"event_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       int     `json:"price"`
	Total       int     `json:"total"`
	Available   int     `json:"available"`

	Event Event `json:"event,omitempty"`

	types.Timestamps
}

// Sold is the number of seats currently held by non-released transactions.
func (t *TicketType) Sold() int {
	return t.Total - t.Available
}
