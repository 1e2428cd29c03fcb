package models

import (
	"tiketku/src/types"
	"time"
)

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`

	types.Timestamps
}

type Event struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `json:"title,omitempty"`
	Slug        string     `gorm:"uniqueIndex" json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartDate   time.Time  `json:"start_date,omitempty"`
	EndDate     time.Time  `json:"end_date,omitempty"`
	IsFree      bool       `json:"is_free"`
	Thumbnail   *string    `json:"thumbnail,omitempty"`
	OrganizerID uint       `json:"organizer,omitempty"`
	CategoryID  *uint      `json:"category,omitempty"`

	Organizer   User         `gorm:"foreignKey:organizer_id" json:"-"`
	Category    *Category    `gorm:"foreignKey:category_id" json:"category_detail,omitempty"`
	TicketTypes []TicketType `gorm:"foreignKey:event_id" json:"ticket_types,omitempty"`
	Vouchers    []Voucher    `gorm:"foreignKey:event_id" json:"vouchers,omitempty"`

	types.Timestamps
}

// Ended reports whether the event is past its end date at t.
func (e *Event) Ended(t time.Time) bool {
	return t.After(e.EndDate)
}
