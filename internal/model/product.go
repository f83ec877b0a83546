package model

import "time"

// Product is one catalog row. ID is the opaque numeric identity used by the
// order tables; ItemNumber is the human-facing code printed on packaging and
// embedded in project notes.
type Product struct {
	ID           int64     `db:"id" json:"id"`
	ItemNumber   string    `db:"item_number" json:"item_number"`
	Name         string    `db:"name" json:"name"`
	ShortDesc    *string   `db:"short_description" json:"short_description"`
	GrossPrice   *float64  `db:"gross_price" json:"gross_price"`
	Availability bool      `db:"availability" json:"availability"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
