package model

import "time"

// Item is a catalog entry available for purchase requests.
type Item struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Mutation  string    `db:"mutation"`
	Price     int64     `db:"price"`
	Category  Category  `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

// NewItem holds the fields supplied when adding an item.
type NewItem struct {
	Name     string   `yaml:"name"`
	Mutation string   `yaml:"mutation"`
	Price    int64    `yaml:"price"`
	Category Category `yaml:"category"`
}
