package model

import "time"

// User is a Telegram account that has opened the shop at least once.
type User struct {
	ID        int64     `db:"id"`
	Username  *string   `db:"username"`
	FirstName *string   `db:"first_name"`
	LastName  *string   `db:"last_name"`
	JoinedAt  time.Time `db:"joined_at"`
}
