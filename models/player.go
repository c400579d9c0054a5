package models

import (
	"fmt"
	"time"
)

type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

// Address formats the player as an RFC 5322 mailbox, e.g. "Juan <juan@example.com>".
func (p Player) Address() string {
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}
