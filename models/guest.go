package models

import "time"

// Guest is a non-registered person brought to a match by a player.
type Guest struct {
	ID               int       `json:"id" db:"id"`
	MatchID          int       `json:"match_id" db:"match_id"`
	InvitingPlayerID int       `json:"inviting_player_id" db:"inviting_player_id"`
	Name             string    `json:"name" db:"name"`
	InvitingDate     time.Time `json:"inviting_date" db:"inviting_date"`

	InvitingPlayer *Player `json:"inviting_player,omitempty" db:"-"`
}
