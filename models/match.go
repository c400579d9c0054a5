package models

import "time"

type Match struct {
	ID        int       `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date"`
	Place     string    `json:"place" db:"place"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Players     []Player `json:"players,omitempty" db:"-"`
	Guests      []Guest  `json:"guests,omitempty" db:"-"`
	PlayerCount int      `json:"player_count" db:"-"`
}

// MatchPlayer is a player's sign-up for a match.
type MatchPlayer struct {
	MatchID  int       `json:"match_id" db:"match_id"`
	PlayerID int       `json:"player_id" db:"player_id"`
	JoinDate time.Time `json:"join_date" db:"join_date"`
}

// IsPlayed reports whether the match date is not in the future relative to now.
func (m *Match) IsPlayed(now time.Time) bool {
	return !m.Date.After(now)
}

func (m *Match) HasPlayer(playerID int) bool {
	for _, p := range m.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (m *Match) CanJoin(playerID int, now time.Time) bool {
	return !m.IsPlayed(now) && !m.HasPlayer(playerID)
}

func (m *Match) CanLeave(playerID int, now time.Time) bool {
	return !m.IsPlayed(now) && m.HasPlayer(playerID)
}

// CountPlayers refreshes PlayerCount from the loaded players and guests.
func (m *Match) CountPlayers() int {
	m.PlayerCount = len(m.Players) + len(m.Guests)
	return m.PlayerCount
}
