package models

type DashboardStats struct {
	MatchCount  int     `json:"match_count"`
	PlayerCount int     `json:"player_count"`
	TopPlayer   *Player `json:"top_player,omitempty"`
	NextMatch   *Match  `json:"next_match,omitempty"`
}
