package utils

import (
	"fmt"
	"net/url"
	"strings"
)

func MatchURL(matchID int, playerID *int) string {
	u := fmt.Sprintf("/matches/%d/", matchID)
	if playerID != nil {
		u += "?" + url.Values{"player_id": {fmt.Sprint(*playerID)}}.Encode()
	}
	return u
}

func JoinMatchURL(matchID, playerID int) string {
	return fmt.Sprintf("/matches/%d/join/%d/", matchID, playerID)
}

func LeaveMatchURL(matchID, playerID int) string {
	return fmt.Sprintf("/matches/%d/leave/%d/", matchID, playerID)
}

func AddGuestURL(matchID int) string {
	return fmt.Sprintf("/matches/%d/addguest/", matchID)
}

func RemoveGuestURL(guestID int) string {
	return fmt.Sprintf("/removeguest/%d/", guestID)
}

// AbsoluteURL joins a site-relative path onto baseURL.
func AbsoluteURL(baseURL, relative string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(relative, "/")
}
