package models

type NotificationKind string

const (
	NotificationInvite       NotificationKind = "invite"
	NotificationStatus       NotificationKind = "status"
	NotificationJoin         NotificationKind = "join"
	NotificationLeave        NotificationKind = "leave"
	NotificationGuestAdded   NotificationKind = "guest_added"
	NotificationGuestRemoved NotificationKind = "guest_removed"
)

// Notification is one message for one recipient about a match.
// Actor is the player who joined, left or handled a guest; Guest is set
// for the guest kinds.
type Notification struct {
	Kind      NotificationKind
	Match     *Match
	Recipient Player
	Actor     *Player
	Guest     *Guest
}
