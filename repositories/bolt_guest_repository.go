package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/Dosada05/futbol5/models"
	bolt "go.etcd.io/bbolt"
)

type boltGuest struct {
	ID               int       `json:"id"`
	MatchID          int       `json:"match_id"`
	InvitingPlayerID int       `json:"inviting_player_id"`
	Name             string    `json:"name"`
	InvitingDate     time.Time `json:"inviting_date"`
}

func (g boltGuest) model() models.Guest {
	return models.Guest{
		ID:               g.ID,
		MatchID:          g.MatchID,
		InvitingPlayerID: g.InvitingPlayerID,
		Name:             g.Name,
		InvitingDate:     g.InvitingDate,
	}
}

type boltGuestRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltGuestRepository(db *bolt.DB) GuestRepository {
	return &boltGuestRepository{db: db, now: time.Now}
}

func (r *boltGuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketMatches)).Get(itob(guest.MatchID)) == nil ||
			tx.Bucket([]byte(bucketPlayers)).Get(itob(guest.InvitingPlayerID)) == nil {
			return ErrMatchOrPlayerNotFound
		}
		guests := tx.Bucket([]byte(bucketGuests))
		keys := tx.Bucket([]byte(bucketGuestKeys))

		key := guestKey(guest.MatchID, guest.InvitingPlayerID, guest.Name)
		if keys.Get(key) != nil {
			return ErrGuestConflict
		}

		seq, err := guests.NextSequence()
		if err != nil {
			return err
		}
		rec := boltGuest{
			ID:               int(seq),
			MatchID:          guest.MatchID,
			InvitingPlayerID: guest.InvitingPlayerID,
			Name:             guest.Name,
			InvitingDate:     r.now(),
		}
		if err := keys.Put(key, itob(rec.ID)); err != nil {
			return err
		}
		if err := putJSON(guests, itob(rec.ID), rec); err != nil {
			return err
		}
		guest.ID = rec.ID
		guest.InvitingDate = rec.InvitingDate
		return nil
	})
}

func (r *boltGuestRepository) GetByID(ctx context.Context, id int) (*models.Guest, error) {
	var guest *models.Guest
	err := r.db.View(func(tx *bolt.Tx) error {
		var rec boltGuest
		found, err := getJSON(tx.Bucket([]byte(bucketGuests)), itob(id), &rec)
		if err != nil {
			return err
		}
		if !found {
			return ErrGuestNotFound
		}
		g := rec.model()
		guest = &g
		return nil
	})
	return guest, err
}

func (r *boltGuestRepository) Delete(ctx context.Context, id int) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		var rec boltGuest
		found, err := getJSON(tx.Bucket([]byte(bucketGuests)), itob(id), &rec)
		if err != nil {
			return err
		}
		if !found {
			return ErrGuestNotFound
		}
		return deleteGuestsWhere(tx, func(g boltGuest) bool { return g.ID == id })
	})
}

func (r *boltGuestRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Guest, error) {
	guests := make([]models.Guest, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketGuests)).ForEach(func(_, v []byte) error {
			var rec boltGuest
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if rec.MatchID != matchID {
				return nil
			}
			g := rec.model()
			p, err := loadPlayer(tx, rec.InvitingPlayerID)
			if err != nil {
				return err
			}
			g.InvitingPlayer = p
			guests = append(guests, g)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(guests, func(i, j int) bool {
		if !guests[i].InvitingDate.Equal(guests[j].InvitingDate) {
			return guests[i].InvitingDate.Before(guests[j].InvitingDate)
		}
		return guests[i].ID < guests[j].ID
	})
	return guests, nil
}

// deleteGuestsWhere removes matching guests together with their unique keys.
func deleteGuestsWhere(tx *bolt.Tx, match func(boltGuest) bool) error {
	guests := tx.Bucket([]byte(bucketGuests))
	keys := tx.Bucket([]byte(bucketGuestKeys))

	var doomed []boltGuest
	err := guests.ForEach(func(_, v []byte) error {
		var rec boltGuest
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		if match(rec) {
			doomed = append(doomed, rec)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, g := range doomed {
		if err := keys.Delete(guestKey(g.MatchID, g.InvitingPlayerID, g.Name)); err != nil {
			return err
		}
		if err := guests.Delete(itob(g.ID)); err != nil {
			return err
		}
	}
	return nil
}
