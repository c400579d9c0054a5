package repositories

import (
	"bytes"
	"context"
	"time"

	"github.com/Dosada05/futbol5/models"
	bolt "go.etcd.io/bbolt"
)

type boltPlayer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarKey *string   `json:"avatar_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (p boltPlayer) model() models.Player {
	return models.Player{ID: p.ID, Name: p.Name, Email: p.Email, AvatarKey: p.AvatarKey, CreatedAt: p.CreatedAt}
}

type boltPlayerRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltPlayerRepository(db *bolt.DB) PlayerRepository {
	return &boltPlayerRepository{db: db, now: time.Now}
}

func loadPlayer(tx *bolt.Tx, id int) (*models.Player, error) {
	var rec boltPlayer
	found, err := getJSON(tx.Bucket([]byte(bucketPlayers)), itob(id), &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPlayerNotFound
	}
	p := rec.model()
	return &p, nil
}

// claimUnique points index[key] at id, failing with conflict if another id holds it.
func claimUnique(index *bolt.Bucket, key string, id int, conflict error) error {
	if owner := index.Get([]byte(key)); owner != nil && btoi(owner) != id {
		return conflict
	}
	return index.Put([]byte(key), itob(id))
}

func (r *boltPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		players := tx.Bucket([]byte(bucketPlayers))
		names := tx.Bucket([]byte(bucketPlayerNames))
		emails := tx.Bucket([]byte(bucketPlayerEmails))

		if names.Get([]byte(player.Name)) != nil {
			return ErrPlayerNameConflict
		}
		if emails.Get([]byte(player.Email)) != nil {
			return ErrPlayerEmailConflict
		}

		seq, err := players.NextSequence()
		if err != nil {
			return err
		}
		rec := boltPlayer{ID: int(seq), Name: player.Name, Email: player.Email, AvatarKey: player.AvatarKey, CreatedAt: r.now()}
		if err := names.Put([]byte(rec.Name), itob(rec.ID)); err != nil {
			return err
		}
		if err := emails.Put([]byte(rec.Email), itob(rec.ID)); err != nil {
			return err
		}
		if err := putJSON(players, itob(rec.ID), rec); err != nil {
			return err
		}
		player.ID = rec.ID
		player.CreatedAt = rec.CreatedAt
		return nil
	})
}

func (r *boltPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	var player *models.Player
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		player, err = loadPlayer(tx, id)
		return err
	})
	return player, err
}

func (r *boltPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		// the name index iterates in name order
		return tx.Bucket([]byte(bucketPlayerNames)).ForEach(func(_, v []byte) error {
			p, err := loadPlayer(tx, btoi(v))
			if err != nil {
				return err
			}
			players = append(players, *p)
			return nil
		})
	})
	return players, err
}

func (r *boltPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadPlayer(tx, player.ID)
		if err != nil {
			return err
		}
		names := tx.Bucket([]byte(bucketPlayerNames))
		emails := tx.Bucket([]byte(bucketPlayerEmails))

		if err := claimUnique(names, player.Name, player.ID, ErrPlayerNameConflict); err != nil {
			return err
		}
		if err := claimUnique(emails, player.Email, player.ID, ErrPlayerEmailConflict); err != nil {
			return err
		}
		if current.Name != player.Name {
			if err := names.Delete([]byte(current.Name)); err != nil {
				return err
			}
		}
		if current.Email != player.Email {
			if err := emails.Delete([]byte(current.Email)); err != nil {
				return err
			}
		}

		rec := boltPlayer{ID: player.ID, Name: player.Name, Email: player.Email, AvatarKey: player.AvatarKey, CreatedAt: current.CreatedAt}
		player.CreatedAt = current.CreatedAt
		return putJSON(tx.Bucket([]byte(bucketPlayers)), itob(rec.ID), rec)
	})
}

func (r *boltPlayerRepository) Delete(ctx context.Context, id int) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadPlayer(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketPlayerNames)).Delete([]byte(current.Name)); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketPlayerEmails)).Delete([]byte(current.Email)); err != nil {
			return err
		}
		if err := deletePlayerSignups(tx, id); err != nil {
			return err
		}
		if err := deleteGuestsWhere(tx, func(g boltGuest) bool { return g.InvitingPlayerID == id }); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketPlayers)).Delete(itob(id))
	})
}

func deletePlayerSignups(tx *bolt.Tx, playerID int) error {
	b := tx.Bucket([]byte(bucketMatchPlayers))
	suffix := itob(playerID)

	var keys [][]byte
	err := b.ForEach(func(k, _ []byte) error {
		if bytes.Equal(k[8:], suffix) {
			keys = append(keys, append([]byte(nil), k...))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func (r *boltPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucketPlayers)).Stats().KeyN
		return nil
	})
	return count, err
}

func (r *boltPlayerRepository) GetTopPlayer(ctx context.Context) (*models.Player, error) {
	var top *models.Player
	err := r.db.View(func(tx *bolt.Tx) error {
		counts := make(map[int]int)
		err := tx.Bucket([]byte(bucketMatchPlayers)).ForEach(func(k, _ []byte) error {
			counts[btoi(k[8:])]++
			return nil
		})
		if err != nil {
			return err
		}

		bestID, bestCount := 0, -1
		// players iterate in id order, so the first maximum wins ties
		err = tx.Bucket([]byte(bucketPlayers)).ForEach(func(k, _ []byte) error {
			id := btoi(k)
			if counts[id] > bestCount {
				bestID, bestCount = id, counts[id]
			}
			return nil
		})
		if err != nil {
			return err
		}
		if bestCount < 0 {
			return ErrPlayerNotFound
		}
		top, err = loadPlayer(tx, bestID)
		return err
	})
	return top, err
}
