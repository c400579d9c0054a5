package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/Dosada05/futbol5/models"
	bolt "go.etcd.io/bbolt"
)

type boltMatchPlayerRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltMatchPlayerRepository(db *bolt.DB) MatchPlayerRepository {
	return &boltMatchPlayerRepository{db: db, now: time.Now}
}

func (r *boltMatchPlayerRepository) Add(ctx context.Context, matchID, playerID int) (*models.MatchPlayer, error) {
	var mp *models.MatchPlayer
	err := r.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketMatches)).Get(itob(matchID)) == nil ||
			tx.Bucket([]byte(bucketPlayers)).Get(itob(playerID)) == nil {
			return ErrMatchOrPlayerNotFound
		}
		b := tx.Bucket([]byte(bucketMatchPlayers))
		key := pairKey(matchID, playerID)
		if b.Get(key) != nil {
			return ErrAlreadyJoined
		}
		mp = &models.MatchPlayer{MatchID: matchID, PlayerID: playerID, JoinDate: r.now()}
		return putJSON(b, key, mp)
	})
	if err != nil {
		return nil, err
	}
	return mp, nil
}

func (r *boltMatchPlayerRepository) Remove(ctx context.Context, matchID, playerID int) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMatchPlayers))
		key := pairKey(matchID, playerID)
		if b.Get(key) == nil {
			return ErrMatchPlayerNotFound
		}
		return b.Delete(key)
	})
}

func (r *boltMatchPlayerRepository) Exists(ctx context.Context, matchID, playerID int) (bool, error) {
	var exists bool
	err := r.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket([]byte(bucketMatchPlayers)).Get(pairKey(matchID, playerID)) != nil
		return nil
	})
	return exists, err
}

func (r *boltMatchPlayerRepository) ListPlayers(ctx context.Context, matchID int) ([]models.Player, error) {
	type signup struct {
		player   models.Player
		joinDate time.Time
	}
	var signups []signup

	err := r.db.View(func(tx *bolt.Tx) error {
		prefix := itob(matchID)
		c := tx.Bucket([]byte(bucketMatchPlayers)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var mp models.MatchPlayer
			if err := json.Unmarshal(v, &mp); err != nil {
				return err
			}
			p, err := loadPlayer(tx, mp.PlayerID)
			if err != nil {
				return err
			}
			signups = append(signups, signup{player: *p, joinDate: mp.JoinDate})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(signups, func(i, j int) bool {
		if !signups[i].joinDate.Equal(signups[j].joinDate) {
			return signups[i].joinDate.Before(signups[j].joinDate)
		}
		return signups[i].player.ID < signups[j].player.ID
	})

	players := make([]models.Player, 0, len(signups))
	for _, s := range signups {
		players = append(players, s.player)
	}
	return players, nil
}
