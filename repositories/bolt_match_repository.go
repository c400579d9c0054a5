package repositories

import (
	"bytes"
	"context"
	"time"

	"github.com/Dosada05/futbol5/models"
	bolt "go.etcd.io/bbolt"
)

type boltMatch struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	Place     string    `json:"place"`
	CreatedAt time.Time `json:"created_at"`
}

func (m boltMatch) model() models.Match {
	return models.Match{ID: m.ID, Date: m.Date, Place: m.Place, CreatedAt: m.CreatedAt}
}

type boltMatchRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltMatchRepository(db *bolt.DB) MatchRepository {
	return &boltMatchRepository{db: db, now: time.Now}
}

func loadMatch(tx *bolt.Tx, id int) (*models.Match, error) {
	var rec boltMatch
	found, err := getJSON(tx.Bucket([]byte(bucketMatches)), itob(id), &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMatchNotFound
	}
	m := rec.model()
	return &m, nil
}

// Create checks and inserts inside one write transaction; bbolt serializes
// writers, so two concurrent creates for the same date cannot both succeed.
func (r *boltMatchRepository) Create(ctx context.Context, match *models.Match) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		matches := tx.Bucket([]byte(bucketMatches))
		dates := tx.Bucket([]byte(bucketMatchDates))

		key := dateKey(match.Date)
		if dates.Get(key) != nil {
			return ErrDuplicateMatch
		}

		seq, err := matches.NextSequence()
		if err != nil {
			return err
		}
		rec := boltMatch{ID: int(seq), Date: match.Date, Place: match.Place, CreatedAt: r.now()}
		if err := dates.Put(key, itob(rec.ID)); err != nil {
			return err
		}
		if err := putJSON(matches, itob(rec.ID), rec); err != nil {
			return err
		}
		match.ID = rec.ID
		match.CreatedAt = rec.CreatedAt
		return nil
	})
}

func (r *boltMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	var match *models.Match
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		match, err = loadMatch(tx, id)
		return err
	})
	return match, err
}

func (r *boltMatchRepository) GetByDate(ctx context.Context, date time.Time) (*models.Match, error) {
	var match *models.Match
	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketMatchDates)).Get(dateKey(date))
		if id == nil {
			return ErrMatchNotFound
		}
		var err error
		match, err = loadMatch(tx, btoi(id))
		return err
	})
	return match, err
}

func (r *boltMatchRepository) NextAfter(ctx context.Context, from time.Time) (*models.Match, error) {
	var match *models.Match
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketMatchDates)).Cursor()
		fromKey := dateKey(from)
		k, v := c.Seek(fromKey)
		if k != nil && bytes.Equal(k, fromKey) {
			k, v = c.Next()
		}
		if k == nil {
			return ErrMatchNotFound
		}
		var err error
		match, err = loadMatch(tx, btoi(v))
		return err
	})
	return match, err
}

func (r *boltMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketMatchDates)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			m, err := loadMatch(tx, btoi(v))
			if err != nil {
				return err
			}
			matches = append(matches, *m)
		}
		return nil
	})
	return matches, err
}

func (r *boltMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucketMatches)).Stats().KeyN
		return nil
	})
	return count, err
}

func (r *boltMatchRepository) Update(ctx context.Context, match *models.Match) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadMatch(tx, match.ID)
		if err != nil {
			return err
		}
		dates := tx.Bucket([]byte(bucketMatchDates))
		newKey := dateKey(match.Date)
		if owner := dates.Get(newKey); owner != nil && btoi(owner) != match.ID {
			return ErrDuplicateMatch
		}
		if err := dates.Delete(dateKey(current.Date)); err != nil {
			return err
		}
		if err := dates.Put(newKey, itob(match.ID)); err != nil {
			return err
		}
		match.CreatedAt = current.CreatedAt
		rec := boltMatch{ID: match.ID, Date: match.Date, Place: match.Place, CreatedAt: current.CreatedAt}
		return putJSON(tx.Bucket([]byte(bucketMatches)), itob(rec.ID), rec)
	})
}

func (r *boltMatchRepository) Delete(ctx context.Context, id int) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadMatch(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketMatchDates)).Delete(dateKey(current.Date)); err != nil {
			return err
		}
		if err := deleteByPrefix(tx.Bucket([]byte(bucketMatchPlayers)), itob(id)); err != nil {
			return err
		}
		if err := deleteGuestsWhere(tx, func(g boltGuest) bool { return g.MatchID == id }); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketMatches)).Delete(itob(id))
	})
}
