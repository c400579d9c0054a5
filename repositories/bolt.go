package repositories

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketPlayers          = "players"
	bucketPlayerNames      = "player_names"
	bucketPlayerEmails     = "player_emails"
	bucketMatches          = "matches"
	bucketMatchDates       = "match_dates"
	bucketMatchPlayers     = "match_players"
	bucketGuests           = "guests"
	bucketGuestKeys        = "guest_keys"
	bucketSchedules        = "weekly_schedules"
	bucketScheduleWeekdays = "schedule_weekdays"
)

var allBuckets = []string{
	bucketPlayers, bucketPlayerNames, bucketPlayerEmails,
	bucketMatches, bucketMatchDates, bucketMatchPlayers,
	bucketGuests, bucketGuestKeys,
	bucketSchedules, bucketScheduleWeekdays,
}

// OpenBolt opens (or creates) the bbolt file at path with every bucket the
// bolt repositories need.
func OpenBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("creating %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int {
	return int(binary.BigEndian.Uint64(b))
}

// dateKey orders instants bytewise: the sign bit of UnixNano is flipped so
// that dates before 1970 still sort first.
func dateKey(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano())^(1<<63))
	return b
}

func pairKey(a, b int) []byte {
	return append(itob(a), itob(b)...)
}

func guestKey(matchID, invitingPlayerID int, name string) []byte {
	return append(pairKey(matchID, invitingPlayerID), []byte(name)...)
}

func putJSON(b *bolt.Bucket, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}
	return b.Put(key, data)
}

// getJSON decodes the value at key into v and reports whether it existed.
func getJSON(b *bolt.Bucket, key []byte, v interface{}) (bool, error) {
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// deleteByPrefix removes every key starting with prefix.
func deleteByPrefix(b *bolt.Bucket, prefix []byte) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
