package repositories

import (
	"context"
	"time"

	"github.com/Dosada05/futbol5/models"
	bolt "go.etcd.io/bbolt"
)

type boltScheduleRepository struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltScheduleRepository(db *bolt.DB) ScheduleRepository {
	return &boltScheduleRepository{db: db, now: time.Now}
}

func loadSchedule(tx *bolt.Tx, id int) (*models.WeeklySchedule, error) {
	var s models.WeeklySchedule
	found, err := getJSON(tx.Bucket([]byte(bucketSchedules)), itob(id), &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrScheduleNotFound
	}
	return &s, nil
}

func (r *boltScheduleRepository) Create(ctx context.Context, s *models.WeeklySchedule) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		schedules := tx.Bucket([]byte(bucketSchedules))
		weekdays := tx.Bucket([]byte(bucketScheduleWeekdays))

		if weekdays.Get(itob(int(s.Weekday))) != nil {
			return ErrScheduleWeekdayConflict
		}
		seq, err := schedules.NextSequence()
		if err != nil {
			return err
		}
		s.ID = int(seq)
		s.CreatedAt = r.now()
		if err := weekdays.Put(itob(int(s.Weekday)), itob(s.ID)); err != nil {
			return err
		}
		return putJSON(schedules, itob(s.ID), s)
	})
}

func (r *boltScheduleRepository) GetByID(ctx context.Context, id int) (*models.WeeklySchedule, error) {
	var schedule *models.WeeklySchedule
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		schedule, err = loadSchedule(tx, id)
		return err
	})
	return schedule, err
}

func (r *boltScheduleRepository) List(ctx context.Context) ([]models.WeeklySchedule, error) {
	schedules := make([]models.WeeklySchedule, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		// the weekday index is keyed by weekday, so this walks Monday to Sunday
		return tx.Bucket([]byte(bucketScheduleWeekdays)).ForEach(func(_, v []byte) error {
			s, err := loadSchedule(tx, btoi(v))
			if err != nil {
				return err
			}
			schedules = append(schedules, *s)
			return nil
		})
	})
	return schedules, err
}

func (r *boltScheduleRepository) Update(ctx context.Context, s *models.WeeklySchedule) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadSchedule(tx, s.ID)
		if err != nil {
			return err
		}
		weekdays := tx.Bucket([]byte(bucketScheduleWeekdays))
		if owner := weekdays.Get(itob(int(s.Weekday))); owner != nil && btoi(owner) != s.ID {
			return ErrScheduleWeekdayConflict
		}
		if err := weekdays.Delete(itob(int(current.Weekday))); err != nil {
			return err
		}
		if err := weekdays.Put(itob(int(s.Weekday)), itob(s.ID)); err != nil {
			return err
		}
		s.CreatedAt = current.CreatedAt
		return putJSON(tx.Bucket([]byte(bucketSchedules)), itob(s.ID), s)
	})
}

func (r *boltScheduleRepository) Delete(ctx context.Context, id int) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		current, err := loadSchedule(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketScheduleWeekdays)).Delete(itob(int(current.Weekday))); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketSchedules)).Delete(itob(id))
	})
}
