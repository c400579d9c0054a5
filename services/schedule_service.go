package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/repositories"
	"github.com/Dosada05/futbol5/utils"
)

// ScheduleSource supplies the weekly schedules, ordered by weekday.
type ScheduleSource interface {
	List(ctx context.Context) ([]models.WeeklySchedule, error)
}

// StaticSchedules is a fixed, in-memory ScheduleSource for embedding the
// engine without a schedule table. Entries are validated when read.
type StaticSchedules []models.WeeklySchedule

func (s StaticSchedules) List(ctx context.Context) ([]models.WeeklySchedule, error) {
	out := make([]models.WeeklySchedule, len(s))
	copy(out, s)
	sortSchedulesByWeekday(out)
	return out, nil
}

func sortSchedulesByWeekday(s []models.WeeklySchedule) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Weekday < s[j].Weekday })
}

type ScheduleService interface {
	// FindNextMatchDatetime is the next instant the schedule's match is played,
	// counting from's own day even when its time has already passed.
	FindNextMatchDatetime(schedule models.WeeklySchedule, from time.Time) (time.Time, error)
	FindScheduleForInviteWeekday(ctx context.Context, date time.Time) (*models.WeeklySchedule, error)
	FindNextMatchForSchedule(ctx context.Context, schedule models.WeeklySchedule, from time.Time) (*models.Match, error)

	CreateSchedule(ctx context.Context, input ScheduleInput) (*models.WeeklySchedule, error)
	GetScheduleByID(ctx context.Context, id int) (*models.WeeklySchedule, error)
	ListSchedules(ctx context.Context) ([]models.WeeklySchedule, error)
	UpdateSchedule(ctx context.Context, id int, input ScheduleInput) (*models.WeeklySchedule, error)
	DeleteSchedule(ctx context.Context, id int) error
}

type ScheduleInput struct {
	Weekday       *int   `json:"weekday" validate:"required,min=0,max=6"`
	Time          string `json:"time" validate:"required"`
	Place         string `json:"place" validate:"required,max=50"`
	InviteWeekday *int   `json:"invite_weekday" validate:"required,min=0,max=6"`
}

func (in ScheduleInput) toModel() (*models.WeeklySchedule, error) {
	in.Place = strings.TrimSpace(in.Place)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	tod, err := models.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"time": "must look like HH:MM or HH:MM:SS"}}
	}
	return &models.WeeklySchedule{
		Weekday:       models.Weekday(*in.Weekday),
		Time:          tod,
		Place:         in.Place,
		InviteWeekday: models.Weekday(*in.InviteWeekday),
	}, nil
}

type scheduleService struct {
	source       ScheduleSource
	scheduleRepo repositories.ScheduleRepository
	matchRepo    repositories.MatchRepository
}

// NewScheduleService reads schedules from source. scheduleRepo backs the admin
// CRUD and may be nil, in which case the CRUD methods fail with ErrSchedulesReadOnly.
func NewScheduleService(source ScheduleSource, scheduleRepo repositories.ScheduleRepository, matchRepo repositories.MatchRepository) ScheduleService {
	return &scheduleService{
		source:       source,
		scheduleRepo: scheduleRepo,
		matchRepo:    matchRepo,
	}
}

func (s *scheduleService) FindNextMatchDatetime(schedule models.WeeklySchedule, from time.Time) (time.Time, error) {
	if err := schedule.Validate(); err != nil {
		return time.Time{}, err
	}
	day, err := utils.NextOccurrence(from, schedule.Weekday)
	if err != nil {
		return time.Time{}, err
	}
	return utils.SetTime(day, schedule.Time), nil
}

func (s *scheduleService) FindScheduleForInviteWeekday(ctx context.Context, date time.Time) (*models.WeeklySchedule, error) {
	schedules, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly schedules: %w", err)
	}
	for i := range schedules {
		if err := schedules[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid weekly schedule %d: %w", schedules[i].ID, err)
		}
	}
	weekday := utils.WeekdayOf(date)
	for i := range schedules {
		if schedules[i].InviteWeekday == weekday {
			return &schedules[i], nil
		}
	}
	return nil, ErrScheduleNotFound
}

func (s *scheduleService) FindNextMatchForSchedule(ctx context.Context, schedule models.WeeklySchedule, from time.Time) (*models.Match, error) {
	at, err := s.FindNextMatchDatetime(schedule, from)
	if err != nil {
		return nil, err
	}
	match, err := s.matchRepo.GetByDate(ctx, at)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to look up match at %s: %w", at.Format(time.RFC3339), err)
	}
	return match, nil
}

func mapScheduleRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrScheduleNotFound):
		return ErrScheduleNotFound
	case errors.Is(err, repositories.ErrScheduleWeekdayConflict):
		return ErrScheduleWeekdayConflict
	default:
		return err
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, input ScheduleInput) (*models.WeeklySchedule, error) {
	if s.scheduleRepo == nil {
		return nil, ErrSchedulesReadOnly
	}
	schedule, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, mapScheduleRepoError(err)
	}
	return schedule, nil
}

func (s *scheduleService) GetScheduleByID(ctx context.Context, id int) (*models.WeeklySchedule, error) {
	if s.scheduleRepo == nil {
		schedules, err := s.source.List(ctx)
		if err != nil {
			return nil, err
		}
		for i := range schedules {
			if schedules[i].ID == id {
				return &schedules[i], nil
			}
		}
		return nil, ErrScheduleNotFound
	}
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapScheduleRepoError(err)
	}
	return schedule, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]models.WeeklySchedule, error) {
	schedules, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly schedules: %w", err)
	}
	return schedules, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, id int, input ScheduleInput) (*models.WeeklySchedule, error) {
	if s.scheduleRepo == nil {
		return nil, ErrSchedulesReadOnly
	}
	schedule, err := input.toModel()
	if err != nil {
		return nil, err
	}
	schedule.ID = id
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, mapScheduleRepoError(err)
	}
	return schedule, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, id int) error {
	if s.scheduleRepo == nil {
		return ErrSchedulesReadOnly
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return mapScheduleRepoError(err)
	}
	return nil
}
