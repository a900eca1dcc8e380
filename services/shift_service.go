package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/padelclub/padel-league/models"
	"github.com/padelclub/padel-league/repositories"
)

type ShiftService interface {
	Create(ctx context.Context, date time.Time, courts int) (*models.Shift, error)
	List(ctx context.Context) ([]*models.Shift, error)
	SignUp(ctx context.Context, shiftID, playerID int) (*models.Signup, error)
	Withdraw(ctx context.Context, shiftID, playerID int) error
}

type shiftService struct {
	shiftRepo repositories.ShiftRepository
}

func NewShiftService(shiftRepo repositories.ShiftRepository) ShiftService {
	return &shiftService{shiftRepo: shiftRepo}
}

func (s *shiftService) Create(ctx context.Context, date time.Time, courts int) (*models.Shift, error) {
	if date.IsZero() {
		return nil, ErrShiftDateRequired
	}
	if courts < 1 {
		return nil, ErrShiftCourtsInvalid
	}

	shift := &models.Shift{Date: date, Courts: courts}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}
	shift.Signups = []models.Signup{}
	return shift, nil
}

// List loads shifts and attaches their signups, fetched in parallel.
func (s *shiftService) List(ctx context.Context) ([]*models.Shift, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, shift := range shifts {
		shift := shift
		g.Go(func() error {
			signups, err := s.shiftRepo.ListSignups(gCtx, shift.ID)
			if err != nil {
				return err
			}
			shift.Signups = signups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shifts, nil
}

// SignUp registers a player on a shift, capacity permitting. The capacity
// check is best-effort: two simultaneous signups for the last slot can
// both pass it, which is acceptable for a club-sized install.
func (s *shiftService) SignUp(ctx context.Context, shiftID, playerID int) (*models.Signup, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	count, err := s.shiftRepo.CountSignups(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if count >= shift.Capacity() {
		return nil, ErrShiftFull
	}

	signup := &models.Signup{ShiftID: shiftID, PlayerID: playerID}
	if err := s.shiftRepo.CreateSignup(ctx, signup); err != nil {
		return nil, err
	}
	return signup, nil
}

func (s *shiftService) Withdraw(ctx context.Context, shiftID, playerID int) error {
	return s.shiftRepo.DeleteSignup(ctx, shiftID, playerID)
}
