// Package profile implements user onboarding, field updates and the one-time
// profile completion award.
package profile

import (
	"context"
	"strconv"
	"time"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/domain/user"
	"github.com/open-builders/school-bot/internal/repository"
)

// Rewards are the coin amounts handed out by the service.
type Rewards struct {
	StartingCoins   int
	CompletionBonus int
	ReferralBonus   int
}

// DefaultRewards match the production defaults.
var DefaultRewards = Rewards{StartingCoins: 20, CompletionBonus: 50, ReferralBonus: 10}

// Service orchestrates user records on top of the profile store.
type Service struct {
	store   *repository.Store
	rewards Rewards
	now     func() time.Time
}

func NewService(store *repository.Store, rewards Rewards) *Service {
	return &Service{store: store, rewards: rewards, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Rewards() Rewards {
	return s.rewards
}

// Newcomer describes the sender of /start.
type Newcomer struct {
	UserID    int64
	FirstName string
	Username  string
	// Payload is the deep-link argument, the inviter id when present.
	Payload string
}

// BootstrapResult is what happened during first contact.
type BootstrapResult struct {
	User *user.User
	// Created is set when the user record did not exist before.
	Created bool
	// BecameAdmin is set when the sender was assigned as the first admin.
	BecameAdmin bool
	// Inviter is the credited inviter, nil when nobody was credited.
	Inviter *user.User
}

// Bootstrap assigns the first admin, creates the user with the starting
// balance and credits a valid inviter. Only the user lookup and creation are
// fatal; admin assignment and referral failures are logged.
func (s *Service) Bootstrap(ctx context.Context, n Newcomer) (*BootstrapResult, error) {
	log := logger.Ctx(ctx)
	res := &BootstrapResult{}

	if _, err := s.store.Admin.Get(ctx); err != nil {
		switch {
		case apperrors.IsNotFound(err):
			if err := s.store.Admin.SetAdminID(ctx, n.UserID); err != nil {
				log.Error().Err(err).Msg("failed to assign first admin")
			} else {
				res.BecameAdmin = true
				log.Info().Int64("admin_id", n.UserID).Msg("first admin assigned")
			}
		default:
			log.Warn().Err(err).Msg("failed to read admin config")
		}
	}

	u, err := s.store.Users.Get(ctx, n.UserID)
	if err == nil {
		res.User = u
		return res, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	patch := user.Patch{
		FirstName:                user.Ptr(n.FirstName),
		Username:                 user.Ptr(n.Username),
		Coins:                    user.Ptr(s.rewards.StartingCoins),
		ProfileCompletionAwarded: user.Ptr(false),
		CreatedAt:                &now,
	}
	if err := s.store.Users.Upsert(ctx, n.UserID, patch, false); err != nil {
		return nil, err
	}
	created := &user.User{ID: n.UserID}
	patch.Apply(created)
	res.User = created
	res.Created = true
	log.Info().Int64("user_id", n.UserID).Msg("user created")

	res.Inviter = s.creditInviter(ctx, n)
	return res, nil
}

func (s *Service) creditInviter(ctx context.Context, n Newcomer) *user.User {
	if n.Payload == "" {
		return nil
	}
	log := logger.Ctx(ctx)

	inviterID, err := strconv.ParseInt(n.Payload, 10, 64)
	if err != nil || inviterID == n.UserID || inviterID <= 0 {
		log.Debug().Str("payload", n.Payload).Msg("ignoring start payload")
		return nil
	}
	inviter, err := s.store.Users.Get(ctx, inviterID)
	if err != nil {
		log.Warn().Err(err).Int64("inviter_id", inviterID).Msg("inviter not credited")
		return nil
	}
	if err := s.store.Users.AddCoins(ctx, inviterID, s.rewards.ReferralBonus); err != nil {
		log.Error().Err(err).Int64("inviter_id", inviterID).Msg("failed to credit inviter")
		return nil
	}
	inviter.Coins += s.rewards.ReferralBonus
	log.Info().Int64("inviter_id", inviterID).Int("bonus", s.rewards.ReferralBonus).Msg("inviter credited")
	return inviter
}

// Get returns the user record.
func (s *Service) Get(ctx context.Context, id int64) (*user.User, error) {
	return s.store.Users.Get(ctx, id)
}

// Update merges p into the user record and then evaluates the completion
// award. awarded is true only for the call that granted it.
func (s *Service) Update(ctx context.Context, id int64, p user.Patch) (awarded bool, err error) {
	if err := s.store.Users.Upsert(ctx, id, p, true); err != nil {
		return false, err
	}
	awarded, err = s.store.Users.GrantCompletionAward(ctx, id, s.rewards.CompletionBonus)
	if err != nil {
		// the field is saved, a missed award is retried on the next update
		logger.Ctx(ctx).Error().Err(err).Int64("user_id", id).Msg("award check failed")
		return false, nil
	}
	if awarded {
		logger.Ctx(ctx).Info().Int64("user_id", id).Int("bonus", s.rewards.CompletionBonus).Msg("profile completion award granted")
	}
	return awarded, nil
}

// IsAdmin reports whether id is the configured admin. Any store failure
// resolves to false.
func (s *Service) IsAdmin(ctx context.Context, id int64) bool {
	cfg, err := s.store.Admin.Get(ctx)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Ctx(ctx).Warn().Err(err).Msg("admin resolution failed")
		}
		return false
	}
	return cfg.AdminID == id
}

// AdminID returns the configured admin, or 0.
func (s *Service) AdminID(ctx context.Context) int64 {
	cfg, err := s.store.Admin.Get(ctx)
	if err != nil {
		return 0
	}
	return cfg.AdminID
}
