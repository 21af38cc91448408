package service

import (
	"context"

	"qubeia/internal/models"
	"qubeia/internal/repository"
)

// badgeLadder maps activity totals to badges, highest threshold first.
var badgeLadder = []struct {
	threshold int
	badge     models.Badge
}{
	{300, models.BadgeLegendaryQube},
	{225, models.BadgeUniqueQube},
	{150, models.BadgeEpicQube},
	{80, models.BadgeQubed},
	{35, models.BadgeClimber},
	{10, models.BadgeMember},
}

// BadgeForActivity derives the reputation badge from the sum of posts and
// messages. Badges are always recomputed from the counters, never stored.
func BadgeForActivity(posts, messages int) models.Badge {
	total := posts + messages
	for _, rung := range badgeLadder {
		if total >= rung.threshold {
			return rung.badge
		}
	}
	return models.BadgeNewMember
}

// ReputationService recomputes badges as activity counters move.
type ReputationService struct {
	userRepo repository.UserRepository
}

func NewReputationService(userRepo repository.UserRepository) *ReputationService {
	return &ReputationService{userRepo: userRepo}
}

// RecordActivity bumps the relevant counter and returns the badge implied by
// the fresh totals.
func (s *ReputationService) RecordActivity(ctx context.Context, userID uint, kind repository.ActivityKind) (models.Badge, error) {
	posts, messages, err := s.userRepo.IncrementActivity(ctx, userID, kind)
	if err != nil {
		return "", err
	}
	return BadgeForActivity(posts, messages), nil
}
