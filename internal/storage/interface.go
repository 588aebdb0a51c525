package storage

import (
	"context"

	"github.com/strengthsync/strengthsync/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Organization operations
	SaveOrganization(ctx context.Context, org *model.Organization) error
	GetOrganization(ctx context.Context, id model.OrgID) (*model.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error)

	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)
	ListMembers(ctx context.Context, orgID model.OrgID) ([]*model.Member, error)

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, memberID model.MemberID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// Assessment operations (one current assessment per member)
	SaveAssessment(ctx context.Context, assessment *model.Assessment) error
	GetAssessment(ctx context.Context, memberID model.MemberID) (*model.Assessment, error)

	// Challenge operations
	SaveChallenge(ctx context.Context, challenge *model.Challenge) error
	GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	ListChallenges(ctx context.Context, orgID model.OrgID) ([]*model.Challenge, error)

	// Participant operations.
	// SaveParticipant is a plain overwrite: a participant's progress is
	// read-modify-write per claim request, and serializing concurrent claims
	// against the same participant is the caller's/deployment's concern.
	SaveParticipant(ctx context.Context, participant *model.Participant) error
	GetParticipant(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error)
	ListParticipants(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error)

	// Badge award operations
	SaveBadgeAward(ctx context.Context, award *model.BadgeAward) error
	GetBadgeAward(ctx context.Context, memberID model.MemberID, slug model.BadgeSlug) (*model.BadgeAward, error)
	ListBadgeAwards(ctx context.Context, memberID model.MemberID) ([]*model.BadgeAward, error)
}
