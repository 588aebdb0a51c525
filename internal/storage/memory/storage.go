package memory

import (
	"context"
	"sync"

	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	orgs         map[model.OrgID]*model.Organization
	slugIndex    map[string]model.OrgID
	members      map[model.MemberID]*model.Member
	accounts     map[model.MemberID]*model.Account
	emailIndex   map[string]model.MemberID
	assessments  map[model.MemberID]*model.Assessment
	challenges   map[model.ChallengeID]*model.Challenge
	participants map[participantKey]*model.Participant
	badgeAwards  map[badgeKey]*model.BadgeAward
}

type participantKey struct {
	challengeID model.ChallengeID
	memberID    model.MemberID
}

type badgeKey struct {
	memberID model.MemberID
	slug     model.BadgeSlug
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		orgs:         make(map[model.OrgID]*model.Organization),
		slugIndex:    make(map[string]model.OrgID),
		members:      make(map[model.MemberID]*model.Member),
		accounts:     make(map[model.MemberID]*model.Account),
		emailIndex:   make(map[string]model.MemberID),
		assessments:  make(map[model.MemberID]*model.Assessment),
		challenges:   make(map[model.ChallengeID]*model.Challenge),
		participants: make(map[participantKey]*model.Participant),
		badgeAwards:  make(map[badgeKey]*model.BadgeAward),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Organization operations

func (s *Storage) SaveOrganization(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[org.ID] = org
	s.slugIndex[org.Slug] = org.ID
	return nil
}

func (s *Storage) GetOrganization(ctx context.Context, id model.OrgID) (*model.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[id]
	if !ok {
		return nil, model.ErrOrgNotFound
	}
	return org, nil
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugIndex[slug]
	if !ok {
		return nil, model.ErrOrgNotFound
	}
	org, ok := s.orgs[id]
	if !ok {
		return nil, model.ErrOrgNotFound
	}
	return org, nil
}

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = member
	return nil
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return member, nil
}

func (s *Storage) ListMembers(ctx context.Context, orgID model.OrgID) ([]*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []*model.Member
	for _, m := range s.members {
		if m.OrgID == orgID {
			members = append(members, m)
		}
	}
	return members, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.MemberID] = account
	s.emailIndex[account.Email] = account.MemberID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, memberID model.MemberID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[memberID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memberID, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[memberID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Assessment operations

func (s *Storage) SaveAssessment(ctx context.Context, assessment *model.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[assessment.MemberID] = assessment
	return nil
}

func (s *Storage) GetAssessment(ctx context.Context, memberID model.MemberID) (*model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assessment, ok := s.assessments[memberID]
	if !ok {
		return nil, model.ErrNoAssessment
	}
	return assessment, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.ID] = challenge
	return nil
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[id]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Storage) ListChallenges(ctx context.Context, orgID model.OrgID) ([]*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var challenges []*model.Challenge
	for _, c := range s.challenges {
		if c.OrgID == orgID {
			challenges = append(challenges, c)
		}
	}
	return challenges, nil
}

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, participant *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := participantKey{challengeID: participant.ChallengeID, memberID: participant.MemberID}
	s.participants[key] = participant
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := participantKey{challengeID: challengeID, memberID: memberID}
	participant, ok := s.participants[key]
	if !ok {
		return nil, model.ErrNotParticipant
	}
	return participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var participants []*model.Participant
	for key, p := range s.participants {
		if key.challengeID == challengeID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

// Badge award operations

func (s *Storage) SaveBadgeAward(ctx context.Context, award *model.BadgeAward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := badgeKey{memberID: award.MemberID, slug: award.Slug}
	s.badgeAwards[key] = award
	return nil
}

func (s *Storage) GetBadgeAward(ctx context.Context, memberID model.MemberID, slug model.BadgeSlug) (*model.BadgeAward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := badgeKey{memberID: memberID, slug: slug}
	award, ok := s.badgeAwards[key]
	if !ok {
		return nil, model.ErrBadgeNotFound
	}
	return award, nil
}

func (s *Storage) ListBadgeAwards(ctx context.Context, memberID model.MemberID) ([]*model.BadgeAward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var awards []*model.BadgeAward
	for key, a := range s.badgeAwards {
		if key.memberID == memberID {
			awards = append(awards, a)
		}
	}
	return awards, nil
}
