package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Organization operations

func (s *Storage) SaveOrganization(ctx context.Context, org *model.Organization) error {
	data, err := json.Marshal(org)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, orgKey(org.ID), data, 0)
	pipe.Set(ctx, orgSlugIndexKey(org.Slug), string(org.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetOrganization(ctx context.Context, id model.OrgID) (*model.Organization, error) {
	data, err := s.client.Get(ctx, orgKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrgNotFound
		}
		return nil, err
	}

	var org model.Organization
	if err := json.Unmarshal(data, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	orgIDStr, err := s.client.Get(ctx, orgSlugIndexKey(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrgNotFound
		}
		return nil, err
	}

	return s.GetOrganization(ctx, model.OrgID(orgIDStr))
}

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, memberKey(member.ID), data, 0)
	pipe.SAdd(ctx, membersForOrgIndexKey(member.OrgID), string(member.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	data, err := s.client.Get(ctx, memberKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Storage) ListMembers(ctx context.Context, orgID model.OrgID) ([]*model.Member, error) {
	ids, err := s.client.SMembers(ctx, membersForOrgIndexKey(orgID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Member{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = memberKey(model.MemberID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	members := make([]*model.Member, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var member model.Member
		if err := json.Unmarshal([]byte(val.(string)), &member); err != nil {
			continue // Skip invalid data
		}
		members = append(members, &member)
	}
	return members, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.MemberID), data, 0)
	pipe.Set(ctx, emailIndexKey(account.Email), string(account.MemberID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, memberID model.MemberID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(memberID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	memberIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.MemberID(memberIDStr))
}

// Assessment operations

func (s *Storage) SaveAssessment(ctx context.Context, assessment *model.Assessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, assessmentKey(assessment.MemberID), data, 0).Err()
}

func (s *Storage) GetAssessment(ctx context.Context, memberID model.MemberID) (*model.Assessment, error) {
	data, err := s.client.Get(ctx, assessmentKey(memberID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoAssessment
		}
		return nil, err
	}

	var assessment model.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}

	// Archived challenges may age out; everything else is kept
	var ttl time.Duration
	if challenge.Status == model.ChallengeStatusArchived {
		ttl = s.cfg.ArchivedChallengeTTL
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, challengeKey(challenge.ID), data, ttl)
	pipe.SAdd(ctx, challengesForOrgIndexKey(challenge.OrgID), string(challenge.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	data, err := s.client.Get(ctx, challengeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var challenge model.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *Storage) ListChallenges(ctx context.Context, orgID model.OrgID) ([]*model.Challenge, error) {
	ids, err := s.client.SMembers(ctx, challengesForOrgIndexKey(orgID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Challenge{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = challengeKey(model.ChallengeID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Challenge may have expired
		}
		var challenge model.Challenge
		if err := json.Unmarshal([]byte(val.(string)), &challenge); err != nil {
			continue // Skip invalid data
		}
		challenges = append(challenges, &challenge)
	}
	return challenges, nil
}

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, participant *model.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return err
	}

	pKey := participantKey(participant.ChallengeID, participant.MemberID)
	indexKey := participantsForChallengeIndexKey(participant.ChallengeID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, 0)
	pipe.SAdd(ctx, indexKey, pKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error) {
	data, err := s.client.Get(ctx, participantKey(challengeID, memberID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotParticipant
		}
		return nil, err
	}

	var participant model.Participant
	if err := json.Unmarshal(data, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error) {
	indexKey := participantsForChallengeIndexKey(challengeID)

	participantKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(participantKeys) == 0 {
		return []*model.Participant{}, nil
	}

	values, err := s.client.MGet(ctx, participantKeys...).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var participant model.Participant
		if err := json.Unmarshal([]byte(val.(string)), &participant); err != nil {
			continue // Skip invalid data
		}
		participants = append(participants, &participant)
	}
	return participants, nil
}

// Badge award operations

func (s *Storage) SaveBadgeAward(ctx context.Context, award *model.BadgeAward) error {
	data, err := json.Marshal(award)
	if err != nil {
		return err
	}

	aKey := badgeAwardKey(award.MemberID, award.Slug)
	indexKey := badgeAwardsForMemberIndexKey(award.MemberID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, aKey, data, 0)
	pipe.SAdd(ctx, indexKey, aKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBadgeAward(ctx context.Context, memberID model.MemberID, slug model.BadgeSlug) (*model.BadgeAward, error) {
	data, err := s.client.Get(ctx, badgeAwardKey(memberID, slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBadgeNotFound
		}
		return nil, err
	}

	var award model.BadgeAward
	if err := json.Unmarshal(data, &award); err != nil {
		return nil, err
	}
	return &award, nil
}

func (s *Storage) ListBadgeAwards(ctx context.Context, memberID model.MemberID) ([]*model.BadgeAward, error) {
	indexKey := badgeAwardsForMemberIndexKey(memberID)

	awardKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(awardKeys) == 0 {
		return []*model.BadgeAward{}, nil
	}

	values, err := s.client.MGet(ctx, awardKeys...).Result()
	if err != nil {
		return nil, err
	}

	awards := make([]*model.BadgeAward, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var award model.BadgeAward
		if err := json.Unmarshal([]byte(val.(string)), &award); err != nil {
			continue // Skip invalid data
		}
		awards = append(awards, &award)
	}
	return awards, nil
}
