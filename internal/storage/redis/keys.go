package redis

import (
	"fmt"

	"github.com/strengthsync/strengthsync/internal/model"
)

// Key prefix for all StrengthSync data
const keyPrefix = "ssync"

// Key generation functions for each entity type

// orgKey returns the Redis key for an Organization
func orgKey(id model.OrgID) string {
	return fmt.Sprintf("%s:org:%s", keyPrefix, id)
}

// orgSlugIndexKey returns the Redis key for the slug -> org_id index
func orgSlugIndexKey(slug string) string {
	return fmt.Sprintf("%s:idx:org_slug:%s", keyPrefix, slug)
}

// memberKey returns the Redis key for a Member
func memberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:member:%s", keyPrefix, id)
}

// membersForOrgIndexKey returns the Redis key for the SET of members in an org
func membersForOrgIndexKey(orgID model.OrgID) string {
	return fmt.Sprintf("%s:idx:members_for_org:%s", keyPrefix, orgID)
}

// accountKey returns the Redis key for an Account
func accountKey(memberID model.MemberID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, memberID)
}

// emailIndexKey returns the Redis key for the email -> member_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// assessmentKey returns the Redis key for a member's current Assessment
func assessmentKey(memberID model.MemberID) string {
	return fmt.Sprintf("%s:assessment:%s", keyPrefix, memberID)
}

// challengeKey returns the Redis key for a Challenge
func challengeKey(id model.ChallengeID) string {
	return fmt.Sprintf("%s:challenge:%s", keyPrefix, id)
}

// challengesForOrgIndexKey returns the Redis key for the SET of challenges in an org
func challengesForOrgIndexKey(orgID model.OrgID) string {
	return fmt.Sprintf("%s:idx:challenges_for_org:%s", keyPrefix, orgID)
}

// participantKey returns the Redis key for a Participant
func participantKey(challengeID model.ChallengeID, memberID model.MemberID) string {
	return fmt.Sprintf("%s:participant:%s:%s", keyPrefix, challengeID, memberID)
}

// participantsForChallengeIndexKey returns the Redis key for the SET of
// participants in a challenge
func participantsForChallengeIndexKey(challengeID model.ChallengeID) string {
	return fmt.Sprintf("%s:idx:participants_for_challenge:%s", keyPrefix, challengeID)
}

// badgeAwardKey returns the Redis key for a BadgeAward
func badgeAwardKey(memberID model.MemberID, slug model.BadgeSlug) string {
	return fmt.Sprintf("%s:badge_award:%s:%s", keyPrefix, memberID, slug)
}

// badgeAwardsForMemberIndexKey returns the Redis key for the SET of a member's awards
func badgeAwardsForMemberIndexKey(memberID model.MemberID) string {
	return fmt.Sprintf("%s:idx:badge_awards_for_member:%s", keyPrefix, memberID)
}
