package org

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// Service manages organizations and their members
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new OrgService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateOrganization creates an org and promotes the creating member to OWNER
func (s *Service) CreateOrganization(ctx context.Context, name, slug string, creatorID model.MemberID) (*model.Organization, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if _, err := s.storage.GetOrganizationBySlug(ctx, slug); err == nil {
		return nil, model.ErrOrgSlugTaken
	}

	creator, err := s.storage.GetMember(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	org := &model.Organization{
		ID:        model.OrgID(uuid.NewString()),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
	}

	if err := s.storage.SaveOrganization(ctx, org); err != nil {
		return nil, err
	}

	creator.OrgID = org.ID
	creator.Role = model.RoleOwner
	creator.UpdatedAt = now
	if err := s.storage.SaveMember(ctx, creator); err != nil {
		return nil, err
	}

	s.logger.Info("organization created",
		slog.String("org_id", string(org.ID)),
		slog.String("slug", slug),
		slog.String("owner_id", string(creatorID)),
	)

	return org, nil
}

// GetOrganization retrieves an org by ID
func (s *Service) GetOrganization(ctx context.Context, id model.OrgID) (*model.Organization, error) {
	return s.storage.GetOrganization(ctx, id)
}

// ListMembers returns every member of an org
func (s *Service) ListMembers(ctx context.Context, orgID model.OrgID) ([]*model.Member, error) {
	if _, err := s.storage.GetOrganization(ctx, orgID); err != nil {
		return nil, err
	}
	return s.storage.ListMembers(ctx, orgID)
}

// GetMember returns a member, verifying org membership
func (s *Service) GetMember(ctx context.Context, orgID model.OrgID, memberID model.MemberID) (*model.Member, error) {
	member, err := s.storage.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.OrgID != orgID {
		return nil, model.ErrNotOrgMember
	}
	return member, nil
}

// SetRole changes a member's role. The last owner cannot be demoted.
func (s *Service) SetRole(ctx context.Context, orgID model.OrgID, memberID model.MemberID, role model.Role) (*model.Member, error) {
	if !model.ValidRole(role) {
		return nil, model.ErrInvalidRole
	}

	member, err := s.GetMember(ctx, orgID, memberID)
	if err != nil {
		return nil, err
	}

	if member.Role == model.RoleOwner && role != model.RoleOwner {
		owners, err := s.countOwners(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, model.ErrLastOwner
		}
	}

	member.Role = role
	member.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member role changed",
		slog.String("org_id", string(orgID)),
		slog.String("member_id", string(memberID)),
		slog.String("role", string(role)),
	)

	return member, nil
}

// Deactivate marks a member inactive. Inactive members can no longer be used
// as claim evidence on challenge boards. The last owner cannot be deactivated.
func (s *Service) Deactivate(ctx context.Context, orgID model.OrgID, memberID model.MemberID) (*model.Member, error) {
	member, err := s.GetMember(ctx, orgID, memberID)
	if err != nil {
		return nil, err
	}

	if member.Role == model.RoleOwner {
		owners, err := s.countOwners(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, model.ErrLastOwner
		}
	}

	member.Status = model.MemberStatusInactive
	member.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member deactivated",
		slog.String("org_id", string(orgID)),
		slog.String("member_id", string(memberID)),
	)

	return member, nil
}

// countOwners counts active owners in an org
func (s *Service) countOwners(ctx context.Context, orgID model.OrgID) (int, error) {
	members, err := s.storage.ListMembers(ctx, orgID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range members {
		if m.Role == model.RoleOwner && m.IsActive() {
			count++
		}
	}
	return count, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateOrganization(ctx context.Context, name, slug string, creatorID model.MemberID) (*model.Organization, error)
	GetOrganization(ctx context.Context, id model.OrgID) (*model.Organization, error)
	ListMembers(ctx context.Context, orgID model.OrgID) ([]*model.Member, error)
	GetMember(ctx context.Context, orgID model.OrgID, memberID model.MemberID) (*model.Member, error)
	SetRole(ctx context.Context, orgID model.OrgID, memberID model.MemberID, role model.Role) (*model.Member, error)
	Deactivate(ctx context.Context, orgID model.OrgID, memberID model.MemberID) (*model.Member, error)
}

var _ ServiceInterface = (*Service)(nil)
