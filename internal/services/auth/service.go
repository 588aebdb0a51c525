package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrForbidden          = errors.New("insufficient role for this action")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	MemberID  model.MemberID
	Member    model.Member
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication, session management and role policy
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a member account and session. When orgSlug is given the
// member joins that organization with the MEMBER role; otherwise they start
// unaffiliated and typically create an organization next.
func (s *Service) Register(ctx context.Context, email, password, displayName, orgSlug string) (*Session, error) {
	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrEmailExists
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, err
	}

	var orgID model.OrgID
	if orgSlug != "" {
		org, err := s.storage.GetOrganizationBySlug(ctx, orgSlug)
		if err != nil {
			return nil, err
		}
		orgID = org.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	member := &model.Member{
		ID:          model.MemberID(uuid.NewString()),
		OrgID:       orgID,
		DisplayName: displayName,
		Email:       email,
		Role:        model.RoleMember,
		Status:      model.MemberStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	account := &model.Account{
		MemberID:     member.ID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("member registered",
		slog.String("member_id", string(member.ID)),
		slog.String("org_id", string(orgID)),
	)

	return s.createSession(member)
}

// Login authenticates a member and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	member, err := s.storage.GetMember(ctx, account.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(member)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// RefreshMember reloads the session's member record from storage, picking up
// role and status changes made since login. Sessions are never mutated after
// creation, so concurrent requests sharing a token can read them freely; the
// reloaded member is carried on the returned copy.
func (s *Service) RefreshMember(ctx context.Context, session *Session) (*Session, error) {
	member, err := s.storage.GetMember(ctx, session.MemberID)
	if err != nil {
		return nil, err
	}

	refreshed := *session
	refreshed.Member = *member
	return &refreshed, nil
}

// HasRole is the centralized role policy predicate: it checks that the
// session's member belongs to the given org and holds one of the roles.
func HasRole(session *Session, orgID model.OrgID, roles ...model.Role) error {
	if session == nil {
		return ErrInvalidSession
	}
	if session.Member.OrgID != orgID {
		return model.ErrNotOrgMember
	}
	for _, role := range roles {
		if session.Member.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireManager checks that the session's member may manage org resources
func RequireManager(session *Session, orgID model.OrgID) error {
	return HasRole(session, orgID, model.RoleOwner, model.RoleAdmin)
}

// createSession creates a new session for a member
func (s *Service) createSession(member *model.Member) (*Session, error) {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		MemberID:  member.ID,
		Member:    *member,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// generateToken generates an opaque random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
