package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

const defaultLookupTimeout = 5 * time.Second

// sessionService owns the single session of the process. The mutex guards
// against concurrent HTTP handlers; callers still get copies, never the
// stored identity itself.
type sessionService struct {
	directory       ports.UserDirectory
	lookupTimeout   time.Duration
	allowRoleSwitch bool
	log             zerolog.Logger

	mu      sync.Mutex
	current domain.Session
}

// NewSessionService builds the session store around a user directory.
// allowRoleSwitch gates the demo-only SwitchUserType operation; production
// wiring leaves it off.
func NewSessionService(directory ports.UserDirectory, lookupTimeout time.Duration, allowRoleSwitch bool, log zerolog.Logger) ports.SessionService {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &sessionService{
		directory:       directory,
		lookupTimeout:   lookupTimeout,
		allowRoleSwitch: allowRoleSwitch,
		log:             log,
	}
}

// SignIn looks the identity up by email. The credential is accepted as-is:
// credential verification is handled by the identity provider behind the
// directory, not here. A missing match, a lookup timeout, or a transport
// failure all surface as ErrInvalidCredentials and reset the session to
// unauthenticated.
func (s *sessionService) SignIn(ctx context.Context, email, _ string) (domain.Session, error) {
	if email == "" {
		return s.Session(), domain.ErrInvalidCredentials
	}

	s.beginLoading()

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.directory.FindByEmail(lookupCtx, email)
	if err != nil {
		s.clear()
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Str("email", email).Msg("directory lookup failed")
		}
		return s.Session(), domain.ErrInvalidCredentials
	}

	s.setUser(user)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("signed in")
	return s.Session(), nil
}

// SignUp provisions a fresh identity and signs it in. There is no
// duplicate-email check: the directory accepts every create.
func (s *sessionService) SignUp(ctx context.Context, in ports.SignUpInput) (domain.Session, error) {
	s.beginLoading()

	role := in.Role
	if role == "" {
		role = domain.RoleConsumer
	}
	tier := in.Tier
	if tier == "" {
		tier = domain.TierBasic
	}
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Role:      role,
		Tier:      tier,
		Verified:  false,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	createCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	created, err := s.directory.Create(createCtx, user)
	if err != nil {
		s.clear()
		return s.Session(), fmt.Errorf("sign up: %w", err)
	}

	s.setUser(created)
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("signed up")
	return s.Session(), nil
}

// SignOut clears the session. Idempotent.
func (s *sessionService) SignOut() domain.Session {
	s.clear()
	return s.Session()
}

// UpdateProfile merges the non-nil fields into the current identity. No-op
// when unauthenticated. Field shapes are not validated here.
func (s *sessionService) UpdateProfile(in ports.ProfileUpdate) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Authenticated || s.current.User == nil {
		return s.snapshotLocked(), nil
	}

	user := s.current.User.Clone()
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.Tier != nil {
		user.Tier = *in.Tier
	}
	if len(in.Metadata) > 0 {
		if user.Metadata == nil {
			user.Metadata = make(map[string]any, len(in.Metadata))
		}
		for k, v := range in.Metadata {
			user.Metadata[k] = v
		}
	}

	s.current.User = user
	return s.snapshotLocked(), nil
}

// SwitchUserType replaces the identity wholesale with the directory entry for
// the requested role, preserving nothing from the previous identity. The
// session is left untouched when no entry carries that role. Only available
// when role switching is enabled (demo mode).
func (s *sessionService) SwitchUserType(ctx context.Context, role domain.Role) (domain.Session, error) {
	if !s.allowRoleSwitch {
		return s.Session(), domain.ErrRoleSwitchDisabled
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.directory.FindByRole(lookupCtx, role)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return s.Session(), nil
		}
		return s.Session(), fmt.Errorf("switch user type: %w", err)
	}

	s.setUser(user)
	s.log.Info().Str("role", string(role)).Msg("switched user type")
	return s.Session(), nil
}

// Session returns a snapshot of the current state.
func (s *sessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *sessionService) snapshotLocked() domain.Session {
	return domain.Session{
		User:          s.current.User.Clone(),
		Authenticated: s.current.Authenticated,
		Loading:       s.current.Loading,
	}
}

func (s *sessionService) beginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Session{Loading: true}
}

func (s *sessionService) setUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Session{User: user.Clone(), Authenticated: true}
}

func (s *sessionService) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Session{}
}
