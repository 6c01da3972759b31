package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgAuth "github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/catalogapi"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/persistence"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/angelmondragon/storefront/pkg/validation"
)

// Service owns the signed-in session.
type Service interface {
	Current() *types.Session
	IsAuthenticated() bool
	Login(ctx context.Context, req types.LoginRequest) (*types.Session, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.Session, error)
	Logout(ctx context.Context)
}

// Remote is the subset of the catalog API used for sign-in.
type Remote interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req types.RegisterRequest) (*catalogapi.RegisteredUser, error)
}

// Persister stores the session between runs.
type Persister interface {
	Save(ctx context.Context, key string, value any)
	Load(ctx context.Context, key string, dest any) bool
	Remove(ctx context.Context, key string)
}

type service struct {
	mu      sync.RWMutex
	session *types.Session
	remote  Remote
	persist Persister
	logg    *logger.Logger
}

// NewService builds the auth service and restores a persisted session if one exists.
func NewService(ctx context.Context, remote Remote, persist Persister, logg *logger.Logger) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("auth remote required")
	}
	if persist == nil {
		return nil, fmt.Errorf("auth persister required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &service{remote: remote, persist: persist, logg: logg}

	var stored types.Session
	if persist.Load(ctx, persistence.KeyAuth, &stored) {
		if strings.TrimSpace(stored.Username) != "" {
			s.session = &stored
		} else {
			logg.Warn(ctx, "auth.rehydrate_ignored_anonymous_session")
		}
	}
	return s, nil
}

func (s *service) Current() *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

func (s *service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

func (s *service) Login(ctx context.Context, req types.LoginRequest) (*types.Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	ctx = s.logg.WithUsername(ctx, req.Username)

	token, err := s.remote.Login(ctx, req.Username, req.Password)
	if err != nil {
		s.logg.WarnErr(ctx, "auth.login_failed", err)
		return nil, err
	}

	session := &types.Session{
		Username: req.Username,
		Token:    token,
		Name:     &types.Name{Firstname: req.Username},
	}
	// The token is trusted as issued; its claims only fill in the user id.
	if info, err := pkgAuth.InspectToken(token); err == nil {
		session.ID = info.UserID
	} else {
		s.logg.Debug(ctx, "auth.token_claims_unreadable")
	}

	s.establish(ctx, session)
	s.logg.Info(ctx, "auth.login_succeeded")
	return session, nil
}

func (s *service) Register(ctx context.Context, req types.RegisterRequest) (*types.Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	ctx = s.logg.WithUsername(ctx, req.Username)

	user, err := s.remote.Register(ctx, req)
	if err != nil {
		s.logg.WarnErr(ctx, "auth.register_failed", err)
		return nil, err
	}

	session := &types.Session{
		Username: user.Username,
		Email:    user.Email,
		Name:     &types.Name{Firstname: user.Username},
	}
	if user.ID != 0 {
		id := user.ID
		session.ID = &id
	}
	if user.Name != nil {
		if user.Name.Firstname != "" {
			session.Name.Firstname = user.Name.Firstname
		}
		session.Name.Lastname = user.Name.Lastname
	}

	s.establish(ctx, session)
	s.logg.Info(ctx, "auth.register_succeeded")
	return session, nil
}

func (s *service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.persist.Remove(ctx, persistence.KeyAuth)
}

func (s *service) establish(ctx context.Context, session *types.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session.Clone()
	s.persist.Save(ctx, persistence.KeyAuth, s.session)
}
