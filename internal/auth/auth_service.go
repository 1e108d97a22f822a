package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	autherrors "nova-hris/internal/auth/errors"
	"nova-hris/internal/session"
	"nova-hris/internal/shared/apperror"
	"nova-hris/internal/shared/timeutil"
	"nova-hris/internal/user"
	usererrors "nova-hris/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SignUp(ctx context.Context, caller session.Actor, req SignUpRequest) (AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	Me(ctx context.Context, actor session.Actor) (AuthResponse, error)
	VerifyAccessToken(ctx context.Context, token string) (session.Identity, error)
	OnAuthChange(fn func(Event)) (unsubscribe func())
}

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type service struct {
	users   user.Repository
	revoked RevocationStore
	cfg     Config
	clock   timeutil.Clock
	logger  *zap.Logger

	mu        sync.RWMutex
	listeners map[int]func(Event)
	nextID    int
}

func NewService(users user.Repository, revoked RevocationStore, cfg Config, clock timeutil.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &service{
		users:     users,
		revoked:   revoked,
		cfg:       cfg,
		clock:     clock,
		logger:    l,
		listeners: make(map[int]func(Event)),
	}
}

// SignUp creates an account. Only an admin caller may create another admin.
func (s *service) SignUp(ctx context.Context, caller session.Actor, req SignUpRequest) (AuthResponse, error) {
	role := user.RoleEmployee
	if strings.EqualFold(req.Role, user.RoleAdmin) {
		if !caller.IsAdmin() {
			return AuthResponse{}, autherrors.ErrForbidden
		}
		role = user.RoleAdmin
	}

	hashed, err := user.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("sign up hash password failed", zap.Error(err))
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		EmployeeID:   strings.TrimSpace(req.EmployeeID),
		Department:   strings.TrimSpace(req.Department),
		Position:     strings.TrimSpace(req.Position),
		Role:         role,
		PasswordHash: hashed,
	}

	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("sign up lookup email failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.Error("sign up create user failed", zap.String("email", u.Email), zap.Error(err))
		if appErr := mapCreateError(err); appErr != nil {
			return AuthResponse{}, appErr
		}
		return AuthResponse{}, err
	}

	s.logger.Info("sign up success", zap.String("user_id", u.ID), zap.String("role", role))
	s.emit(Event{Type: EventSignedUp, UserID: u.ID, Email: u.Email, At: s.clock.Now()})
	return toResponse(*u), nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("sign in lookup failed", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(u.PasswordHash, password) {
		s.logger.Warn("sign in wrong password", zap.String("user_id", u.ID))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(u, uuid.NewString())
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.emit(Event{Type: EventSignedIn, UserID: u.ID, Email: u.Email, At: s.clock.Now()})
	return pair, toResponse(*u), nil
}

// SignOut revokes the access token and the sign-in session it belongs to,
// so refresh tokens of that session stop working too.
func (s *service) SignOut(ctx context.Context, accessToken string) error {
	claims, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return err
	}

	if err := s.revoked.Revoke(ctx, claims.ID, s.remaining(claims)); err != nil {
		s.logger.Error("sign out revoke failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	if claims.SessionID != "" {
		// a refresh issued just before sign-out lives at most RefreshTTL
		if err := s.revoked.Revoke(ctx, sessionRevocationID(claims.SessionID), s.cfg.RefreshTTL); err != nil {
			s.logger.Error("sign out revoke session failed", zap.String("user_id", claims.UserID), zap.Error(err))
			return err
		}
	}

	s.emit(Event{Type: EventSignedOut, UserID: claims.UserID, Email: claims.Email, At: s.clock.Now()})
	return nil
}

// Refresh rotates the refresh token: the presented one is consumed, so of
// two concurrent refreshes with the same token only one succeeds.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, revocationIDs(claims)...)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	if revoked {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	first, err := s.revoked.Consume(ctx, claims.ID, s.remaining(claims))
	if err != nil {
		s.logger.Error("refresh revoke old token failed", zap.Error(err))
		return TokenPair{}, AuthResponse{}, err
	}
	if !first {
		s.logger.Warn("refresh token reused", zap.String("user_id", claims.UserID))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}

	sid := claims.SessionID
	if sid == "" {
		sid = uuid.NewString()
	}
	pair, err := s.issuePair(u, sid)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toResponse(*u), nil
}

func (s *service) Me(ctx context.Context, actor session.Actor) (AuthResponse, error) {
	if actor.UID == "" {
		return AuthResponse{}, apperror.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, actor.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return toResponse(*u), nil
}

func (s *service) VerifyAccessToken(ctx context.Context, token string) (session.Identity, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return session.Identity{}, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, revocationIDs(claims)...)
	if err != nil {
		s.logger.Error("verify token revocation check failed", zap.Error(err))
		return session.Identity{}, err
	}
	if revoked {
		return session.Identity{}, autherrors.ErrTokenRevoked
	}

	return session.Identity{UID: claims.UserID, Email: claims.Email, Role: claims.Role, JTI: claims.ID}, nil
}

func (s *service) OnAuthChange(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *service) emit(e Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

func sessionRevocationID(sid string) string {
	return "session:" + sid
}

// revocationIDs lists the token's own jti and its session.
func revocationIDs(c *Claims) []string {
	ids := []string{c.ID}
	if c.SessionID != "" {
		ids = append(ids, sessionRevocationID(c.SessionID))
	}
	return ids
}

func (s *service) issuePair(u *user.User, sid string) (TokenPair, error) {
	access, err := s.generateToken(u, sid, tokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(u, sid, tokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(u *user.User, sid, tokenType string, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		TokenType: tokenType,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *service) parse(raw, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" || claims.ID == "" || claims.TokenType != tokenType {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) remaining(c *Claims) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(s.clock.Now())
}

func mapCreateError(err error) *apperror.AppError {
	mapped := user.MapRepositoryError(err)
	switch {
	case errors.Is(mapped, usererrors.ErrUserAlreadyExists):
		return autherrors.ErrEmailAlreadyRegistered
	case errors.Is(mapped, usererrors.ErrEmployeeIDAlreadyExists):
		return usererrors.ErrEmployeeIDAlreadyExists
	}
	return nil
}

func toResponse(u user.User) AuthResponse {
	return AuthResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Department: u.Department,
		Position:   u.Position,
		Role:       u.Role,
	}
}
