package services

import (
	"context"
	"errors"
	"strings"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/models/dtos"
	gormModels "mentorhub/backend/internal/models/gorm"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Session identifies the caller behind a verified bearer token
type Session struct {
	PrincipalID string
	SessionID   string
}

// IdentityService is the sign-up/sign-in boundary: bcrypt credentials, cached sessions, JWT bearer tokens
type IdentityService struct {
	principals   *repositories.PrincipalRepository
	roles        *RoleRegistryService
	registration *RegistrationService
	sessions     *common.SessionService
	signer       *common.TokenSigner
}

func NewIdentityService(
	principals *repositories.PrincipalRepository,
	roles *RoleRegistryService,
	registration *RegistrationService,
	sessions *common.SessionService,
	signer *common.TokenSigner,
) *IdentityService {
	return &IdentityService{
		principals:   principals,
		roles:        roles,
		registration: registration,
		sessions:     sessions,
		signer:       signer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the principal and registers it on track. Repeating a sign-up with the same
// credentials resumes an interrupted registration instead of failing.
func (s *IdentityService) SignUp(ctx context.Context, email, password, displayName string, track constants.Track) (*dtos.AuthResponse, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	if !strings.Contains(email, "@") {
		return nil, validationErr("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, validationErr("password must be at least %d characters", minPasswordLength)
	}
	if displayName == "" {
		return nil, validationErr("display_name is required")
	}
	if !track.Valid() {
		return nil, validationErr("track must be candidate or mentor")
	}

	principal, err := s.principals.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
			return nil, newError(KindDuplicateRequest, constants.MsgEmailTaken, nil)
		}
		logging.Info("Resuming sign-up for existing principal", "principal_id", principal.ID)
	case errors.Is(err, repositories.ErrNotFound):
		principal, err = s.createPrincipal(ctx, email, password, displayName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, storeErr(err)
	}

	reg, err := s.registration.EnsureRegistered(ctx, principal.ID, track, displayName)
	if err != nil {
		return nil, err
	}

	resp, err := s.issue(ctx, principal)
	if err != nil {
		return nil, err
	}
	resp.Registration = reg
	return resp, nil
}

func (s *IdentityService) createPrincipal(ctx context.Context, email, password, displayName string) (*gormModels.Principal, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, validationErr("password cannot be hashed: %v", err)
	}

	principal := &gormModels.Principal{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	if err := s.principals.Create(ctx, principal); err != nil {
		if _, getErr := s.principals.GetByEmail(ctx, email); getErr == nil {
			return nil, newError(KindDuplicateRequest, constants.MsgEmailTaken, nil)
		}
		return nil, storeErr(err)
	}

	logging.Info("Principal created", "principal_id", principal.ID)
	return principal, nil
}

// SignIn checks credentials and opens a session
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*dtos.AuthResponse, error) {
	principal, err := s.principals.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindAuthenticationRequired, constants.MsgInvalidCredentials, nil)
	}
	if err != nil {
		return nil, storeErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		return nil, newError(KindAuthenticationRequired, constants.MsgInvalidCredentials, nil)
	}

	return s.issue(ctx, principal)
}

func (s *IdentityService) issue(ctx context.Context, principal *gormModels.Principal) (*dtos.AuthResponse, error) {
	session := s.sessions.CreateSession(principal.ID)

	token, expiresAt, err := s.signer.Sign(principal.ID, session.SessionID)
	if err != nil {
		s.sessions.DeleteSession(session.SessionID)
		return nil, newError(KindStoreUnavailable, "", err)
	}

	view, err := s.view(ctx, principal)
	if err != nil {
		return nil, err
	}

	return &dtos.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: *view,
	}, nil
}

// SignOut ends the session; tokens bound to it stop working
func (s *IdentityService) SignOut(sessionID string) {
	s.sessions.DeleteSession(sessionID)
}

// CurrentPrincipal verifies a bearer token and its live session
func (s *IdentityService) CurrentPrincipal(token string) (*Session, error) {
	if token == "" {
		return nil, newError(KindAuthenticationRequired, "", nil)
	}

	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, newError(KindAuthenticationRequired, "", err)
	}

	session, err := s.sessions.GetSession(claims.SessionID)
	if err != nil {
		return nil, newError(KindAuthenticationRequired, "", err)
	}
	if session.PrincipalID != claims.PrincipalID {
		return nil, newError(KindAuthenticationRequired, "", errors.New("session belongs to another principal"))
	}

	return &Session{PrincipalID: session.PrincipalID, SessionID: session.SessionID}, nil
}

func (s *IdentityService) Profile(ctx context.Context, principalID string) (*dtos.PrincipalView, error) {
	principal, err := s.principals.GetByID(ctx, principalID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.view(ctx, principal)
}

// UpdateProfile lets the owner change display fields; the id never changes
func (s *IdentityService) UpdateProfile(ctx context.Context, principalID, displayName string) (*dtos.PrincipalView, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, validationErr("display_name is required")
	}

	if err := s.principals.UpdateDisplayName(ctx, principalID, displayName); err != nil {
		return nil, storeErr(err)
	}
	return s.Profile(ctx, principalID)
}

func (s *IdentityService) view(ctx context.Context, principal *gormModels.Principal) (*dtos.PrincipalView, error) {
	roles, err := s.roles.RolesOf(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	return &dtos.PrincipalView{
		ID:          principal.ID,
		Email:       principal.Email,
		DisplayName: principal.DisplayName,
		Roles:       roleStrings(roles),
		CreatedAt:   principal.CreatedAt,
	}, nil
}
