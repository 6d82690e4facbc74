package services

import (
	"context"
	"errors"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	gormModels "mentorhub/backend/internal/models/gorm"
)

// RoleRegistryService maps principals to roles. Reads go through the cache; writes invalidate it.
type RoleRegistryService struct {
	roles    *repositories.RoleAssignmentRepository
	cache    common.CacheInterface
	cacheTTL time.Duration
	events   common.EventPublisher
	metrics  *metrics.MetricsRegistry
}

func NewRoleRegistryService(
	roles *repositories.RoleAssignmentRepository,
	cache common.CacheInterface,
	cacheTTL time.Duration,
	events common.EventPublisher,
	m *metrics.MetricsRegistry,
) *RoleRegistryService {
	return &RoleRegistryService{
		roles:    roles,
		cache:    cache,
		cacheTTL: cacheTTL,
		events:   events,
		metrics:  m,
	}
}

func rolesCacheKey(principalID string) string {
	return string(constants.CachePrefixRoles) + principalID
}

// InvalidateRoleCache drops the cached role set of principalID, for writers outside this service.
func InvalidateRoleCache(cache common.CacheInterface, principalID string) {
	cache.Delete(rolesCacheKey(principalID))
}

func assignmentFailed(err error) error {
	return newError(KindAssignmentFailed, "", newError(KindStoreUnavailable, "", err))
}

// Assign grants role to principalID. Granting a held role returns the existing assignment.
func (s *RoleRegistryService) Assign(ctx context.Context, principalID string, role constants.Role, grantedBy *string) (*gormModels.RoleAssignment, error) {
	if !role.Valid() {
		return nil, validationErr("unknown role %q", role)
	}

	existing, err := s.roles.Get(ctx, principalID, role)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, assignmentFailed(err)
	}

	ra := &gormModels.RoleAssignment{
		PrincipalID: principalID,
		Role:        role,
		GrantedBy:   grantedBy,
	}
	if err := s.roles.Create(ctx, ra); err != nil {
		// a concurrent assign may have won the unique index
		if existing, getErr := s.roles.Get(ctx, principalID, role); getErr == nil {
			return existing, nil
		}
		return nil, assignmentFailed(err)
	}

	s.cache.Delete(rolesCacheKey(principalID))
	logging.Info("Role assigned", "principal_id", principalID, "role", role)

	actor := ""
	if grantedBy != nil {
		actor = *grantedBy
	}
	publish(ctx, s.events, constants.EventRoleAssigned, actor, principalID, map[string]interface{}{"role": role})

	return ra, nil
}

// Revoke removes role from principalID; revoking an absent role is a no-op.
func (s *RoleRegistryService) Revoke(ctx context.Context, principalID string, role constants.Role, actorID string) error {
	if !role.Valid() {
		return validationErr("unknown role %q", role)
	}

	existed, err := s.roles.Delete(ctx, principalID, role)
	if err != nil {
		return assignmentFailed(err)
	}

	s.cache.Delete(rolesCacheKey(principalID))
	if existed {
		logging.Info("Role revoked", "principal_id", principalID, "role", role)
		publish(ctx, s.events, constants.EventRoleRevoked, actorID, principalID, map[string]interface{}{"role": role})
	}
	return nil
}

// RolesOf returns the roles held by principalID
func (s *RoleRegistryService) RolesOf(ctx context.Context, principalID string) ([]constants.Role, error) {
	key := rolesCacheKey(principalID)

	var cached []constants.Role
	if s.cache.GetInto(key, &cached) {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixRoles)).Inc()
		return cached, nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixRoles)).Inc()

	roles, err := s.roles.ListRoles(ctx, principalID)
	if err != nil {
		return nil, storeErr(err)
	}
	if roles == nil {
		roles = []constants.Role{}
	}

	s.cache.Set(key, roles, s.cacheTTL)
	return roles, nil
}

// HasAnyRole reports whether principalID holds at least one of roles
func (s *RoleRegistryService) HasAnyRole(ctx context.Context, principalID string, roles ...constants.Role) (bool, error) {
	held, err := s.RolesOf(ctx, principalID)
	if err != nil {
		return false, err
	}
	return containsAnyRole(held, roles...), nil
}

func containsAnyRole(held []constants.Role, wanted ...constants.Role) bool {
	for _, h := range held {
		for _, w := range wanted {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Grant is the admin surface of Assign. Admin-grade roles can only be granted by a super_admin.
func (s *RoleRegistryService) Grant(ctx context.Context, actorID, principalID string, role constants.Role) (*gormModels.RoleAssignment, error) {
	if err := s.authorizeRoleChange(ctx, actorID, role); err != nil {
		return nil, err
	}
	return s.Assign(ctx, principalID, role, &actorID)
}

// Withdraw is the admin surface of Revoke. An admin may not drop their own last admin-grade role.
func (s *RoleRegistryService) Withdraw(ctx context.Context, actorID, principalID string, role constants.Role) error {
	if err := s.authorizeRoleChange(ctx, actorID, role); err != nil {
		return err
	}

	if actorID == principalID && role.IsAdminGrade() {
		held, err := s.RolesOf(ctx, actorID)
		if err != nil {
			return err
		}
		remaining := 0
		for _, r := range held {
			if r.IsAdminGrade() && r != role {
				remaining++
			}
		}
		if remaining == 0 {
			return deniedErr("cannot revoke your own last admin role")
		}
	}

	return s.Revoke(ctx, principalID, role, actorID)
}

func (s *RoleRegistryService) authorizeRoleChange(ctx context.Context, actorID string, role constants.Role) error {
	if !role.Valid() {
		return validationErr("unknown role %q", role)
	}

	held, err := s.RolesOf(ctx, actorID)
	if err != nil {
		return err
	}

	if role.IsAdminGrade() {
		if !containsAnyRole(held, constants.RoleSuperAdmin) {
			return deniedErr("only a super_admin can change %s roles", role)
		}
		return nil
	}

	if !containsAnyRole(held, constants.RoleAdmin, constants.RoleSuperAdmin) {
		return deniedErr("admin role required")
	}
	return nil
}
