package services

import (
	"context"
	"testing"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	gormModels "mentorhub/backend/internal/models/gorm"
)

func TestRoleRegistry_AssignThenRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, role := range constants.AllRoles {
		if _, err := env.roles.Assign(ctx, "p1", role, nil); err != nil {
			t.Fatalf("Assign %s failed: %v", role, err)
		}
		held, err := env.roles.HasAnyRole(ctx, "p1", role)
		if err != nil || !held {
			t.Fatalf("Expected rolesOf to contain %s after assign (err=%v)", role, err)
		}

		if err := env.roles.Revoke(ctx, "p1", role, "admin"); err != nil {
			t.Fatalf("Revoke %s failed: %v", role, err)
		}
		held, err = env.roles.HasAnyRole(ctx, "p1", role)
		if err != nil || held {
			t.Fatalf("Expected rolesOf to drop %s after revoke (err=%v)", role, err)
		}
	}
}

func TestRoleRegistry_AssignIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.roles.Assign(ctx, "p1", constants.RoleMentor, nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	second, err := env.roles.Assign(ctx, "p1", constants.RoleMentor, nil)
	if err != nil {
		t.Fatalf("Second assign failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Expected the existing assignment back, got %s and %s", first.ID, second.ID)
	}

	roles, _ := env.roles.RolesOf(ctx, "p1")
	if len(roles) != 1 {
		t.Errorf("Expected a single role, got %v", roles)
	}
	if n := env.events.count(constants.EventRoleAssigned); n != 1 {
		t.Errorf("Expected 1 ROLE_ASSIGNED event, got %d", n)
	}
}

func TestRoleRegistry_RevokeAbsentIsNoop(t *testing.T) {
	env := newTestEnv(t)

	if err := env.roles.Revoke(context.Background(), "p1", constants.RoleAdmin, "x"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if n := env.events.count(constants.EventRoleRevoked); n != 0 {
		t.Errorf("Expected no ROLE_REVOKED event, got %d", n)
	}
}

func TestRoleRegistry_UnknownRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.roles.Assign(context.Background(), "p1", constants.Role("pilot"), nil)
	if !IsKind(err, KindValidationFailed) {
		t.Errorf("Expected ValidationFailed, got %v", err)
	}
}

func TestRoleRegistry_StoreFailureIsAssignmentFailed(t *testing.T) {
	env := newTestEnv(t)

	sqlDB, _ := env.db.DB()
	sqlDB.Close()

	_, err := env.roles.Assign(context.Background(), "p1", constants.RoleMentor, nil)
	if !IsKind(err, KindAssignmentFailed) {
		t.Fatalf("Expected AssignmentFailed, got %v", err)
	}
	if !IsKind(err, KindStoreUnavailable) {
		t.Errorf("Expected AssignmentFailed to wrap StoreUnavailable, got %v", err)
	}
}

func TestRoleRegistry_OnlySuperAdminGrantsAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.admin(t, "admin", constants.RoleAdmin)
	super := env.admin(t, "root", constants.RoleSuperAdmin)

	if _, err := env.roles.Grant(ctx, admin, "p1", constants.RoleMentor); err != nil {
		t.Errorf("Expected admin to grant mentor, got %v", err)
	}
	if _, err := env.roles.Grant(ctx, admin, "p1", constants.RoleAdmin); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected admin granting admin to be denied, got %v", err)
	}
	if _, err := env.roles.Grant(ctx, super, "p1", constants.RoleAdmin); err != nil {
		t.Errorf("Expected super_admin to grant admin, got %v", err)
	}
	if _, err := env.roles.Grant(ctx, "p1-nobody", "p2", constants.RoleMentor); !IsKind(err, KindAuthorizationDenied) {
		t.Errorf("Expected non-admin to be denied, got %v", err)
	}
}

func TestRoleRegistry_CannotRevokeOwnLastAdminRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	super := env.admin(t, "root", constants.RoleSuperAdmin)

	if err := env.roles.Withdraw(ctx, super, super, constants.RoleSuperAdmin); !IsKind(err, KindAuthorizationDenied) {
		t.Fatalf("Expected self-revoke of last admin role to be denied, got %v", err)
	}

	if _, err := env.roles.Grant(ctx, super, super, constants.RoleAdmin); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := env.roles.Withdraw(ctx, super, super, constants.RoleAdmin); err != nil {
		t.Errorf("Expected revoke with another admin role left to succeed, got %v", err)
	}
}

func TestRoleRegistry_InvalidateAfterDirectWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if roles, _ := env.roles.RolesOf(ctx, "p1"); len(roles) != 0 {
		t.Fatalf("Expected no roles yet, got %v", roles)
	}

	repo := repositories.NewRoleAssignmentRepository(env.db)
	if err := repo.Create(ctx, &gormModels.RoleAssignment{PrincipalID: "p1", Role: constants.RoleSuperAdmin}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if held, _ := env.roles.HasAnyRole(ctx, "p1", constants.RoleSuperAdmin); held {
		t.Fatal("Expected the cached empty role set before invalidation")
	}

	InvalidateRoleCache(env.cache, "p1")

	held, err := env.roles.HasAnyRole(ctx, "p1", constants.RoleSuperAdmin)
	if err != nil || !held {
		t.Errorf("Expected super_admin after invalidation, held=%v err=%v", held, err)
	}
}
