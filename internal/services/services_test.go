package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/metrics"
	gormModels "mentorhub/backend/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// every pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(gormModels.All()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

// Mock EventPublisher
type recordingPublisher struct {
	mu          sync.Mutex
	events      []common.LifecycleEvent
	publishFunc func(ctx context.Context, event common.LifecycleEvent) error
}

func (p *recordingPublisher) Publish(ctx context.Context, event common.LifecycleEvent) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	if p.publishFunc != nil {
		return p.publishFunc(ctx, event)
	}
	return nil
}

func (p *recordingPublisher) Length(context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int64(len(p.events)), nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type testEnv struct {
	db           *gorm.DB
	cache        common.CacheInterface
	principals   *repositories.PrincipalRepository
	roles        *RoleRegistryService
	onboarding   *OnboardingService
	registration *RegistrationService
	identity     *IdentityService
	requests     *MentorshipRequestService
	roadmaps     *RoadmapService
	events       *recordingPublisher
	metrics      *metrics.MetricsRegistry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	cache := common.NewCacheService(time.Minute, time.Minute)
	events := &recordingPublisher{}
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	validator, err := NewProfileValidator()
	if err != nil {
		t.Fatalf("Failed to compile schemas: %v", err)
	}

	principals := repositories.NewPrincipalRepository(db)
	roles := NewRoleRegistryService(repositories.NewRoleAssignmentRepository(db), cache, time.Minute, events, m)
	onboarding := NewOnboardingService(repositories.NewApplicationRepository(db), roles, validator, events, m, true)
	registration := NewRegistrationService(principals, roles, onboarding, events, m)
	sessions := common.NewSessionService(cache, time.Hour)
	identity := NewIdentityService(principals, roles, registration, sessions, common.NewTokenSigner([]byte("test-secret"), time.Hour))
	requests := NewMentorshipRequestService(repositories.NewMentorshipRequestRepository(db), roles, onboarding, events, m)
	roadmaps := NewRoadmapService(repositories.NewRoadmapRepository(db), repositories.NewCommentRepository(db), requests, roles, events, m, 30*time.Second)

	return &testEnv{
		db:           db,
		cache:        cache,
		principals:   principals,
		roles:        roles,
		onboarding:   onboarding,
		registration: registration,
		identity:     identity,
		requests:     requests,
		roadmaps:     roadmaps,
		events:       events,
		metrics:      m,
	}
}

// register creates a principal and runs the registration flow on track
func (e *testEnv) register(t *testing.T, name string, track constants.Track) string {
	t.Helper()
	ctx := context.Background()

	p := &gormModels.Principal{Email: name + "@example.com", DisplayName: name}
	if err := e.principals.Create(ctx, p); err != nil {
		t.Fatalf("Failed to create principal: %v", err)
	}
	if _, err := e.registration.EnsureRegistered(ctx, p.ID, track, name); err != nil {
		t.Fatalf("EnsureRegistered failed: %v", err)
	}
	return p.ID
}

func (e *testEnv) admin(t *testing.T, name string, role constants.Role) string {
	t.Helper()
	ctx := context.Background()

	p := &gormModels.Principal{Email: name + "@example.com", DisplayName: name}
	if err := e.principals.Create(ctx, p); err != nil {
		t.Fatalf("Failed to create principal: %v", err)
	}
	if _, err := e.roles.Assign(ctx, p.ID, role, nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	return p.ID
}

// approvedMentor registers a mentor whose completed profile offers skills
func (e *testEnv) approvedMentor(t *testing.T, name string, skills ...string) string {
	t.Helper()
	ctx := context.Background()

	id := e.register(t, name, constants.TrackMentor)
	_, err := e.onboarding.CompleteProfile(ctx, id, constants.TrackMentor, map[string]interface{}{
		"full_name": name,
		"skills":    skills,
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	return id
}

// acceptedPair returns a candidate, mentor and accepted request between them
func (e *testEnv) acceptedPair(t *testing.T) (candidateID, mentorID, requestID string) {
	t.Helper()
	ctx := context.Background()

	mentorID = e.approvedMentor(t, "mentor", "go", "sql")
	candidateID = e.register(t, "candidate", constants.TrackCandidate)

	req, err := e.requests.Create(ctx, candidateID, mentorID, "hi", []string{"go"})
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if _, err := e.requests.Decide(ctx, mentorID, req.ID, constants.RequestAccepted); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	return candidateID, mentorID, req.ID
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
