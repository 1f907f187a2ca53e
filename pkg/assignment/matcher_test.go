package assignment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

type fakePropertyStore struct {
	byKey map[string]*domain.Property
}

func (f *fakePropertyStore) FindActiveByAddressKey(ctx context.Context, key string) (*domain.Property, error) {
	if p, ok := f.byKey[key]; ok {
		return p, nil
	}
	return nil, domain.ErrPropertyNotFound
}

type fakeUserStore struct {
	tenants    map[uuid.UUID]*domain.User
	failAssign map[uuid.UUID]error
	assigns    int
}

func (f *fakeUserStore) ListUnassignedTenantsByAddressKey(ctx context.Context, key string) ([]domain.User, error) {
	var out []domain.User
	for _, t := range f.tenants {
		if t.NormalizedAddress != nil && *t.NormalizedAddress == key && !t.IsAssigned() && t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Assign(ctx context.Context, tenantID, landlordID, propertyID uuid.UUID) (bool, error) {
	if err, ok := f.failAssign[tenantID]; ok {
		return false, err
	}
	tenant, ok := f.tenants[tenantID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if tenant.IsAssigned() {
		return false, nil
	}
	f.assigns++
	tenant.AssignedLandlordID = &landlordID
	tenant.AssignedPropertyID = &propertyID
	return true, nil
}

func newTenant(key string) *domain.User {
	k := key
	return &domain.User{
		ID:                uuid.New(),
		Username:          "tenant-" + key,
		Role:              domain.RoleTenant,
		Address:           &domain.Address{Street: "1 Elm St", City: "Boston", State: "MA", ZipCode: "02101"},
		NormalizedAddress: &k,
		IsActive:          true,
	}
}

func newProperty(key string) *domain.Property {
	return &domain.Property{
		ID:                uuid.New(),
		Address:           domain.Address{Street: "1 Elm St", City: "Boston", State: "MA", ZipCode: "02101"},
		NormalizedAddress: key,
		LandlordID:        uuid.New(),
		LandlordUsername:  "landlord1",
		IsActive:          true,
	}
}

func TestAssignNewTenant_Match(t *testing.T) {
	property := newProperty("1elmstbostonma02101")
	tenant := newTenant("unused")
	users := &fakeUserStore{tenants: map[uuid.UUID]*domain.User{tenant.ID: tenant}}
	properties := &fakePropertyStore{byKey: map[string]*domain.Property{property.NormalizedAddress: property}}
	m := NewMatcher(users, properties, nil)

	assigned, err := m.AssignNewTenant(context.Background(), tenant)
	if err != nil {
		t.Fatalf("AssignNewTenant failed: %v", err)
	}
	if !assigned {
		t.Fatal("expected tenant to be assigned")
	}
	if tenant.AssignedLandlordID == nil || *tenant.AssignedLandlordID != property.LandlordID {
		t.Errorf("AssignedLandlordID = %v, want %v", tenant.AssignedLandlordID, property.LandlordID)
	}
	if tenant.AssignedPropertyID == nil || *tenant.AssignedPropertyID != property.ID {
		t.Errorf("AssignedPropertyID = %v, want %v", tenant.AssignedPropertyID, property.ID)
	}
}

func TestAssignNewTenant_NoMatchIsNotAnError(t *testing.T) {
	tenant := newTenant("nowhere")
	users := &fakeUserStore{tenants: map[uuid.UUID]*domain.User{tenant.ID: tenant}}
	properties := &fakePropertyStore{byKey: map[string]*domain.Property{}}
	m := NewMatcher(users, properties, nil)

	assigned, err := m.AssignNewTenant(context.Background(), tenant)
	if err != nil {
		t.Fatalf("AssignNewTenant failed: %v", err)
	}
	if assigned {
		t.Error("expected no assignment without a matching property")
	}
	if tenant.IsAssigned() {
		t.Error("tenant should remain unassigned")
	}
}

func TestAssignNewTenant_NoAddress(t *testing.T) {
	tenant := &domain.User{ID: uuid.New(), Username: "bare", Role: domain.RoleTenant, IsActive: true}
	m := NewMatcher(&fakeUserStore{}, &fakePropertyStore{}, nil)

	assigned, err := m.AssignNewTenant(context.Background(), tenant)
	if err != nil {
		t.Fatalf("AssignNewTenant failed: %v", err)
	}
	if assigned {
		t.Error("tenant without address must stay unassigned")
	}
}

func TestAssignNewTenant_NotATenant(t *testing.T) {
	landlord := &domain.User{ID: uuid.New(), Username: "landlord1", Role: domain.RoleLandlord}
	m := NewMatcher(&fakeUserStore{}, &fakePropertyStore{}, nil)

	_, err := m.AssignNewTenant(context.Background(), landlord)
	if !errors.Is(err, domain.ErrNotAssignable) {
		t.Errorf("err = %v, want ErrNotAssignable", err)
	}
}

func TestAssignNewTenant_Idempotent(t *testing.T) {
	property := newProperty("1elmstbostonma02101")
	tenant := newTenant("unused")
	users := &fakeUserStore{tenants: map[uuid.UUID]*domain.User{tenant.ID: tenant}}
	properties := &fakePropertyStore{byKey: map[string]*domain.Property{property.NormalizedAddress: property}}
	m := NewMatcher(users, properties, nil)

	if _, err := m.AssignNewTenant(context.Background(), tenant); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstLandlord := *tenant.AssignedLandlordID

	// Re-running the trigger must not double-assign or error.
	assigned, err := m.AssignNewTenant(context.Background(), tenant)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if assigned {
		t.Error("second run should be a no-op")
	}
	if users.assigns != 1 {
		t.Errorf("assign writes = %d, want 1", users.assigns)
	}
	if *tenant.AssignedLandlordID != firstLandlord {
		t.Error("assignment changed on second run")
	}
}

func TestAssignTenantsToProperty(t *testing.T) {
	key := "1elmstbostonma02101"
	property := newProperty(key)
	t1 := newTenant(key)
	t2 := newTenant(key)
	t2.Username = "tenant2"
	other := newTenant("othervillema99999")
	already := newTenant(key)
	already.Username = "already"
	existing := uuid.New()
	already.AssignedLandlordID = &existing

	users := &fakeUserStore{tenants: map[uuid.UUID]*domain.User{
		t1.ID: t1, t2.ID: t2, other.ID: other, already.ID: already,
	}}
	m := NewMatcher(users, &fakePropertyStore{}, nil)

	report, err := m.AssignTenantsToProperty(context.Background(), property)
	if err != nil {
		t.Fatalf("AssignTenantsToProperty failed: %v", err)
	}

	if len(report.Assigned) != 2 {
		t.Fatalf("assigned %d tenants, want 2: %v", len(report.Assigned), report.Assigned)
	}
	if len(report.Failed) != 0 {
		t.Errorf("failed %d tenants, want 0", len(report.Failed))
	}
	if other.IsAssigned() {
		t.Error("tenant at a different address must not be assigned")
	}
	if *already.AssignedLandlordID != existing {
		t.Error("already-assigned tenant must not be reassigned")
	}
}

func TestAssignTenantsToProperty_PartialFailure(t *testing.T) {
	key := "1elmstbostonma02101"
	property := newProperty(key)
	good := newTenant(key)
	bad := newTenant(key)
	bad.Username = "bad"

	users := &fakeUserStore{
		tenants:    map[uuid.UUID]*domain.User{good.ID: good, bad.ID: bad},
		failAssign: map[uuid.UUID]error{bad.ID: errors.New("write conflict")},
	}
	m := NewMatcher(users, &fakePropertyStore{}, nil)

	report, err := m.AssignTenantsToProperty(context.Background(), property)
	if err != nil {
		t.Fatalf("AssignTenantsToProperty failed: %v", err)
	}

	// One failure must not abort the sibling assignment.
	if len(report.Assigned) != 1 || report.Assigned[0] != good.Username {
		t.Errorf("Assigned = %v, want [%s]", report.Assigned, good.Username)
	}
	if len(report.Failed) != 1 || report.Failed[0].Username != bad.Username {
		t.Fatalf("Failed = %v, want one entry for %s", report.Failed, bad.Username)
	}
	if report.Failed[0].Err == nil {
		t.Error("failure entry should carry the underlying error")
	}
}

func TestAssignTenantsToProperty_Idempotent(t *testing.T) {
	key := "1elmstbostonma02101"
	property := newProperty(key)
	tenant := newTenant(key)
	users := &fakeUserStore{tenants: map[uuid.UUID]*domain.User{tenant.ID: tenant}}
	m := NewMatcher(users, &fakePropertyStore{}, nil)

	if _, err := m.AssignTenantsToProperty(context.Background(), property); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	report, err := m.AssignTenantsToProperty(context.Background(), property)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(report.Assigned) != 0 || len(report.Failed) != 0 {
		t.Errorf("second run report = %+v, want empty", report)
	}
	if users.assigns != 1 {
		t.Errorf("assign writes = %d, want 1", users.assigns)
	}
}
