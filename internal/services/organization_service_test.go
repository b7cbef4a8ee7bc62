package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/models"
)

func TestApplyStartsUnapproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)

	org, err := svc.Apply(donor, &dto.ApplyOrganizationRequest{Name: "Green Roots", Description: "Tree planting"})
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if org.Approved {
		t.Fatalf("Apply() created an approved organization")
	}
}

func TestApplyValidatesAndConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)

	if _, err := svc.Apply(donor, &dto.ApplyOrganizationRequest{Name: "", Description: "x"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty name kind = %v, want validation", apperr.KindOf(err))
	}

	seedOrg(t, db, "Green Roots", false)
	if _, err := svc.Apply(donor, &dto.ApplyOrganizationRequest{Name: "Green Roots", Description: "dup"}); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate name kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	org := seedOrg(t, db, "Green Roots", false)

	if err := svc.Approve(donor, org.ID); apperr.KindOf(err) != apperr.KindAuthz {
		t.Fatalf("donor approve kind = %v, want authz", apperr.KindOf(err))
	}

	var stored models.Organization
	db.First(&stored, "id = ?", org.ID)
	if stored.Approved {
		t.Fatalf("denied approval still flipped the flag")
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, admin := seedUser(t, db, "root", "root@x.com", "pw", models.RoleAdmin)
	org := seedOrg(t, db, "Green Roots", false)

	if err := svc.Approve(admin, org.ID); err != nil {
		t.Fatalf("first Approve() error: %v", err)
	}

	var stored models.Organization
	db.First(&stored, "id = ?", org.ID)
	firstCreated := stored.CreatedAt

	time.Sleep(10 * time.Millisecond)
	if err := svc.Approve(admin, org.ID); err != nil {
		t.Fatalf("second Approve() error: %v", err)
	}

	db.First(&stored, "id = ?", org.ID)
	if !stored.Approved {
		t.Fatalf("organization not approved")
	}
	if !stored.CreatedAt.Equal(firstCreated) {
		t.Fatalf("repeat approval mutated the record")
	}
}

func TestApproveUnknownOrg(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, admin := seedUser(t, db, "root", "root@x.com", "pw", models.RoleAdmin)

	if err := svc.Approve(admin, uuid.New()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("Approve() kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestDeleteCascadesOnlyOwnRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	alice, _ := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	_, admin := seedUser(t, db, "root", "root@x.com", "pw", models.RoleAdmin)

	doomed := seedOrg(t, db, "Doomed", true)
	other := seedOrg(t, db, "Other", true)

	for _, orgID := range []uuid.UUID{doomed.ID, other.ID} {
		db.Create(&models.Donation{ID: uuid.New(), Amount: 5, Date: time.Now(), UserID: alice.ID, OrganizationID: orgID})
		db.Create(&models.Story{ID: uuid.New(), Title: "t", Content: "c", DatePosted: time.Now(), OrganizationID: orgID})
	}

	if err := svc.Delete(admin, doomed.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	var donations, stories int64
	db.Model(&models.Donation{}).Where("organization_id = ?", doomed.ID).Count(&donations)
	db.Model(&models.Story{}).Where("organization_id = ?", doomed.ID).Count(&stories)
	if donations != 0 || stories != 0 {
		t.Fatalf("cascade left %d donations, %d stories", donations, stories)
	}

	db.Model(&models.Donation{}).Where("organization_id = ?", other.ID).Count(&donations)
	db.Model(&models.Story{}).Where("organization_id = ?", other.ID).Count(&stories)
	if donations != 1 || stories != 1 {
		t.Fatalf("cascade touched unrelated org: %d donations, %d stories", donations, stories)
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	org := seedOrg(t, db, "Green Roots", true)

	if err := svc.Delete(donor, org.ID); apperr.KindOf(err) != apperr.KindAuthz {
		t.Fatalf("donor delete kind = %v, want authz", apperr.KindOf(err))
	}
}

func TestListReturnsAllRegardlessOfApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	seedOrg(t, db, "Approved", true)
	seedOrg(t, db, "Pending", false)

	orgs, err := svc.List()
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("List() returned %d organizations, want 2", len(orgs))
	}
}
