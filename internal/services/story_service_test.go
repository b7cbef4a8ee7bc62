package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/models"
	"github.com/mazingira/donations-backend/internal/storage"
)

func TestCreateStoryValidatesFields(t *testing.T) {
	db := newTestDB(t)
	store, _ := storage.NewFileStore(t.TempDir(), "/assets")
	svc := NewStoryService(db, store)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	org := seedOrg(t, db, "Green Roots", true)

	_, err := svc.Create(context.Background(), donor, org.ID, &dto.CreateStoryRequest{Title: "", Content: "c"}, nil)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty title kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestCreateStoryUnapprovedOrg(t *testing.T) {
	db := newTestDB(t)
	store, _ := storage.NewFileStore(t.TempDir(), "/assets")
	svc := NewStoryService(db, store)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	org := seedOrg(t, db, "Pending", false)

	_, err := svc.Create(context.Background(), donor, org.ID, &dto.CreateStoryRequest{Title: "t", Content: "c"}, nil)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unapproved org kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestCreateStoryPersistsImageURLNotBytes(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	store, _ := storage.NewFileStore(dir, "/assets")
	svc := NewStoryService(db, store)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	org := seedOrg(t, db, "Green Roots", true)

	story, err := svc.Create(context.Background(), donor, org.ID,
		&dto.CreateStoryRequest{Title: "Planting day", Content: "We planted 40 trees."},
		&ImageUpload{Filename: "trees.jpg", Data: []byte("jpegbytes")})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if !strings.HasPrefix(story.ImageURL, "/assets/") {
		t.Fatalf("image URL = %q, want /assets/ prefix", story.ImageURL)
	}

	key := strings.TrimPrefix(story.ImageURL, "/assets/")
	if _, err := os.Stat(dir + "/" + key); err != nil {
		t.Fatalf("uploaded image missing from store: %v", err)
	}
}

func TestListStoriesOrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	store, _ := storage.NewFileStore(t.TempDir(), "/assets")
	svc := NewStoryService(db, store)
	org := seedOrg(t, db, "Green Roots", true)

	old := models.Story{ID: uuid.New(), Title: "old", Content: "c", DatePosted: time.Now().Add(-time.Hour), OrganizationID: org.ID}
	recent := models.Story{ID: uuid.New(), Title: "recent", Content: "c", DatePosted: time.Now(), OrganizationID: org.ID}
	db.Create(&old)
	db.Create(&recent)

	stories, err := svc.List(org.ID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("List() returned %d stories, want 2", len(stories))
	}
	if stories[0].Title != "recent" {
		t.Fatalf("List() first story = %q, want most recent", stories[0].Title)
	}
}

func TestListStoriesUnapprovedOrgHidden(t *testing.T) {
	db := newTestDB(t)
	store, _ := storage.NewFileStore(t.TempDir(), "/assets")
	svc := NewStoryService(db, store)
	org := seedOrg(t, db, "Pending", false)

	if _, err := svc.List(org.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("List() kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestUpdateAndDeleteStoryRequireAdmin(t *testing.T) {
	db := newTestDB(t)
	store, _ := storage.NewFileStore(t.TempDir(), "/assets")
	svc := NewStoryService(db, store)
	_, donor := seedUser(t, db, "alice", "a@x.com", "pw", models.RoleDonor)
	_, admin := seedUser(t, db, "root", "root@x.com", "pw", models.RoleAdmin)
	org := seedOrg(t, db, "Green Roots", true)

	story := models.Story{ID: uuid.New(), Title: "t", Content: "c", DatePosted: time.Now(), OrganizationID: org.ID}
	db.Create(&story)

	newTitle := "edited"
	if _, err := svc.Update(donor, story.ID, &dto.UpdateStoryRequest{Title: &newTitle}); apperr.KindOf(err) != apperr.KindAuthz {
		t.Fatalf("donor update kind = %v, want authz", apperr.KindOf(err))
	}
	if err := svc.Delete(donor, story.ID); apperr.KindOf(err) != apperr.KindAuthz {
		t.Fatalf("donor delete kind = %v, want authz", apperr.KindOf(err))
	}

	updated, err := svc.Update(admin, story.ID, &dto.UpdateStoryRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("admin Update() error: %v", err)
	}
	if updated.Title != "edited" {
		t.Fatalf("Update() title = %q, want edited", updated.Title)
	}

	if err := svc.Delete(admin, story.ID); err != nil {
		t.Fatalf("admin Delete() error: %v", err)
	}
	if err := svc.Delete(admin, story.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete kind = %v, want not_found", apperr.KindOf(err))
	}
}
