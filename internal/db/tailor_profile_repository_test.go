package db

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/tailorhub/internal/models"
)

func TestTailorProfileRepositoryUpsertReplacesSubmittedFields(t *testing.T) {
	database := openTestDatabase(t, "tailorhub-profiles.db")
	repos := NewRepositories(database)
	ctx := context.Background()

	owner := models.User{Email: "ada@stitch.example", FullName: "Ada Stitch", PasswordHash: "hash", Role: models.RoleTailor, CreatedAt: time.Now().UTC()}
	if err := repos.Users.Create(ctx, &owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	first := models.TailorProfile{UserID: owner.ID, BusinessName: "Draft", Specialties: []string{"Suits"}}
	if err := repos.TailorProfiles.Upsert(ctx, &first); err != nil {
		t.Fatalf("first Upsert() unexpected error: %v", err)
	}
	if err := database.Model(&models.TailorProfile{}).Where("user_id = ?", owner.ID).Update("rating_average", 4.8).Error; err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	second := models.TailorProfile{
		UserID:         owner.ID,
		BusinessName:   "Needle & Thread",
		Specialties:    []string{"Bridal", "Suits"},
		Certifications: []string{"Guild"},
		Experience:     9,
	}
	if err := repos.TailorProfiles.Upsert(ctx, &second); err != nil {
		t.Fatalf("second Upsert() unexpected error: %v", err)
	}

	stored, err := repos.TailorProfiles.FindByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FindByUserID() unexpected error: %v", err)
	}
	if stored.BusinessName != "Needle & Thread" || stored.Experience != 9 {
		t.Fatalf("stored profile = %+v, want replaced fields", stored)
	}
	if stored.User.ID != owner.ID || stored.User.Email != owner.Email {
		t.Fatalf("stored profile owner = %+v, want preloaded %+v", stored.User, owner)
	}
	if !reflect.DeepEqual(stored.Specialties, []string{"Bridal", "Suits"}) {
		t.Fatalf("stored specialties = %v", stored.Specialties)
	}
	if stored.RatingAverage != 4.8 {
		t.Fatalf("expected rating to survive upsert, got %v", stored.RatingAverage)
	}

	listed, err := repos.TailorProfiles.ListWithUsers(ctx)
	if err != nil {
		t.Fatalf("ListWithUsers() unexpected error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListWithUsers() len = %d, want 1", len(listed))
	}
	if listed[0].User.FullName != "Ada Stitch" {
		t.Fatalf("expected preloaded owner, got %+v", listed[0].User)
	}
}
