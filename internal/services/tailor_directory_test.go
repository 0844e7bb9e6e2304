package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/terraincognita07/tailorhub/internal/models"
	"gorm.io/gorm"
)

type stubListingRepo struct {
	profiles []models.TailorProfile
	err      error
}

func (stub *stubListingRepo) ListWithUsers(context.Context) ([]models.TailorProfile, error) {
	return stub.profiles, stub.err
}

func (stub *stubListingRepo) FindByUserID(_ context.Context, userID uint) (models.TailorProfile, error) {
	if stub.err != nil {
		return models.TailorProfile{}, stub.err
	}
	for _, profile := range stub.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return models.TailorProfile{}, gorm.ErrRecordNotFound
}

func directoryFixture() *stubListingRepo {
	return &stubListingRepo{profiles: []models.TailorProfile{
		{UserID: 1, BusinessName: "Royal Stitch", Specialties: []string{"Wedding Dresses", "Women"}, RatingAverage: 4.9, User: models.User{FullName: "Priya Nair"}},
		{UserID: 2, BusinessName: "Gent's Cut", Specialties: []string{"Men's Suits"}, RatingAverage: 4.5, User: models.User{FullName: "Omar Haddad"}},
		{UserID: 3, BusinessName: "Quick Hem", Specialties: []string{"Alterations"}, RatingAverage: 3.8, User: models.User{FullName: "Lena Vogel"}},
	}}
}

func searchIDs(t *testing.T, service *TailorDirectoryService, query DirectoryQuery) []uint {
	t.Helper()

	listings, err := service.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("Search(%+v) unexpected error: %v", query, err)
	}
	ids := make([]uint, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.UserID)
	}
	return ids
}

func TestTailorDirectorySearchCategories(t *testing.T) {
	service := NewTailorDirectoryService(directoryFixture())

	testCases := []struct {
		category string
		want     []uint
	}{
		{category: "", want: []uint{1, 2, 3}},
		{category: "all", want: []uint{1, 2, 3}},
		{category: "nearby", want: []uint{1, 2, 3}},
		{category: "top-rated", want: []uint{1, 2}},
		{category: "Wedding", want: []uint{1}},
		{category: "men", want: []uint{1, 2}},
		{category: "women", want: []uint{1}},
		{category: "leather", want: []uint{}},
	}

	for _, testCase := range testCases {
		got := searchIDs(t, service, DirectoryQuery{Category: testCase.category})
		if !reflect.DeepEqual(got, testCase.want) {
			t.Fatalf("Search(category=%q) = %v, want %v", testCase.category, got, testCase.want)
		}
	}
}

func TestTailorDirectorySearchText(t *testing.T) {
	service := NewTailorDirectoryService(directoryFixture())

	if got := searchIDs(t, service, DirectoryQuery{Text: "  stitch "}); !reflect.DeepEqual(got, []uint{1}) {
		t.Fatalf("Search(text=stitch) = %v, want [1]", got)
	}
	if got := searchIDs(t, service, DirectoryQuery{Text: "vogel"}); !reflect.DeepEqual(got, []uint{3}) {
		t.Fatalf("Search(text=vogel) = %v, want [3]", got)
	}
}

func TestTailorDirectorySearchPropagatesErrors(t *testing.T) {
	cause := errors.New("database locked")
	service := NewTailorDirectoryService(&stubListingRepo{err: cause})

	if _, err := service.Search(context.Background(), DirectoryQuery{}); !errors.Is(err, cause) {
		t.Fatalf("expected %v, got %v", cause, err)
	}
}

func TestTailorDirectoryDetail(t *testing.T) {
	repo := directoryFixture()
	repo.profiles[0].Certifications = []string{"Guild of Cutters"}
	repo.profiles[0].Portfolio = "https://royal.example"
	service := NewTailorDirectoryService(repo)

	detail, err := service.Detail(context.Background(), 1)
	if err != nil {
		t.Fatalf("Detail(1) unexpected error: %v", err)
	}
	if detail.Name != "Priya Nair" || detail.BusinessName != "Royal Stitch" || detail.RatingAverage != 4.9 {
		t.Fatalf("Detail(1) listing = %+v", detail.TailorListing)
	}
	if !reflect.DeepEqual(detail.Certifications, []string{"Guild of Cutters"}) || detail.Portfolio != "https://royal.example" {
		t.Fatalf("Detail(1) verification fields = %v %q", detail.Certifications, detail.Portfolio)
	}

	if _, err := service.Detail(context.Background(), 99); !errors.Is(err, ErrTailorNotFound) {
		t.Fatalf("expected ErrTailorNotFound, got %v", err)
	}
}

func TestTailorDirectoryDetailPropagatesErrors(t *testing.T) {
	cause := errors.New("database locked")
	service := NewTailorDirectoryService(&stubListingRepo{err: cause})

	if _, err := service.Detail(context.Background(), 1); !errors.Is(err, cause) {
		t.Fatalf("expected %v, got %v", cause, err)
	}
}
