package seed

import (
	"testing"

	"pitchside/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Prediction{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 || user.Username == "" || user.Email == "" {
		t.Fatalf("incomplete user: %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(SeedPassword)); err != nil {
		t.Fatalf("seeded password does not match %q: %v", SeedPassword, err)
	}
}

func TestFactoryCreatePredictions(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	predictions, err := f.CreatePredictions(user, 5)
	if err != nil {
		t.Fatalf("create predictions: %v", err)
	}
	if len(predictions) != 5 {
		t.Fatalf("expected 5 predictions, got %d", len(predictions))
	}

	seen := map[string]bool{}
	for _, p := range predictions {
		if p.CreatedBy != user.ID {
			t.Fatalf("prediction owned by %d, expected %d", p.CreatedBy, user.ID)
		}
		if seen[p.Match] {
			t.Fatalf("duplicate match %q violates the per-owner uniqueness rule", p.Match)
		}
		seen[p.Match] = true
	}
}

func TestFactoryRunAndClear(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	if err := f.Run(3, 2); err != nil {
		t.Fatalf("run: %v", err)
	}

	var users, predictions int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Prediction{}).Count(&predictions)
	if users != 3 {
		t.Fatalf("expected 3 users, got %d", users)
	}
	if predictions != 6 {
		t.Fatalf("expected 6 predictions, got %d", predictions)
	}

	if err := f.ClearAll(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Prediction{}).Count(&predictions)
	if users != 0 || predictions != 0 {
		t.Fatalf("expected empty tables, got %d users and %d predictions", users, predictions)
	}
}
