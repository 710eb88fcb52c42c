// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pitchside/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password every seeded user gets.
const SeedPassword = "password123"

var matchups = []string{
	"Argentina - France", "Brazil - Germany", "Spain - Italy",
	"England - Portugal", "Netherlands - Croatia", "Uruguay - Belgium",
	"Mexico - Poland", "Japan - Denmark", "Morocco - Switzerland",
	"Senegal - Ecuador", "Ghana - South Korea", "USA - Wales",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser persists a user with a fake identity and the shared seed password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.r.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPrediction constructs a prediction for the user without persisting it.
func (f *Factory) BuildPrediction(user *models.User, match string) *models.Prediction {
	p := &models.Prediction{
		Match:       match,
		GoalsTeam1:  f.r.Intn(5),
		GoalsTeam2:  f.r.Intn(5),
		RedCards:    f.r.Intn(2),
		YellowCards: f.r.Intn(6),
		Penalties:   f.r.Intn(3),
		CreatedBy:   user.ID,
	}

	// spread created_at over the last 90 days so pagination looks realistic
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	p.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	return p
}

// CreatePredictions persists up to count predictions for the user, one per
// distinct matchup so the owner/match uniqueness rule holds.
func (f *Factory) CreatePredictions(user *models.User, count int) ([]*models.Prediction, error) {
	if count > len(matchups) {
		count = len(matchups)
	}

	picks := f.r.Perm(len(matchups))[:count]
	predictions := make([]*models.Prediction, 0, count)
	for _, idx := range picks {
		p := f.BuildPrediction(user, matchups[idx])
		if err := f.db.Create(p).Error; err != nil {
			return predictions, err
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// Run seeds numUsers users with a handful of predictions each.
func (f *Factory) Run(numUsers, predictionsPerUser int) error {
	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		if _, err := f.CreatePredictions(user, predictionsPerUser); err != nil {
			return fmt.Errorf("seeding predictions for %s: %w", user.Username, err)
		}
	}
	log.Printf("Seeded %d users with up to %d predictions each", numUsers, predictionsPerUser)
	return nil
}

// ClearAll removes all seeded rows. Predictions go first to respect the
// foreign key to users.
func (f *Factory) ClearAll() error {
	if err := f.db.Exec("DELETE FROM predictions").Error; err != nil {
		return err
	}
	return f.db.Exec("DELETE FROM users").Error
}
