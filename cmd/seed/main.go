package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"dailydiet/internal/config"
	"dailydiet/internal/db"
	"dailydiet/internal/errors"
	"dailydiet/internal/repository"
	"dailydiet/internal/service"
	"dailydiet/internal/validation"
)

// SeedDiary is the structure of a seed file.
type SeedDiary struct {
	User struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	} `json:"user"`
	Meals []SeedMeal `json:"meals"`
}

// SeedMeal is one meal of a seed file.
type SeedMeal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	IsOnDiet    bool   `json:"isOnDiet"`
}

func main() {
	source := flag.String("source", "seed.json", "path or http(s) URL of the diary to load")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Printf("Loading diary from: %s", *source)
	diary, err := loadDiary(*source)
	if err != nil {
		log.Fatalf("Failed to load diary: %v", err)
	}
	log.Printf("Loaded %d meals for %q", len(diary.Meals), diary.User.Name)

	mealRepo := repository.NewMealRepository(gormDB)
	users := service.NewUserService(repository.NewUserRepository(gormDB))
	meals := service.NewMealService(mealRepo, nil)

	ctx := context.Background()
	sessionID, seeded, skipped, err := seedDiary(ctx, users, meals, diary)
	if err != nil {
		log.Fatalf("Failed to prepare user: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Session: %s", sessionID)
	log.Printf("  - Meals created: %d", seeded)
	log.Printf("  - Meals skipped: %d", skipped)

	metrics, err := service.NewMetricsService(mealRepo, nil).Compute(ctx, sessionID)
	if err != nil {
		log.Fatalf("Failed to compute metrics: %v", err)
	}
	log.Printf("  - Best on-diet sequence: %d of %d meals", metrics.BestSequenceOnDiet, metrics.TotalMeals)
}

// loadDiary reads a diary from a local file or an http(s) URL.
func loadDiary(source string) (*SeedDiary, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var diary SeedDiary
	if err := json.Unmarshal(body, &diary); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if diary.User.Name == "" {
		return nil, fmt.Errorf("seed file has no user name")
	}
	return &diary, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("URL returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seedDiary records the diary's meals under its user. Meals are only created
// together with the user, so running the seed again changes nothing.
func seedDiary(ctx context.Context, users service.UserService, meals service.MealService, diary *SeedDiary) (sessionID string, seeded int, skipped int, err error) {
	sessionID, created, err := resolveUser(ctx, users, diary)
	if err != nil {
		return "", 0, 0, err
	}
	if !created {
		log.Println("Diary already seeded, leaving meals untouched")
		return sessionID, 0, len(diary.Meals), nil
	}
	seeded, skipped = seedMeals(ctx, meals, sessionID, diary.Meals)
	return sessionID, seeded, skipped, nil
}

// resolveUser registers the diary's user, or signs in when it already exists,
// and returns the session the meals belong to. created is false when the user
// was already there.
func resolveUser(ctx context.Context, users service.UserService, diary *SeedDiary) (sessionID string, created bool, err error) {
	user, err := users.Register(ctx, diary.User.Name, diary.User.Password, "")
	if stderrors.Is(err, errors.ErrUserAlreadyExists) {
		log.Printf("User %q exists, signing in", diary.User.Name)
		user, err = users.Authenticate(ctx, diary.User.Name, diary.User.Password)
		if err != nil {
			return "", false, err
		}
		return user.ID, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.ID, true, nil
}

func seedMeals(ctx context.Context, meals service.MealService, sessionID string, items []SeedMeal) (seeded int, skipped int) {
	for _, item := range items {
		at, err := validation.ParseTime(item.Date)
		if err != nil {
			log.Printf("Skipping meal %q with invalid date: %s", item.Name, item.Date)
			skipped++
			continue
		}

		if _, err := meals.Create(ctx, sessionID, service.MealInput{
			Name:        item.Name,
			Description: item.Description,
			DateTime:    at,
			IsOnDiet:    item.IsOnDiet,
		}); err != nil {
			log.Printf("Skipping meal %q: %v", item.Name, err)
			skipped++
			continue
		}
		seeded++
	}
	return seeded, skipped
}
