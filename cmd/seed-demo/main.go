package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/database"
	"github.com/abim/abim-backend/internal/logger"
	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/abim/abim-backend/internal/service"
)

// Seeds a visible course with a batch of applications for local development.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseRepo := repository.NewCourseRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	// No publisher: seeded activities are stored but not fanned out.
	activityService := service.NewActivityService(repository.NewActivityRepository(pool), nil, log)

	courseService := service.NewCourseService(courseRepo, activityService, log)
	applicationService := service.NewApplicationService(applicationRepo, courseRepo, activityService, log)

	fmt.Println("=== Seeding demo course and applications ===")

	today := time.Now()
	courseID, err := courseService.CreateCourse(ctx, &model.CreateCourseRequest{
		MainTitle:   "Temel Bilgisayar Kursu",
		Subtitle:    "Ofis programları ve internet kullanımı",
		ImageURL:    "/uploads/courses/demo.jpg",
		DersGunleri: []string{"Pazartesi", "Çarşamba"},
		DersSaati:   "18:30",
		Content: model.CourseContent{
			EgitimSuresi: []map[string]string{
				{model.PeriodStartKey: today.Format(model.DateLayout)},
				{model.PeriodEndKey: today.AddDate(0, 3, 0).Format(model.DateLayout)},
			},
			Mufredat: []string{"Bilgisayar donanımı", "Kelime işlemci", "Hesap tablosu", "İnternet güvenliği"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create course")
	}
	fmt.Printf("Created course with ID: %d\n", courseID)

	names := []string{
		"Ayşe Yılmaz", "Mehmet Kaya", "Zeynep Demir", "Ahmet Çelik", "Elif Şahin",
		"Mustafa Yıldız", "Fatma Aydın", "Emre Öztürk", "Hatice Arslan", "Burak Doğan",
		"Merve Kılıç", "Can Aslan", "Esra Çetin", "Oğuz Kara", "Selin Koç",
		"Kerem Kurt", "Derya Özdemir", "Serkan Şimşek", "Gizem Polat", "Onur Erdoğan",
	}

	successCount := 0
	for i, name := range names {
		email := fmt.Sprintf("ogrenci%02d@example.com", i+1)
		_, err := applicationService.Submit(ctx, &model.SubmitApplicationRequest{
			CourseID: courseID,
			Name:     name,
			Email:    email,
			Phone:    fmt.Sprintf("0555 000 %04d", i+1),
			Notes:    "Demo başvurusu",
		})
		if err != nil {
			if errors.Is(err, service.ErrDuplicateEmail) || errors.Is(err, service.ErrDuplicatePhone) {
				fmt.Printf("Skipping %s: already applied\n", email)
				continue
			}
			log.Fatal().Err(err).Str("email", email).Msg("Failed to submit application")
		}
		successCount++

		// Every other applicant is approved so the student list is populated.
		if i%2 == 0 {
			if _, err := applicationService.SetStatusByEmail(ctx, email, model.StatusApproved); err != nil {
				log.Fatal().Err(err).Str("email", email).Msg("Failed to approve application")
			}
		}
	}

	fmt.Printf("\nSeed completed! Added %d/%d applications.\n", successCount, len(names))
}
