package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"api/models"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSubmitAnswerWorkflow(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()

	db := openTestDB(t, dsn)

	user := models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	category := models.ChallengeCategory{Name: "Network Security"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	challenge := models.Challenge{
		Title:         "Packet Inspection",
		Slug:          "packet-inspection",
		Description:   "Inspect the capture",
		Instructions:  "Answer both questions",
		ChallengeType: "quiz",
		Difficulty:    "beginner",
		Points:        100,
		AnswerType:    "structured",
		Questions: models.QuestionList{
			{ID: 1, Question: "What port does HTTPS use?", CorrectAnswer: "443", AnswerFormat: "number"},
			{ID: 2, Question: "Which protocol secures it?", CorrectAnswer: "TLS", AnswerFormat: "text"},
		},
		IsPublished: true,
		CategoryID:  category.ID,
		CreatedBy:   user.ID,
	}
	if err := db.Create(&challenge).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}

	achievement := models.Achievement{
		Name:            "First Blood",
		Description:     "Complete your first challenge",
		AchievementType: models.AchievementChallengesCompleted,
		CriteriaValue:   1,
		IsActive:        true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("create achievement: %v", err)
	}

	// First question answered correctly: points awarded, not completed
	result, err := SubmitAnswer(db, &user, &challenge, `{"question_1": "443"}`, "question_1")
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !result.IsCorrect || result.ChallengeCompleted {
		t.Fatalf("first submit: IsCorrect=%v ChallengeCompleted=%v, want true/false", result.IsCorrect, result.ChallengeCompleted)
	}
	if result.PointsAwarded != 100 {
		t.Errorf("first submit PointsAwarded = %d, want 100", result.PointsAwarded)
	}
	if result.Submission.SubmittedAnswer.AnsweredCount() != 1 {
		t.Errorf("first submit AnsweredCount = %d, want 1", result.Submission.SubmittedAnswer.AnsweredCount())
	}

	// A wrong answer after the partial leaves the correct row untouched
	result, err = SubmitAnswer(db, &user, &challenge, `{"question_2": "SSH"}`, "question_2")
	if err != nil {
		t.Fatalf("wrong submit: %v", err)
	}
	if result.IsCorrect || result.ChallengeCompleted {
		t.Fatalf("wrong submit: IsCorrect=%v ChallengeCompleted=%v, want false/false", result.IsCorrect, result.ChallengeCompleted)
	}
	var kept models.Submission
	if err := db.Where("user_id = ? AND challenge_id = ? AND is_correct = ?", user.ID, challenge.ID, true).First(&kept).Error; err != nil {
		t.Fatalf("fetch kept submission: %v", err)
	}
	if kept.SubmittedAnswer.AnsweredCount() != 1 || kept.PointsAwarded != 100 {
		t.Errorf("kept submission mutated by wrong answer: count=%d points=%d", kept.SubmittedAnswer.AnsweredCount(), kept.PointsAwarded)
	}

	// Second question completes the challenge: merge, stats, rankings,
	// achievement
	result, err = SubmitAnswer(db, &user, &challenge, `{"question_2": "tls"}`, "question_2")
	if err != nil {
		t.Fatalf("completing submit: %v", err)
	}
	if !result.IsCorrect || !result.ChallengeCompleted {
		t.Fatalf("completing submit: IsCorrect=%v ChallengeCompleted=%v, want true/true", result.IsCorrect, result.ChallengeCompleted)
	}
	if result.Submission.SubmittedAnswer.AnsweredCount() != 2 {
		t.Errorf("merged AnsweredCount = %d, want 2", result.Submission.SubmittedAnswer.AnsweredCount())
	}
	if result.Submission.PointsAwarded != 200 {
		t.Errorf("merged PointsAwarded = %d, want 200", result.Submission.PointsAwarded)
	}
	if result.Progress.Status != models.StatusCompleted {
		t.Errorf("progress status = %q, want %q", result.Progress.Status, models.StatusCompleted)
	}

	var refreshed models.User
	if err := db.First(&refreshed, user.ID).Error; err != nil {
		t.Fatalf("fetch user: %v", err)
	}
	if refreshed.TotalScore != 200 || refreshed.ChallengesCompleted != 1 {
		t.Errorf("user stats = score %d completed %d, want 200/1", refreshed.TotalScore, refreshed.ChallengesCompleted)
	}
	if refreshed.RankPosition == nil || *refreshed.RankPosition != 1 {
		t.Errorf("rank position = %v, want 1", refreshed.RankPosition)
	}

	var awards []models.UserAchievement
	if err := db.Where("user_id = ?", user.ID).Find(&awards).Error; err != nil {
		t.Fatalf("fetch achievements: %v", err)
	}
	if len(awards) != 1 || awards[0].AchievementID != achievement.ID {
		t.Errorf("achievements earned = %+v, want only %d", awards, achievement.ID)
	}

	var refreshedChallenge models.Challenge
	if err := db.First(&refreshedChallenge, challenge.ID).Error; err != nil {
		t.Fatalf("fetch challenge: %v", err)
	}
	if refreshedChallenge.TotalAttempts != 3 || refreshedChallenge.SuccessfulAttempts != 1 {
		t.Errorf("challenge stats = %d/%d, want 3 attempts, 1 successful",
			refreshedChallenge.TotalAttempts, refreshedChallenge.SuccessfulAttempts)
	}

	// Resubmitting against the completed challenge conflicts and rolls
	// back: no attempt is recorded
	result, err = SubmitAnswer(db, &user, &challenge, `{"question_1": "443"}`, "question_1")
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("resubmit err = %v, want ErrAlreadyCompleted", err)
	}
	if result.PreviousSubmission == nil || result.PreviousSubmission.SubmittedAnswer.AnsweredCount() != 2 {
		t.Errorf("conflict PreviousSubmission = %+v, want the completed row", result.PreviousSubmission)
	}
	if err := db.First(&refreshedChallenge, challenge.ID).Error; err != nil {
		t.Fatalf("fetch challenge after conflict: %v", err)
	}
	if refreshedChallenge.TotalAttempts != 3 {
		t.Errorf("conflict leaked an attempt: TotalAttempts = %d, want 3", refreshedChallenge.TotalAttempts)
	}
	var progress models.UserProgress
	if err := db.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error; err != nil {
		t.Fatalf("fetch progress after conflict: %v", err)
	}
	if progress.AttemptsCount != 3 {
		t.Errorf("conflict leaked an attempt: AttemptsCount = %d, want 3", progress.AttemptsCount)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "cyberlab", "POSTGRES_PASSWORD": "cyberlab", "POSTGRES_DB": "cyberlab_test"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("host=%s port=%s user=cyberlab password=cyberlab dbname=cyberlab_test sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	var db *gorm.DB
	var err error
	for attempt := 0; attempt < 10; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ChallengeCategory{},
		&models.Challenge{},
		&models.Submission{},
		&models.UserProgress{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.PasswordReset{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
