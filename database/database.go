package database

import (
	"fmt"
	"log"

	"api/config"
	"api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
    dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
        config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

    var err error
    DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        log.Fatal("failed to connect database: ", err)
    }

    err = DB.AutoMigrate(
        &models.User{},
        &models.ChallengeCategory{},
        &models.Challenge{},
        &models.Submission{},
        &models.UserProgress{},
        &models.Achievement{},
        &models.UserAchievement{},
        &models.PasswordReset{},
    )
    if err != nil {
        log.Fatal("failed to migrate database: ", err)
    }

    Populate()
}

// Populate populates the database with default values if needed
func Populate() {
    var countCategories int64
    DB.Model(&models.ChallengeCategory{}).Count(&countCategories)
    if countCategories == 0 {
        defaultCategories := []models.ChallengeCategory{
            {Name: "Web Exploitation", Description: "Attacks against web applications and their defenses", Icon: "globe", Color: "#3B82F6"},
            {Name: "Digital Forensics", Description: "Disk, memory and network evidence analysis", Icon: "search", Color: "#10B981"},
            {Name: "Cryptography", Description: "Classical and modern cipher analysis", Icon: "lock", Color: "#F59E0B"},
            {Name: "Network Security", Description: "Traffic analysis and network attack scenarios", Icon: "wifi", Color: "#8B5CF6"},
            {Name: "OSINT", Description: "Open source intelligence gathering", Icon: "eye", Color: "#EF4444"},
        }
        for i := range defaultCategories {
            if err := DB.Create(&defaultCategories[i]).Error; err != nil {
                log.Println("failed to seed category: ", err)
            }
        }
        log.Println("Default challenge categories created")
    }

    var countAchievements int64
    DB.Model(&models.Achievement{}).Count(&countAchievements)
    if countAchievements == 0 {
        defaultAchievements := []models.Achievement{
            {Name: "First Blood", Description: "Complete your first challenge", Icon: "droplet", BadgeColor: "#EF4444", AchievementType: models.AchievementChallengesCompleted, CriteriaValue: 1, IsActive: true},
            {Name: "Getting Serious", Description: "Complete 10 challenges", Icon: "flame", BadgeColor: "#F59E0B", AchievementType: models.AchievementChallengesCompleted, CriteriaValue: 10, IsActive: true},
            {Name: "Veteran", Description: "Complete 50 challenges", Icon: "shield", BadgeColor: "#8B5CF6", AchievementType: models.AchievementChallengesCompleted, CriteriaValue: 50, IsActive: true},
            {Name: "Point Collector", Description: "Earn 1000 points", Icon: "star", BadgeColor: "#3B82F6", AchievementType: models.AchievementPointsEarned, CriteriaValue: 1000, IsActive: true},
            {Name: "High Roller", Description: "Earn 10000 points", Icon: "trophy", BadgeColor: "#10B981", AchievementType: models.AchievementPointsEarned, CriteriaValue: 10000, IsActive: true},
        }
        for i := range defaultAchievements {
            if err := DB.Create(&defaultAchievements[i]).Error; err != nil {
                log.Println("failed to seed achievement: ", err)
            }
        }
        log.Println("Default achievements created")
    }
}
