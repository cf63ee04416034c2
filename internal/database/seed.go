package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sessionly/sessionly/internal/models"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	var existingUser models.User
	result := db.Where("email = ?", "dev@sessionly.local").First(&existingUser)
	if result.Error == nil {
		log.Println("Seed data already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("devpassword"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        "dev@sessionly.local",
		Name:         "Dev User",
		PasswordHash: string(hash),
		Plan:         "PRO",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	nextWeek := time.Now().AddDate(0, 0, 7)
	profile := models.Profile{
		UserID:          user.ID,
		DisplayName:     "Dev User",
		TherapistName:   "Dr. Example",
		NextSessionDate: &nextWeek,
		Onboarded:       true,
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}

	lastWeek := time.Now().AddDate(0, 0, -7)
	session := models.Session{
		UserID:       user.ID,
		Date:         lastWeek,
		Number:       1,
		WhatStoodOut: "Named the pattern of overcommitting at work for the first time.",
		PostMood:     6,
		MoodWord:     "hopeful",
		Completed:    true,
	}
	if err := session.SetTopics([]string{"Work", "Boundaries"}); err != nil {
		return err
	}
	if err := session.SetPrepItems([]string{"Sunday-night dread", "argument with sibling"}); err != nil {
		return err
	}
	if err := db.Create(&session).Error; err != nil {
		return err
	}

	due := time.Now().AddDate(0, 0, 3)
	homework := models.HomeworkItem{
		UserID:      user.ID,
		SessionID:   &session.ID,
		Text:        "Say no to one optional commitment this week",
		SessionDate: session.Date,
		DueDate:     &due,
	}
	if err := db.Create(&homework).Error; err != nil {
		return err
	}

	entries := []models.LogEntry{
		{UserID: user.ID, Text: "Snapped at a coworker over nothing", Type: "trigger", Intensity: 4},
		{UserID: user.ID, Text: "Went for a walk instead of doomscrolling", Type: "win", Intensity: 2},
		{UserID: user.ID, Text: "Keep replaying the meeting in my head", Type: "thought", Intensity: 3, AddedToPrep: true},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded dev data: 1 user, 1 profile, 1 session, 1 homework item, 3 log entries")
	return nil
}
