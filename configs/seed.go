package configs

import (
	"backend/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Seed the superuser once, from env
func SeedSuperuser() error {
	db := DB()
	username := getEnv("SUPERUSER_USERNAME", "")
	email := getEnv("SUPERUSER_EMAIL", "")
	pass := getEnv("SUPERUSER_PASSWORD", "")
	if username == "" || pass == "" {
		logrus.Warn("skip seeding superuser: missing SUPERUSER_USERNAME/SUPERUSER_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		logrus.WithField("username", username).Info("superuser already exists")
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Username:    username,
		Email:       email,
		Password:    string(hash),
		IsSuperuser: true,
	}
	return db.Create(&admin).Error
}

// Seed lookup rows the permission layer depends on
func SeedLookups() error {
	db := DB()

	// Role groups
	db.FirstOrCreate(&entity.Group{}, entity.Group{Name: entity.GroupManager})
	db.FirstOrCreate(&entity.Group{}, entity.Group{Name: entity.GroupDeliveryCrew})

	logrus.Info("lookup tables seeded")
	return nil
}
