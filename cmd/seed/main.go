package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dealerdesk/internal/config"
	"dealerdesk/internal/db"
	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
)

// Seeds the role catalog and the initial admin account. Safe to run more
// than once: existing rows are left untouched.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Role{}, &model.User{}, &model.UserRole{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	adminRole, err := roleRepo.FindOrCreate(ctx, &model.Role{Name: "admin", Description: "Full management access"})
	if err != nil {
		log.Fatalf("Failed to seed admin role: %v", err)
	}
	if _, err := roleRepo.FindOrCreate(ctx, &model.Role{Name: "user", Description: "Standard back office access"}); err != nil {
		log.Fatalf("Failed to seed user role: %v", err)
	}
	log.Println("Roles seeded")

	if _, err := userRepo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Printf("Admin user %s already exists, nothing to do", cfg.AdminEmail)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to look up admin user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		Email:        cfg.AdminEmail,
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	if err := userRepo.AddRole(ctx, admin.ID, adminRole.ID); err != nil {
		log.Fatalf("Failed to assign admin role: %v", err)
	}

	log.Printf("Admin user %s created", cfg.AdminEmail)
}
