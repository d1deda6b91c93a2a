//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/repairlink/repairlink/internal/auth"
	"github.com/repairlink/repairlink/internal/config"
	"github.com/repairlink/repairlink/internal/database"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type modelSeed struct {
	nameAr string
	nameEn string
}

type serviceSeed struct {
	nameAr string
	nameEn string
	// base price in halalas; per-model prices scale off this
	basePrice int64
	warranty  int
}

var deviceTypes = []struct {
	brand    string
	category string
	nameAr   string
	nameEn   string
	models   []modelSeed
}{
	{
		brand: "Apple", category: "phone", nameAr: "آيفون", nameEn: "iPhone",
		models: []modelSeed{
			{"آيفون 13", "iPhone 13"},
			{"آيفون 14", "iPhone 14"},
			{"آيفون 15 برو", "iPhone 15 Pro"},
		},
	},
	{
		brand: "Samsung", category: "phone", nameAr: "جالاكسي", nameEn: "Galaxy",
		models: []modelSeed{
			{"جالاكسي S23", "Galaxy S23"},
			{"جالاكسي S24 ألترا", "Galaxy S24 Ultra"},
		},
	},
	{
		brand: "Apple", category: "laptop", nameAr: "ماك بوك", nameEn: "MacBook",
		models: []modelSeed{
			{"ماك بوك إير M2", "MacBook Air M2"},
			{"ماك بوك برو 14", "MacBook Pro 14"},
		},
	},
}

var serviceTypes = []serviceSeed{
	{"استبدال الشاشة", "Screen replacement", 45000, 90},
	{"استبدال البطارية", "Battery replacement", 18000, 180},
	{"إصلاح منفذ الشحن", "Charging port repair", 12000, 90},
	{"إصلاح أضرار المياه", "Water damage repair", 30000, 30},
}

var technicians = []struct {
	nameAr string
	nameEn string
	phone  string
	city   string
	specs  []string
}{
	{"أحمد الغامدي", "Ahmed Alghamdi", "0551000001", "Riyadh", []string{"phone", "laptop"}},
	{"خالد العتيبي", "Khalid Alotaibi", "0551000002", "Riyadh", []string{"phone"}},
	{"فهد القحطاني", "Fahad Alqahtani", "0551000003", "Jeddah", []string{"phone", "laptop"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBMaxIdleConnections)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db.DB)
	technicianRepo := repository.NewTechnicianRepository(db.DB)
	catalogRepo := repository.NewCatalogRepository(db.DB)
	pricingRepo := repository.NewPricingRepository(db.DB)
	couponRepo := repository.NewCouponRepository(db.DB)

	// Catalog and pricing grid
	log.Println("Seeding catalog...")
	var serviceTypeIDs []string
	for _, st := range serviceTypes {
		row := &models.ServiceType{NameAr: st.nameAr, NameEn: st.nameEn}
		if err := catalogRepo.CreateServiceType(ctx, row); err != nil {
			log.Fatalf("Failed to create service type: %v", err)
		}
		serviceTypeIDs = append(serviceTypeIDs, row.ID)
	}

	modelCount := 0
	for _, dt := range deviceTypes {
		dtRow := &models.DeviceType{
			Brand:    dt.brand,
			Category: dt.category,
			NameAr:   dt.nameAr,
			NameEn:   dt.nameEn,
		}
		if err := catalogRepo.CreateDeviceType(ctx, dtRow); err != nil {
			log.Fatalf("Failed to create device type: %v", err)
		}

		for i, dm := range dt.models {
			dmRow := &models.DeviceModel{
				DeviceTypeID: dtRow.ID,
				NameAr:       dm.nameAr,
				NameEn:       dm.nameEn,
			}
			if err := catalogRepo.CreateDeviceModel(ctx, dmRow); err != nil {
				log.Fatalf("Failed to create device model: %v", err)
			}
			modelCount++

			for j, stID := range serviceTypeIDs {
				pricing := &models.ServicePricing{
					DeviceModelID: dmRow.ID,
					ServiceTypeID: stID,
					// newer models cost a bit more
					PriceHalalas: serviceTypes[j].basePrice + int64(i)*5000,
					WarrantyDays: serviceTypes[j].warranty,
				}
				if err := pricingRepo.Create(ctx, pricing); err != nil {
					log.Fatalf("Failed to create pricing: %v", err)
				}
			}
		}
	}
	log.Printf("Seeded %d device models x %d service types", modelCount, len(serviceTypeIDs))

	// Admin account
	adminHash, err := auth.HashPassword("admin12345")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	admin := &models.User{
		Phone:        "0550000000",
		Name:         "RepairLink Admin",
		PasswordHash: adminHash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin user %s (phone %s)", admin.ID, admin.Phone)

	// Technician accounts and profiles
	for i, t := range technicians {
		hash, err := auth.HashPassword(fmt.Sprintf("tech%d-secret", i+1))
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &models.User{
			Phone:        t.phone,
			Name:         t.nameEn,
			PasswordHash: hash,
			UserType:     models.UserTypeTechnician,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create technician user: %v", err)
		}

		technician := &models.Technician{
			UserID:          user.ID,
			NameAr:          t.nameAr,
			NameEn:          t.nameEn,
			Phone:           t.phone,
			Specializations: t.specs,
			City:            t.city,
		}
		if err := technicianRepo.Create(ctx, technician); err != nil {
			log.Fatalf("Failed to create technician: %v", err)
		}
	}
	log.Printf("Created %d technicians", len(technicians))

	// A welcome coupon
	maxDiscount := int64(5000)
	coupon := &models.Coupon{
		Code:               "WELCOME10",
		DiscountType:       models.CouponTypePercentage,
		DiscountValue:      10,
		MaxDiscountHalalas: &maxDiscount,
		MinOrderHalalas:    10000,
		UsageLimit:         1000,
		UserUsageLimit:     1,
		ValidFrom:          time.Now(),
		ValidUntil:         time.Now().AddDate(1, 0, 0),
	}
	if err := couponRepo.Create(ctx, coupon); err != nil {
		log.Fatalf("Failed to create coupon: %v", err)
	}
	log.Printf("Created coupon %s", coupon.Code)

	log.Println("Seed complete")
}
