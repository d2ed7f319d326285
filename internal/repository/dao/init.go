package dao

import (
	"time"

	"gorm.io/gorm"
)

const (
	tableUsers             = "users"
	tableProviders         = "providers"
	tableGuests            = "guests"
	tableServices          = "services"
	tableSharedExperiences = "shared_experiences"
	tableDiscounts         = "discounts"
	tableBillings          = "billings"

	joinExperienceServices = "shared_experience_services"
	joinExperienceGuests   = "shared_experience_guests"
	joinServiceGuests      = "service_guests"
)

type Provider struct {
	ID uint `gorm:"primaryKey"`

	Name                    string `gorm:"size:100;not null"`
	Address                 string `gorm:"size:200;not null"`
	Number                  string `gorm:"size:20;not null"`
	TouristicOperatorPermit string `gorm:"size:100"`
	UserID                  *uint  `gorm:"index"`

	Services []Service `gorm:"foreignKey:ProviderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Guest struct {
	ID uint `gorm:"primaryKey"`

	Name   string `gorm:"size:100;not null"`
	Number string `gorm:"size:20;not null"`
	Age    int
	UserID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Service struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500;not null"`
	Price       int    `gorm:"not null"`
	Date        time.Time
	ProviderID  uint `gorm:"not null;index"`

	// Guests only declares the join table; links are read into GuestIDs.
	Guests   []Guest `gorm:"many2many:service_guests;"`
	GuestIDs []uint  `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SharedExperience struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	Date        time.Time

	Services   []Service `gorm:"many2many:shared_experience_services;"`
	Guests     []Guest   `gorm:"many2many:shared_experience_guests;"`
	ServiceIDs []uint    `gorm:"-"`
	GuestIDs   []uint    `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Discount struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"size:100"`
	ServiceID  uint   `gorm:"not null;uniqueIndex"`
	GuestCount int    `gorm:"not null"`
	Percentage int    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Billing struct {
	ID uint `gorm:"primaryKey"`

	Amount     int `gorm:"not null"`
	Date       time.Time
	GuestID    uint  `gorm:"not null;index"`
	ProviderID uint  `gorm:"not null;index"`
	ServiceID  *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Provider{},
		&Guest{},
		&Service{},
		&SharedExperience{},
		&Discount{},
		&Billing{},
		&AuditRecord{},
	)
}

// ids extracts primary keys in slice order.
func ids[T any](rows []T, id func(T) uint) []uint {
	out := make([]uint, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}

	return out
}
