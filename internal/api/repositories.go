package api

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/repository"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/mongostore"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

// Repositories is the storage the services run on. Both backends fill every
// field.
type Repositories struct {
	Users       service.AuthUserRepository
	Providers   service.ProviderRepository
	Guests      service.GuestRepository
	Services    service.ServiceRepository
	Experiences service.SharedExperienceRepository
	Discounts   service.DiscountRepository
	Billings    service.BillingRepository
	Snapshots   service.SnapshotReader
	Seeder      service.Seeder
	Audit       service.AuditStore
}

func NewGormRepositories(db *gorm.DB) Repositories {
	userDAO := dao.NewUserDAO(db)

	return Repositories{
		Users:       repository.NewUserRepository(userDAO),
		Providers:   repository.NewProviderRepository(dao.NewProviderDAO(db)),
		Guests:      repository.NewGuestRepository(dao.NewGuestDAO(db)),
		Services:    repository.NewServiceRepository(dao.NewServiceDAO(db)),
		Experiences: repository.NewSharedExperienceRepository(dao.NewSharedExperienceDAO(db)),
		Discounts:   repository.NewDiscountRepository(dao.NewDiscountDAO(db)),
		Billings:    repository.NewBillingRepository(dao.NewBillingDAO(db)),
		Snapshots:   repository.NewSnapshotRepository(dao.NewSnapshotDAO(db)),
		Seeder:      repository.NewSeedRepository(dao.NewSeedDAO(db), userDAO),
		Audit:       repository.NewAuditRepository(dao.NewAuditDAO(db)),
	}
}

func NewMongoRepositories(db *mongo.Database, auditCollection string) Repositories {
	return Repositories{
		Users:       mongostore.NewUserStore(db),
		Providers:   mongostore.NewProviderStore(db),
		Guests:      mongostore.NewGuestStore(db),
		Services:    mongostore.NewServiceStore(db),
		Experiences: mongostore.NewSharedExperienceStore(db),
		Discounts:   mongostore.NewDiscountStore(db),
		Billings:    mongostore.NewBillingStore(db),
		Snapshots:   mongostore.NewSnapshotStore(db),
		Seeder:      mongostore.NewSeedStore(db),
		Audit:       mongostore.NewAuditStore(db, auditCollection),
	}
}
