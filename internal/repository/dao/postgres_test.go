package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

// testDB is nil when docker is unavailable or -short is set.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, postgres tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=shared_experiences",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=postgres password=secret dbname=shared_experiences sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	})
	if err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not migrate: %v", err)
	}

	code := m.Run()

	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres not available")
	}

	return testDB
}

func TestPostgres_ServiceReferences(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	provider, err := NewProviderDAO(db).Insert(ctx, Provider{Name: "Harbour Cruises", Address: "2 Pier", Number: "555-0102"})
	require.NoError(t, err)
	guest, err := NewGuestDAO(db).Insert(ctx, Guest{Name: "Lina", Number: "555-0200", Age: 31})
	require.NoError(t, err)

	services := NewServiceDAO(db)

	_, err = services.Insert(ctx, Service{Name: "Orphan", Description: "no provider", Price: 10, ProviderID: 999999})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	svc, err := services.Insert(ctx, Service{
		Name:        "Sunset cruise",
		Description: "Two hours at sea",
		Price:       120,
		Date:        time.Now().UTC(),
		ProviderID:  provider.ID,
		GuestIDs:    []uint{guest.ID},
	})
	require.NoError(t, err)

	found, err := services.FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{guest.ID}, found.GuestIDs)

	// Linking the same guest twice keeps a single association.
	require.NoError(t, services.AddGuest(ctx, svc.ID, guest.ID))
	found, err = services.FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Len(t, found.GuestIDs, 1)

	err = services.AddGuest(ctx, 999999, guest.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_DiscountIsUniquePerService(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	provider, err := NewProviderDAO(db).Insert(ctx, Provider{Name: "Alpine Guides", Address: "3 Ridge", Number: "555-0103"})
	require.NoError(t, err)
	svc, err := NewServiceDAO(db).Insert(ctx, Service{Name: "Glacier walk", Description: "Half day", Price: 80, ProviderID: provider.ID})
	require.NoError(t, err)

	discounts := NewDiscountDAO(db)
	_, err = discounts.Insert(ctx, Discount{Name: "Group", ServiceID: svc.ID, GuestCount: 10, Percentage: 10})
	require.NoError(t, err)

	_, err = discounts.Insert(ctx, Discount{Name: "Again", ServiceID: svc.ID, GuestCount: 5, Percentage: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)

	found, err := discounts.FindByServiceID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.Percentage)
}

func TestPostgres_ProviderDeleteCascades(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	providers := NewProviderDAO(db)
	provider, err := providers.Insert(ctx, Provider{Name: "City Bikes", Address: "4 Main", Number: "555-0104"})
	require.NoError(t, err)
	guest, err := NewGuestDAO(db).Insert(ctx, Guest{Name: "Omar", Number: "555-0201", Age: 40})
	require.NoError(t, err)
	svc, err := NewServiceDAO(db).Insert(ctx, Service{Name: "Bike tour", Description: "City loop", Price: 30, ProviderID: provider.ID})
	require.NoError(t, err)
	serviceID := svc.ID
	billing, err := NewBillingDAO(db).Insert(ctx, Billing{Amount: 30, Date: time.Now().UTC(), GuestID: guest.ID, ProviderID: provider.ID, ServiceID: &serviceID})
	require.NoError(t, err)

	require.NoError(t, providers.Delete(ctx, provider.ID))

	_, err = NewServiceDAO(db).FindByID(ctx, svc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = NewBillingDAO(db).FindByID(ctx, billing.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, providers.Delete(ctx, provider.ID), domain.ErrNotFound)
}

func TestPostgres_UserEmailIsUnique(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	users := NewUserDAO(db)
	_, err := users.InsertWithProfile(ctx, User{Email: "Dup@Example.com", Password: "x", Role: "Guest"}, nil, &Guest{Name: "Dup", Number: "1"})
	require.NoError(t, err)

	_, err = users.InsertWithProfile(ctx, User{Email: "dup@example.com", Password: "y", Role: "Guest"}, nil, &Guest{Name: "Dup 2", Number: "2"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	found, err := users.FindByEmail(ctx, "DUP@example.com")
	require.NoError(t, err)
	assert.Equal(t, "dup@example.com", found.Email)
}

func TestPostgres_ProfileUpdateKeepsAccountLink(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	users := NewUserDAO(db)
	owner, err := users.InsertWithProfile(ctx,
		User{Email: "harbour@example.com", Password: "x", Role: "Provider"},
		&Provider{Name: "Harbour Tours", Address: "5 Quay", Number: "555-0105"}, nil)
	require.NoError(t, err)
	traveller, err := users.InsertWithProfile(ctx,
		User{Email: "nadia@example.com", Password: "x", Role: "Guest"},
		nil, &Guest{Name: "Nadia", Number: "555-0202", Age: 27})
	require.NoError(t, err)

	var provider Provider
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&provider).Error)
	var guest Guest
	require.NoError(t, db.Where("user_id = ?", traveller.ID).First(&guest).Error)

	// Staff edits arrive without the account link.
	updatedProvider, err := NewProviderDAO(db).Update(ctx, Provider{
		ID: provider.ID, Name: "Harbour Tours Ltd", Address: "6 Quay", Number: "555-0106",
	})
	require.NoError(t, err)
	require.NotNil(t, updatedProvider.UserID)
	assert.Equal(t, owner.ID, *updatedProvider.UserID)

	updatedGuest, err := NewGuestDAO(db).Update(ctx, Guest{ID: guest.ID, Name: "Nadia K", Number: "555-0203", Age: 28})
	require.NoError(t, err)
	require.NotNil(t, updatedGuest.UserID)
	assert.Equal(t, traveller.ID, *updatedGuest.UserID)

	storedProvider, err := NewProviderDAO(db).FindByID(ctx, provider.ID)
	require.NoError(t, err)
	require.NotNil(t, storedProvider.UserID)
	assert.Equal(t, owner.ID, *storedProvider.UserID)
	assert.Equal(t, "Harbour Tours Ltd", storedProvider.Name)

	storedGuest, err := NewGuestDAO(db).FindByID(ctx, guest.ID)
	require.NoError(t, err)
	require.NotNil(t, storedGuest.UserID)
	assert.Equal(t, traveller.ID, *storedGuest.UserID)
	assert.Equal(t, 28, storedGuest.Age)
}

func TestPostgres_ExperienceLinksAreIdempotent(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	provider, err := NewProviderDAO(db).Insert(ctx, Provider{Name: "Lake Kayaks", Address: "7 Shore", Number: "555-0107"})
	require.NoError(t, err)
	guest, err := NewGuestDAO(db).Insert(ctx, Guest{Name: "Tomas", Number: "555-0204", Age: 35})
	require.NoError(t, err)
	svc, err := NewServiceDAO(db).Insert(ctx, Service{Name: "Kayak rental", Description: "Per hour", Price: 15, ProviderID: provider.ID})
	require.NoError(t, err)

	experiences := NewSharedExperienceDAO(db)
	exp, err := experiences.Insert(ctx, SharedExperience{Name: "Lake day", Date: time.Now().UTC()})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, experiences.AddGuest(ctx, exp.ID, guest.ID))
		require.NoError(t, experiences.AddService(ctx, exp.ID, svc.ID))
	}

	found, err := experiences.FindByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{guest.ID}, found.GuestIDs)
	assert.Equal(t, []uint{svc.ID}, found.ServiceIDs)

	assert.ErrorIs(t, experiences.AddGuest(ctx, exp.ID, 999999), domain.ErrValidation)
	assert.ErrorIs(t, experiences.AddService(ctx, 999999, svc.ID), domain.ErrNotFound)
}
