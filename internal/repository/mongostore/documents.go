package mongostore

import (
	"time"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type userDoc struct {
	ID          uint      `bson:"_id"`
	Email       string    `bson:"email"`
	Password    string    `bson:"password"`
	FirstName   string    `bson:"firstName"`
	LastName    string    `bson:"lastName"`
	PhoneNumber string    `bson:"phoneNumber,omitempty"`
	Role        string    `bson:"role"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type providerDoc struct {
	ID                      uint   `bson:"_id"`
	Name                    string `bson:"name"`
	Address                 string `bson:"address"`
	Number                  string `bson:"number"`
	TouristicOperatorPermit string `bson:"touristicOperatorPermit"`
	UserID                  *uint  `bson:"userId,omitempty"`
}

type guestDoc struct {
	ID     uint   `bson:"_id"`
	Name   string `bson:"name"`
	Number string `bson:"number"`
	Age    int    `bson:"age"`
	UserID *uint  `bson:"userId,omitempty"`
}

type serviceDoc struct {
	ID          uint      `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       int       `bson:"price"`
	Date        time.Time `bson:"date"`
	ProviderID  uint      `bson:"providerId"`
	GuestIDs    []uint    `bson:"guestIds"`
}

type experienceDoc struct {
	ID          uint      `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Date        time.Time `bson:"date"`
	ServiceIDs  []uint    `bson:"serviceIds"`
	GuestIDs    []uint    `bson:"guestIds"`
}

type discountDoc struct {
	ID         uint   `bson:"_id"`
	Name       string `bson:"name"`
	ServiceID  uint   `bson:"serviceId"`
	GuestCount int    `bson:"guestCount"`
	Percentage int    `bson:"percentage"`
}

type billingDoc struct {
	ID         uint      `bson:"_id"`
	Amount     int       `bson:"amount"`
	Date       time.Time `bson:"date"`
	GuestID    uint      `bson:"guestId"`
	ProviderID uint      `bson:"providerId"`
	ServiceID  *uint     `bson:"serviceId,omitempty"`
}

type auditDoc struct {
	ID          string    `bson:"_id"`
	Timestamp   time.Time `bson:"timestamp"`
	Method      string    `bson:"method"`
	Path        string    `bson:"path"`
	Description string    `bson:"description"`
	ActorID     string    `bson:"actorId"`
	ActorRole   string    `bson:"actorRole"`
	StatusCode  int       `bson:"statusCode"`
	RequestID   string    `bson:"requestId,omitempty"`
}

func nonNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}

	return ids
}

func userToDoc(u domain.User) userDoc {
	return userDoc{
		ID:          u.ID,
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:          d.ID,
		Email:       d.Email,
		Password:    d.Password,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		PhoneNumber: d.PhoneNumber,
		Role:        domain.Role(d.Role),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func providerToDoc(p domain.Provider) providerDoc {
	return providerDoc(p)
}

func (d providerDoc) toDomain() domain.Provider {
	return domain.Provider(d)
}

func guestToDoc(g domain.Guest) guestDoc {
	return guestDoc(g)
}

func (d guestDoc) toDomain() domain.Guest {
	return domain.Guest(d)
}

func serviceToDoc(s domain.Service) serviceDoc {
	s.GuestIDs = nonNil(dedupe(s.GuestIDs))
	return serviceDoc(s)
}

func (d serviceDoc) toDomain() domain.Service {
	d.GuestIDs = nonNil(d.GuestIDs)
	return domain.Service(d)
}

func experienceToDoc(e domain.SharedExperience) experienceDoc {
	e.ServiceIDs = nonNil(dedupe(e.ServiceIDs))
	e.GuestIDs = nonNil(dedupe(e.GuestIDs))
	return experienceDoc(e)
}

func (d experienceDoc) toDomain() domain.SharedExperience {
	d.ServiceIDs = nonNil(d.ServiceIDs)
	d.GuestIDs = nonNil(d.GuestIDs)
	return domain.SharedExperience(d)
}

func discountToDoc(d domain.Discount) discountDoc {
	return discountDoc(d)
}

func (d discountDoc) toDomain() domain.Discount {
	return domain.Discount(d)
}

func billingToDoc(b domain.Billing) billingDoc {
	return billingDoc(b)
}

func (d billingDoc) toDomain() domain.Billing {
	return domain.Billing(d)
}
