package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SnapshotReader interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// ReportService answers the read-only report tables. Every call reads one
// consistent snapshot and never writes.
type ReportService struct {
	reader SnapshotReader
}

func NewReportService(reader SnapshotReader) *ReportService {
	return &ReportService{
		reader: reader,
	}
}

func (s *ReportService) snapshot(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.reader.Snapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("s.reader.Snapshot -> %w", err)
	}

	return snap, nil
}

// Table1 lists every provider.
func (s *ReportService) Table1(ctx context.Context) ([]domain.ProviderRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return providerTable(snap), nil
}

// Table2 lists every service.
func (s *ReportService) Table2(ctx context.Context) ([]domain.ServiceRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return serviceTable(snap), nil
}

// Table3 lists shared experiences, newest first.
func (s *ReportService) Table3(ctx context.Context) ([]domain.ExperienceRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return experienceTable(snap), nil
}

// Table4 lists the guests of one shared experience.
func (s *ReportService) Table4(ctx context.Context, experienceID uint) ([]domain.GuestNameRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return experienceGuestTable(snap, experienceID), nil
}

// Table5 lists the services of one shared experience.
func (s *ReportService) Table5(ctx context.Context, experienceID uint) ([]domain.ServiceNameRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return experienceServiceTable(snap, experienceID), nil
}

// Table6 lists the guests who reach a service through a shared experience.
func (s *ReportService) Table6(ctx context.Context, serviceID uint) ([]domain.GuestServiceRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return serviceGuestTable(snap, serviceID), nil
}

// Table7 reports min, mean and max service price.
func (s *ReportService) Table7(ctx context.Context) (domain.PriceStats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.PriceStats{}, err
	}

	return priceStats(snap), nil
}

// Table8 reports guest count and sales per service.
func (s *ReportService) Table8(ctx context.Context) ([]domain.ServiceSalesRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return serviceSalesTable(snap), nil
}

// Table9 reports the billed total per guest.
func (s *ReportService) Table9(ctx context.Context) ([]domain.GuestBillingRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return guestBillingTable(snap), nil
}

func providerTable(snap domain.Snapshot) []domain.ProviderRow {
	providers := append([]domain.Provider(nil), snap.Providers...)
	sort.SliceStable(providers, func(i, j int) bool { return providers[i].ID < providers[j].ID })

	rows := make([]domain.ProviderRow, 0, len(providers))
	for _, p := range providers {
		rows = append(rows, domain.ProviderRow{
			Name:                    p.Name,
			Address:                 p.Address,
			Number:                  p.Number,
			TouristicOperatorPermit: p.TouristicOperatorPermit,
		})
	}

	return rows
}

func serviceTable(snap domain.Snapshot) []domain.ServiceRow {
	services := sortedServices(snap)

	rows := make([]domain.ServiceRow, 0, len(services))
	for _, svc := range services {
		rows = append(rows, domain.ServiceRow{
			Name:        svc.Name,
			Description: svc.Description,
			Price:       svc.Price,
		})
	}

	return rows
}

func experienceTable(snap domain.Snapshot) []domain.ExperienceRow {
	exps := append([]domain.SharedExperience(nil), snap.Experiences...)
	sort.SliceStable(exps, func(i, j int) bool {
		if !exps[i].Date.Equal(exps[j].Date) {
			return exps[i].Date.After(exps[j].Date)
		}
		return exps[i].ID < exps[j].ID
	})

	rows := make([]domain.ExperienceRow, 0, len(exps))
	for _, e := range exps {
		rows = append(rows, domain.ExperienceRow{Name: e.Name, Date: e.Date})
	}

	return rows
}

func experienceGuestTable(snap domain.Snapshot, experienceID uint) []domain.GuestNameRow {
	rows := []domain.GuestNameRow{}

	exp, ok := findExperience(snap, experienceID)
	if !ok {
		return rows
	}
	guests := guestIndex(snap)
	for _, id := range exp.GuestIDs {
		if g, ok := guests[id]; ok {
			rows = append(rows, domain.GuestNameRow{GuestName: g.Name})
		}
	}

	return rows
}

func experienceServiceTable(snap domain.Snapshot, experienceID uint) []domain.ServiceNameRow {
	rows := []domain.ServiceNameRow{}

	exp, ok := findExperience(snap, experienceID)
	if !ok {
		return rows
	}
	services := serviceIndex(snap)
	for _, id := range exp.ServiceIDs {
		if svc, ok := services[id]; ok {
			rows = append(rows, domain.ServiceNameRow{ServiceName: svc.Name})
		}
	}

	return rows
}

func serviceGuestTable(snap domain.Snapshot, serviceID uint) []domain.GuestServiceRow {
	rows := []domain.GuestServiceRow{}

	svc, ok := serviceIndex(snap)[serviceID]
	if !ok {
		return rows
	}
	guests := guestIndex(snap)
	for _, id := range experienceGuestsOf(snap, serviceID) {
		if g, ok := guests[id]; ok {
			rows = append(rows, domain.GuestServiceRow{GuestName: g.Name, ServiceName: svc.Name})
		}
	}

	return rows
}

func priceStats(snap domain.Snapshot) domain.PriceStats {
	if len(snap.Services) == 0 {
		return domain.PriceStats{}
	}

	stats := domain.PriceStats{
		MinPrice: snap.Services[0].Price,
		MaxPrice: snap.Services[0].Price,
	}
	total := 0
	for _, svc := range snap.Services {
		if svc.Price < stats.MinPrice {
			stats.MinPrice = svc.Price
		}
		if svc.Price > stats.MaxPrice {
			stats.MaxPrice = svc.Price
		}
		total += svc.Price
	}
	stats.AvgPrice = float64(total) / float64(len(snap.Services))

	return stats
}

func serviceSalesTable(snap domain.Snapshot) []domain.ServiceSalesRow {
	services := sortedServices(snap)

	rows := make([]domain.ServiceSalesRow, 0, len(services))
	for _, svc := range services {
		count := len(experienceGuestsOf(snap, svc.ID))
		rows = append(rows, domain.ServiceSalesRow{
			ServiceName: svc.Name,
			GuestCount:  count,
			TotalSales:  svc.Price * count,
		})
	}

	return rows
}

func guestBillingTable(snap domain.Snapshot) []domain.GuestBillingRow {
	totals := make(map[uint]int, len(snap.Guests))
	for _, b := range snap.Billings {
		totals[b.GuestID] += b.Amount
	}

	guests := append([]domain.Guest(nil), snap.Guests...)
	sort.SliceStable(guests, func(i, j int) bool { return guests[i].ID < guests[j].ID })

	rows := make([]domain.GuestBillingRow, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, domain.GuestBillingRow{GuestName: g.Name, TotalAmountBilled: totals[g.ID]})
	}

	return rows
}

// experienceGuestsOf returns the distinct guest ids of every shared
// experience containing the service, in experience id then link order.
func experienceGuestsOf(snap domain.Snapshot, serviceID uint) []uint {
	exps := append([]domain.SharedExperience(nil), snap.Experiences...)
	sort.SliceStable(exps, func(i, j int) bool { return exps[i].ID < exps[j].ID })

	var out []uint
	seen := make(map[uint]struct{})
	for _, e := range exps {
		if !containsID(e.ServiceIDs, serviceID) {
			continue
		}
		for _, id := range e.GuestIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	return out
}

func sortedServices(snap domain.Snapshot) []domain.Service {
	services := append([]domain.Service(nil), snap.Services...)
	sort.SliceStable(services, func(i, j int) bool { return services[i].ID < services[j].ID })

	return services
}

func findExperience(snap domain.Snapshot, id uint) (domain.SharedExperience, bool) {
	for _, e := range snap.Experiences {
		if e.ID == id {
			return e, true
		}
	}

	return domain.SharedExperience{}, false
}

func guestIndex(snap domain.Snapshot) map[uint]domain.Guest {
	out := make(map[uint]domain.Guest, len(snap.Guests))
	for _, g := range snap.Guests {
		out[g.ID] = g
	}

	return out
}

func serviceIndex(snap domain.Snapshot) map[uint]domain.Service {
	out := make(map[uint]domain.Service, len(snap.Services))
	for _, svc := range snap.Services {
		out[svc.ID] = svc
	}

	return out
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
