package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

var (
	day1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Providers: []domain.Provider{
			{ID: 2, Name: "Sky", Address: "A2", Number: "2", TouristicOperatorPermit: "P2"},
			{ID: 1, Name: "Noah", Address: "A1", Number: "1", TouristicOperatorPermit: "P1"},
		},
		Services: []domain.Service{
			{ID: 1, Name: "Room", Description: "single", Price: 730, ProviderID: 1},
			{ID: 2, Name: "Flight", Description: "AAR-VIE", Price: 1000, ProviderID: 2},
			{ID: 3, Name: "Tour", Description: "walk", Price: 100, ProviderID: 2},
		},
		Guests: []domain.Guest{
			{ID: 1, Name: "Joan"},
			{ID: 2, Name: "Suzanne"},
			{ID: 3, Name: "Patrick"},
		},
		Experiences: []domain.SharedExperience{
			{ID: 1, Name: "Austria", Date: day1, ServiceIDs: []uint{1, 2}, GuestIDs: []uint{1, 2}},
			{ID: 2, Name: "Vienna", Date: day2, ServiceIDs: []uint{2}, GuestIDs: []uint{2, 3}},
			{ID: 3, Name: "Dinner", Date: day2},
		},
		Billings: []domain.Billing{
			{ID: 1, GuestID: 1, Amount: 730},
			{ID: 2, GuestID: 1, Amount: 100},
			{ID: 3, GuestID: 2, Amount: 1000},
		},
	}
}

func TestReportService_Tables(t *testing.T) {
	svc := NewReportService(stubSnapshot{snap: testSnapshot()})
	ctx := context.Background()

	t.Run("table1 ordered by provider id", func(t *testing.T) {
		rows, err := svc.Table1(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Noah", rows[0].Name)
		assert.Equal(t, "P2", rows[1].TouristicOperatorPermit)
	})

	t.Run("table2", func(t *testing.T) {
		rows, err := svc.Table2(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ServiceRow{
			{Name: "Room", Description: "single", Price: 730},
			{Name: "Flight", Description: "AAR-VIE", Price: 1000},
			{Name: "Tour", Description: "walk", Price: 100},
		}, rows)
	})

	t.Run("table3 newest first with id tie break", func(t *testing.T) {
		rows, err := svc.Table3(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ExperienceRow{
			{Name: "Vienna", Date: day2},
			{Name: "Dinner", Date: day2},
			{Name: "Austria", Date: day1},
		}, rows)
	})

	t.Run("table4", func(t *testing.T) {
		rows, err := svc.Table4(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []domain.GuestNameRow{{GuestName: "Suzanne"}, {GuestName: "Patrick"}}, rows)

		rows, err = svc.Table4(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("table5", func(t *testing.T) {
		rows, err := svc.Table5(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []domain.ServiceNameRow{{ServiceName: "Room"}, {ServiceName: "Flight"}}, rows)
	})

	t.Run("table6 distinct guests", func(t *testing.T) {
		rows, err := svc.Table6(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []domain.GuestServiceRow{
			{GuestName: "Joan", ServiceName: "Flight"},
			{GuestName: "Suzanne", ServiceName: "Flight"},
			{GuestName: "Patrick", ServiceName: "Flight"},
		}, rows)

		rows, err = svc.Table6(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("table7", func(t *testing.T) {
		stats, err := svc.Table7(ctx)
		require.NoError(t, err)
		assert.Equal(t, 100, stats.MinPrice)
		assert.Equal(t, 1000, stats.MaxPrice)
		assert.InDelta(t, 610.0, stats.AvgPrice, 0.0001)
	})

	t.Run("table8", func(t *testing.T) {
		rows, err := svc.Table8(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ServiceSalesRow{
			{ServiceName: "Room", GuestCount: 2, TotalSales: 1460},
			{ServiceName: "Flight", GuestCount: 3, TotalSales: 3000},
			{ServiceName: "Tour", GuestCount: 0, TotalSales: 0},
		}, rows)
	})

	t.Run("table9 includes unbilled guests", func(t *testing.T) {
		rows, err := svc.Table9(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.GuestBillingRow{
			{GuestName: "Joan", TotalAmountBilled: 830},
			{GuestName: "Suzanne", TotalAmountBilled: 1000},
			{GuestName: "Patrick", TotalAmountBilled: 0},
		}, rows)
	})
}

func TestReportService_Table7_NoServices(t *testing.T) {
	svc := NewReportService(stubSnapshot{})

	stats, err := svc.Table7(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PriceStats{}, stats)
}

func TestReportService_SnapshotError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewReportService(stubSnapshot{err: boom})

	_, err := svc.Table1(context.Background())

	assert.ErrorIs(t, err, boom)
}
