package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

func TestTripPlanUseCase_Generate(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.expectCatalog()
	recs := &MockRecommendationsAPI{}
	uc := usecase.NewTripPlanUseCase(recs, &MockTripsAPI{}, f.uc, zap.NewNop())
	sess := newSession(t, f.store, testUser())

	recs.On("GenerateTripPlans", mock.Anything, mock.Anything, "u-1").Return(&domain.GenerateTripPlansResponse{
		TotalPlans: 3,
		Plans: map[string][]domain.MLTripPlace{
			"Plan 10": {{Name: "Cairo Tower", FinalScore: 0.4, Latitude: 30.0459, Longitude: 31.2243}},
			"Plan 2": {
				{Name: "Khan el-Khalili", FinalScore: 0.3, Latitude: 30.0477, Longitude: 31.2623},
				{Name: "Karnak Temple", FinalScore: 0.9, Latitude: 30.0459, Longitude: 31.2243},
				{Name: "khan el-khalili", FinalScore: 0.2},
				{Name: "Sphinx", FinalScore: 0.7},
			},
			"Plan 1": {{Name: "Karnak Temple", FinalScore: 0.9}},
		},
	}, nil)

	resp, err := uc.Generate(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	assert.Equal(t, "Plan 1", resp.Plans[0].Name)
	assert.Equal(t, "Plan 2", resp.Plans[1].Name)
	assert.Equal(t, "Plan 10", resp.Plans[2].Name)

	plan := resp.Plans[1]
	require.Len(t, plan.Attractions, 2)
	assert.Equal(t, "Khan el-Khalili", plan.Attractions[0].Title, "visiting order is kept")
	assert.Equal(t, "Karnak Temple", plan.Attractions[1].Title)
	assert.InDelta(t, 0.3, *plan.Attractions[0].MLScore, 1e-9)
	assert.Equal(t, []string{"Sphinx"}, plan.Unmatched)
	assert.Greater(t, plan.RouteKm, 0.0)

	assert.Zero(t, resp.Plans[0].RouteKm)
}

func TestTripPlanUseCase_Create(t *testing.T) {
	ctx := context.Background()
	trips := &MockTripsAPI{}
	uc := usecase.NewTripPlanUseCase(&MockRecommendationsAPI{}, trips, nil, zap.NewNop())
	sess := newSession(t, kv.NewMemory(), testUser())

	date := "2026-11-02"
	var order []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, step) }
	}

	trips.On("CreateTrip", ctx, sess, domain.TripPlanCreate{UserID: "u-1", Title: "Old Cairo", TripDays: 2}).
		Return("t-1", nil).Run(record("trip")).Once()
	trips.On("AddTripDay", ctx, sess, "t-1", domain.TripDayCreate{TripPlanID: "t-1", DayNumber: 1, Date: &date}).
		Return("d-1", nil).Run(record("day 1")).Once()
	trips.On("AddTripDay", ctx, sess, "t-1", domain.TripDayCreate{TripPlanID: "t-1", DayNumber: 2}).
		Return("d-2", nil).Run(record("day 2")).Once()
	trips.On("AddTripSlot", ctx, sess, "d-1", domain.TripSlotCreate{SlotType: domain.SlotMorning, PlaceID: "p-karnak"}).
		Return("s-1", nil).Run(record("slot d-1 morning")).Once()
	trips.On("AddTripSlot", ctx, sess, "d-1", domain.TripSlotCreate{SlotType: domain.SlotEvening, PlaceID: "p-khan"}).
		Return("s-2", nil).Run(record("slot d-1 evening")).Once()
	trips.On("GetTrip", ctx, sess, "t-1").
		Return(&domain.TripPlan{TripPlanID: "t-1", UserID: "u-1", Title: "Old Cairo", TripDays: 2}, nil).Once()

	trip, err := uc.Create(ctx, sess, dto.CreateTripRequest{
		Title: "Old Cairo",
		Days: []dto.CreateTripDayRequest{
			{Date: &date, Slots: []dto.CreateTripSlotRequest{
				{SlotType: domain.SlotMorning, PlaceID: "p-karnak"},
				{SlotType: domain.SlotEvening, PlaceID: "p-khan"},
			}},
			{},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", trip.TripPlanID)
	assert.Equal(t, []string{"trip", "day 1", "slot d-1 morning", "slot d-1 evening", "day 2"}, order)
	trips.AssertExpectations(t)
}

func TestTripPlanUseCase_NotFound(t *testing.T) {
	ctx := context.Background()
	trips := &MockTripsAPI{}
	uc := usecase.NewTripPlanUseCase(&MockRecommendationsAPI{}, trips, nil, zap.NewNop())
	sess := newSession(t, kv.NewMemory(), testUser())
	notFound := &backend.APIError{StatusCode: 404}

	trips.On("ListTrips", ctx, sess, "u-1").Return(nil, notFound)
	trips.On("GetTrip", ctx, sess, "t-x").Return(nil, notFound)
	trips.On("DeleteTrip", ctx, sess, "t-x").Return(notFound)
	trips.On("DeleteTripSlot", ctx, sess, "s-x").Return(notFound)

	list, err := uc.List(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	_, err = uc.Get(ctx, sess, "t-x")
	assert.ErrorIs(t, err, errors.ErrTripNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, sess, "t-x"), errors.ErrTripNotFound)
	assert.ErrorIs(t, uc.DeleteSlot(ctx, sess, "s-x"), errors.ErrTripNotFound)

	_, err = uc.List(ctx, newSession(t, kv.NewMemory(), nil))
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}
