package usecase

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/metrics"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// TripPlanUseCase - генерация и сохранение маршрутов
type TripPlanUseCase struct {
	recsAPI   repository.RecommendationsAPI
	tripsAPI  repository.TripsAPI
	catalogUC *CatalogUseCase
	logger    *zap.Logger
}

// NewTripPlanUseCase - создание нового TripPlanUseCase
func NewTripPlanUseCase(recsAPI repository.RecommendationsAPI, tripsAPI repository.TripsAPI, catalogUC *CatalogUseCase, logger *zap.Logger) *TripPlanUseCase {
	return &TripPlanUseCase{
		recsAPI:   recsAPI,
		tripsAPI:  tripsAPI,
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// Generate - варианты маршрута ML сервиса, упорядоченные по номеру плана
func (uc *TripPlanUseCase) Generate(ctx context.Context, sess repository.Session) (*dto.GeneratedPlansResponse, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}

	resp, err := uc.recsAPI.GenerateTripPlans(ctx, sess, userID)
	if err != nil {
		uc.logger.Error("Failed to generate trip plans", zap.String("user_id", userID), zap.Error(err))
		return nil, backendError(err, nil)
	}

	items, err := uc.catalogUC.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	index := catalog.NewTitleIndex(items)

	plans := make([]dto.GeneratedPlan, 0, len(resp.Plans))
	for name, stops := range resp.Plans {
		recs := make([]domain.MLRecommendation, 0, len(stops))
		route := make([]utils.LatLon, 0, len(stops))
		for _, s := range stops {
			recs = append(recs, s.Recommendation())
			route = append(route, utils.LatLon{Lat: s.Latitude, Lon: s.Longitude})
		}

		// plan stops keep the ML visiting order, only dedup and join apply
		matched, unmatched := joinInOrder(index, recs)
		if len(unmatched) > 0 {
			metrics.RecommendationJoinMisses.Add(float64(len(unmatched)))
			uc.logger.Info("Trip plan stops without catalog match",
				zap.String("plan", name),
				zap.Strings("names", unmatched),
			)
		}

		plans = append(plans, dto.GeneratedPlan{
			Name:        name,
			Number:      planNumber(name),
			Attractions: dto.ToAttractions(matched),
			Unmatched:   unmatched,
			RouteKm:     utils.RouteLengthKm(route),
		})
	}

	slices.SortFunc(plans, func(a, b dto.GeneratedPlan) int {
		if a.Number != b.Number {
			return a.Number - b.Number
		}
		return strings.Compare(a.Name, b.Name)
	})

	return &dto.GeneratedPlansResponse{Plans: plans, Total: len(plans)}, nil
}

// joinInOrder maps each stop to its catalog attraction, keeping the first
// occurrence of repeated attractions.
func joinInOrder(index catalog.TitleIndex, recs []domain.MLRecommendation) ([]domain.Attraction, []string) {
	matched := make([]domain.Attraction, 0, len(recs))
	unmatched := make([]string, 0)
	seen := make(map[int]struct{}, len(recs))
	for _, r := range recs {
		a, ok := index.Lookup(r.Name)
		if !ok {
			unmatched = append(unmatched, r.Name)
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		score := r.FinalScore
		a.MLScore = &score
		matched = append(matched, a)
	}
	return matched, unmatched
}

// planNumber extracts N from "Plan N"; names without a number sort last.
func planNumber(name string) int {
	fields := strings.Fields(name)
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return n
		}
	}
	return int(^uint(0) >> 1)
}

// List - сохранённые маршруты пользователя
func (uc *TripPlanUseCase) List(ctx context.Context, sess repository.Session) ([]domain.TripPlan, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}
	trips, err := uc.tripsAPI.ListTrips(ctx, sess, userID)
	if err != nil {
		if backend.IsNotFound(err) {
			return []domain.TripPlan{}, nil
		}
		uc.logger.Error("Failed to list trips", zap.Error(err))
		return nil, backendError(err, errors.ErrTripNotFound)
	}
	if trips == nil {
		trips = []domain.TripPlan{}
	}
	return trips, nil
}

func (uc *TripPlanUseCase) Get(ctx context.Context, sess repository.Session, tripID string) (*domain.TripPlan, error) {
	if _, err := requireUser(sess); err != nil {
		return nil, err
	}
	trip, err := uc.tripsAPI.GetTrip(ctx, sess, tripID)
	if err != nil {
		return nil, backendError(err, errors.ErrTripNotFound)
	}
	return trip, nil
}

// Create - сохранение маршрута: план, затем дни по порядку, затем слоты каждого дня
func (uc *TripPlanUseCase) Create(ctx context.Context, sess repository.Session, req dto.CreateTripRequest) (*domain.TripPlan, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}

	tripID, err := uc.tripsAPI.CreateTrip(ctx, sess, domain.TripPlanCreate{
		UserID:             userID,
		Title:              req.Title,
		StartDate:          req.StartDate,
		TripDays:           len(req.Days),
		AlignmentScore:     req.AlignmentScore,
		ScoreBreakdownJSON: req.ScoreBreakdownJSON,
		ParentPlanID:       req.ParentPlanID,
		VariationNumber:    req.VariationNumber,
	})
	if err != nil {
		uc.logger.Error("Failed to create trip", zap.Error(err))
		return nil, backendError(err, nil)
	}

	for i, day := range req.Days {
		dayID, err := uc.tripsAPI.AddTripDay(ctx, sess, tripID, domain.TripDayCreate{
			TripPlanID: tripID,
			DayNumber:  i + 1,
			Date:       day.Date,
		})
		if err != nil {
			uc.logger.Error("Failed to add trip day",
				zap.String("trip_id", tripID),
				zap.Int("day", i+1),
				zap.Error(err),
			)
			return nil, backendError(err, errors.ErrTripNotFound)
		}
		for _, slot := range day.Slots {
			if _, err := uc.tripsAPI.AddTripSlot(ctx, sess, dayID, slot.Slot()); err != nil {
				uc.logger.Error("Failed to add trip slot",
					zap.String("trip_id", tripID),
					zap.String("day_id", dayID),
					zap.Error(err),
				)
				return nil, backendError(err, errors.ErrTripNotFound)
			}
		}
	}

	uc.logger.Info("Trip saved", zap.String("trip_id", tripID), zap.Int("days", len(req.Days)))
	return uc.Get(ctx, sess, tripID)
}

func (uc *TripPlanUseCase) Delete(ctx context.Context, sess repository.Session, tripID string) error {
	if _, err := requireUser(sess); err != nil {
		return err
	}
	if err := uc.tripsAPI.DeleteTrip(ctx, sess, tripID); err != nil {
		return backendError(err, errors.ErrTripNotFound)
	}
	return nil
}

// AddSlot - добавление слота в существующий день
func (uc *TripPlanUseCase) AddSlot(ctx context.Context, sess repository.Session, dayID string, req dto.CreateTripSlotRequest) (string, error) {
	if _, err := requireUser(sess); err != nil {
		return "", err
	}
	slotID, err := uc.tripsAPI.AddTripSlot(ctx, sess, dayID, req.Slot())
	if err != nil {
		return "", backendError(err, errors.ErrTripNotFound)
	}
	return slotID, nil
}

func (uc *TripPlanUseCase) DeleteSlot(ctx context.Context, sess repository.Session, slotID string) error {
	if _, err := requireUser(sess); err != nil {
		return err
	}
	if err := uc.tripsAPI.DeleteTripSlot(ctx, sess, slotID); err != nil {
		return backendError(err, errors.ErrTripNotFound)
	}
	return nil
}
