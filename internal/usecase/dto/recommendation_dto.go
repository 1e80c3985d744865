package dto

import "github.com/cairogo-gateway/internal/domain"

// RecommendationsResponse - персональные рекомендации, сопоставленные с каталогом
type RecommendationsResponse struct {
	Items     []Attraction `json:"items"`
	Count     int          `json:"count"`
	Unmatched []string     `json:"unmatched"`
	Cached    bool         `json:"cached"`
}

// GeneratedPlan - один вариант маршрута от ML сервиса
type GeneratedPlan struct {
	Name        string       `json:"name"`
	Number      int          `json:"number"`
	Attractions []Attraction `json:"attractions"`
	Unmatched   []string     `json:"unmatched"`
	RouteKm     float64      `json:"routeKm"`
}

type GeneratedPlansResponse struct {
	Plans []GeneratedPlan `json:"plans"`
	Total int             `json:"total"`
}

// CreateTripRequest - сохранение маршрута вместе с днями и слотами
type CreateTripRequest struct {
	Title              string                 `json:"title" validate:"required,max=200"`
	StartDate          *string                `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AlignmentScore     *float64               `json:"alignmentScore,omitempty"`
	ScoreBreakdownJSON *string                `json:"scoreBreakdownJson,omitempty"`
	ParentPlanID       *string                `json:"parentPlanId,omitempty"`
	VariationNumber    *int                   `json:"variationNumber,omitempty"`
	Days               []CreateTripDayRequest `json:"days" validate:"required,min=1,max=14,dive"`
}

type CreateTripDayRequest struct {
	Date  *string                 `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Slots []CreateTripSlotRequest `json:"slots" validate:"dive"`
}

type CreateTripSlotRequest struct {
	SlotType         domain.SlotType `json:"slotType" validate:"required,oneof=Morning Afternoon Evening Optional"`
	PlaceID          string          `json:"placeId" validate:"required"`
	AlternatePlaceID *string         `json:"alternatePlaceId,omitempty"`
	Notes            *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Slot converts the request to the backend body.
func (r CreateTripSlotRequest) Slot() domain.TripSlotCreate {
	return domain.TripSlotCreate{
		SlotType:         r.SlotType,
		PlaceID:          r.PlaceID,
		AlternatePlaceID: r.AlternatePlaceID,
		Notes:            r.Notes,
	}
}

// PreferenceRequest - ответы квиза
type PreferenceRequest struct {
	TravelVibe      string   `json:"travelVibe" validate:"required,max=100"`
	ActivityTypeIDs []string `json:"activityTypeIds" validate:"dive,required"`
	WeatherPref     string   `json:"weatherPref" validate:"omitempty,max=50"`
	TripDays        int      `json:"tripDays" validate:"required,min=1,max=14"`
}
