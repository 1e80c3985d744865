package domain

import "time"

// MLRecommendation - one ranked item from POST /api/ml-recommendations/generate
type MLRecommendation struct {
	PlaceID    int     `json:"PlaceId"`
	Name       string  `json:"Name"`
	Category   string  `json:"Category"`
	PhotoURL   string  `json:"Photo URL"`
	FinalScore float64 `json:"Final_Score"`
}

// GenerateRecommendationsResponse - ML generate response envelope
type GenerateRecommendationsResponse struct {
	Message         string             `json:"message"`
	Count           int                `json:"count"`
	Recommendations []MLRecommendation `json:"recommendations"`
}

// MLTripPlace - one stop of an ML-generated trip plan
type MLTripPlace struct {
	PlaceID        int     `json:"PlaceId"`
	Name           string  `json:"Name"`
	Category       string  `json:"Category"`
	PhotoURL       string  `json:"Photo URL"`
	FinalScore     float64 `json:"Final_Score"`
	Latitude       float64 `json:"Latitude"`
	Longitude      float64 `json:"Longitude"`
	Rating         float64 `json:"Rating"`
	ReviewCount    int     `json:"Review Count"`
	NormPopularity float64 `json:"Norm_Popularity"`
	Cluster        *int    `json:"cluster"`
}

// Recommendation returns the stop as a ranked recommendation for catalog matching.
func (p MLTripPlace) Recommendation() MLRecommendation {
	return MLRecommendation{
		PlaceID:    p.PlaceID,
		Name:       p.Name,
		Category:   p.Category,
		PhotoURL:   p.PhotoURL,
		FinalScore: p.FinalScore,
	}
}

// GenerateTripPlansResponse - ML plan generation response; plans are keyed "Plan 1", "Plan 2", ...
type GenerateTripPlansResponse struct {
	Message    string                   `json:"message"`
	TotalPlans int                      `json:"totalPlans"`
	Plans      map[string][]MLTripPlace `json:"plans"`
}

// SlotType - part of the day a trip slot belongs to
type SlotType string

const (
	SlotMorning   SlotType = "Morning"
	SlotAfternoon SlotType = "Afternoon"
	SlotEvening   SlotType = "Evening"
	SlotOptional  SlotType = "Optional"
)

// TripSlot - a place visit within a trip day
type TripSlot struct {
	TripSlotID       string   `json:"tripSlotId"`
	TripDayID        string   `json:"tripDayId,omitempty"`
	SlotType         SlotType `json:"slotType"`
	PlaceID          string   `json:"placeId"`
	AlternatePlaceID *string  `json:"alternatePlaceId,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// TripDay - one day of a saved trip
type TripDay struct {
	TripDayID  string     `json:"tripDayId"`
	TripPlanID string     `json:"tripPlanId,omitempty"`
	DayNumber  int        `json:"dayNumber"`
	Date       *string    `json:"date,omitempty"`
	TripSlots  []TripSlot `json:"tripSlots"`
}

// TripPlan - a saved trip
type TripPlan struct {
	TripPlanID         string    `json:"tripPlanId"`
	UserID             string    `json:"userId"`
	Title              string    `json:"title"`
	StartDate          *string   `json:"startDate,omitempty"`
	TripDays           int       `json:"tripDays"`
	AlignmentScore     *float64  `json:"alignmentScore,omitempty"`
	ScoreBreakdownJSON *string   `json:"scoreBreakdownJson,omitempty"`
	ParentPlanID       *string   `json:"parentPlanId,omitempty"`
	VariationNumber    *int      `json:"variationNumber,omitempty"`
	Days               []TripDay `json:"tripDaysCollection"`
}

// TripPlanCreate - POST /api/TripPlane/create body
type TripPlanCreate struct {
	UserID             string   `json:"userId"`
	Title              string   `json:"title"`
	StartDate          *string  `json:"startDate,omitempty"`
	TripDays           int      `json:"tripDays"`
	AlignmentScore     *float64 `json:"alignmentScore,omitempty"`
	ScoreBreakdownJSON *string  `json:"scoreBreakdownJson,omitempty"`
	ParentPlanID       *string  `json:"parentPlanId,omitempty"`
	VariationNumber    *int     `json:"variationNumber,omitempty"`
}

// TripDayCreate - POST /api/TripDay/trip/{tripId} body
type TripDayCreate struct {
	TripPlanID string  `json:"tripPlanId"`
	DayNumber  int     `json:"dayNumber"`
	Date       *string `json:"date,omitempty"`
}

// TripSlotCreate - POST /api/TripSlot/day/{dayId} body
type TripSlotCreate struct {
	SlotType         SlotType `json:"slotType"`
	PlaceID          string   `json:"placeId"`
	AlternatePlaceID *string  `json:"alternatePlaceId,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// PreferenceProfile - quiz result stored by the backend
type PreferenceProfile struct {
	ProfileID       string         `json:"profileId"`
	UserID          string         `json:"userId"`
	TravelVibe      string         `json:"travelVibe"`
	PlaceCategories string         `json:"placeCategories,omitempty"`
	WeatherPref     string         `json:"weatherPref"`
	TripDays        int            `json:"tripDays"`
	LastQuizTakenAt *time.Time     `json:"lastQuizTakenAt,omitempty"`
	ActivityTypes   []ActivityType `json:"activityTypes,omitempty"`
}

// PreferenceCreate - POST /api/Preference/create body
type PreferenceCreate struct {
	UserID          string   `json:"userId"`
	TravelVibe      string   `json:"travelVibe"`
	ActivityTypeIDs []string `json:"activityTypeIds"`
	WeatherPref     string   `json:"weatherPref"`
	TripDays        int      `json:"tripDays"`
}

// PreferenceUpdate - POST /api/Preference/update/{profileId} body
type PreferenceUpdate struct {
	TravelVibe      *string  `json:"travelVibe,omitempty"`
	WeatherPref     *string  `json:"weatherPref,omitempty"`
	TripDays        *int     `json:"tripDays,omitempty"`
	ActivityTypeIDs []string `json:"activityTypeIds,omitempty"`
}
