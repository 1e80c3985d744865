package domain

// RawPlace - a place record as returned by GET /api/places
type RawPlace struct {
	PlaceID                     string      `json:"placeId"`
	Name                        string      `json:"name"`
	ShortDescription            *string     `json:"shortDescription,omitempty"`
	Description                 *string     `json:"description,omitempty"`
	ImageURL                    *string     `json:"imageUrl,omitempty"`
	Rating                      interface{} `json:"rating,omitempty"`
	Category                    *string     `json:"category,omitempty"`
	CostTier                    *string     `json:"costTier,omitempty"`
	District                    *string     `json:"district,omitempty"`
	MoodTags                    []string    `json:"moodTags,omitempty"`
	ActivityTypes               []string    `json:"activityTypes,omitempty"`
	Website                     *string     `json:"website,omitempty"`
	Phone                       *string     `json:"phone,omitempty"`
	AccessibilityInfo           *string     `json:"accessibilityInfo,omitempty"`
	ParkingInfo                 *string     `json:"parkingInfo,omitempty"`
	IndoorOutdoor               *string     `json:"indoorOutdoor,omitempty"`
	BestTimeToVisit             *string     `json:"bestTimeToVisit,omitempty"`
	AverageVisitDurationMinutes *int        `json:"averageVisitDuration,omitempty"`
}

// Attraction - normalized client-side shape of a place
type Attraction struct {
	// ID is synthetic and sequential within one catalog load; PlaceID is the
	// stable backend identifier used for details, favorites and routing.
	ID              int      `json:"id"`
	PlaceID         string   `json:"placeId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription *string  `json:"longDescription,omitempty"`
	Photo           *string  `json:"photo,omitempty"`
	Rating          float64  `json:"rating"`
	Category        string   `json:"category"`
	Level           string   `json:"level"`
	Price           *int     `json:"price,omitempty"`
	Distance        string   `json:"distance"`
	Moods           []string `json:"moods,omitempty"`
	ActivityTypes   []string `json:"activityTypes,omitempty"`

	Website             *string `json:"website,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	AccessibilityInfo   *string `json:"accessibilityInfo,omitempty"`
	ParkingInfo         *string `json:"parkingInfo,omitempty"`
	IndoorOutdoor       *string `json:"indoorOutdoor,omitempty"`
	BestTimeOfDay       *string `json:"bestTimeOfDay,omitempty"`
	AverageVisitMinutes *int    `json:"averageVisitMinutes,omitempty"`

	MLScore *float64 `json:"mlScore,omitempty"`
}

// VibeTag - GET /api/PlaceVibeTag/place/{placeId} item
type VibeTag struct {
	PlaceVibeTagID string `json:"placeVibeTagId"`
	PlaceID        string `json:"placeId"`
	Value          string `json:"value"`
}

// ActivityType - GET /api/ActivityType item
type ActivityType struct {
	ActivityTypeID string  `json:"activityTypeId"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
}
