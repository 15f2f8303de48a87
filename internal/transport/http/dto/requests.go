package dto

import "time"

type CreateClubReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxPeople   int    `json:"max_people"`
}

// Update requests use Optional so handlers can tell an absent field
// (keep the current value) from an explicit null (rejected for every
// field except the nullable review description).
type UpdateClubReq struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	MaxPeople   Optional[int]    `json:"max_people"`
}

type CreateEventReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CategoryID  int64      `json:"category_id"`
	CityIDs     []int64    `json:"city_ids"`
	ClubID      *string    `json:"club_id,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	MaxPeople   int        `json:"max_people"`
}

type UpdateEventReq struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	CategoryID  Optional[int64]     `json:"category_id"`
	CityIDs     Optional[[]int64]   `json:"city_ids"`
	StartTime   Optional[time.Time] `json:"start_time"`
	EndTime     Optional[time.Time] `json:"end_time"`
	MaxPeople   Optional[int]       `json:"max_people"`
}

type CreateReviewReq struct {
	EventID     string  `json:"event_id"`
	Score       int     `json:"score"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type UpdateReviewReq struct {
	Score       Optional[int]    `json:"score"`
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
}
