package dto

import "time"

type ClubResp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeaderID    string    `json:"leader_id"`
	MaxPeople   int       `json:"max_people"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ApplicantResp struct {
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type EventResp struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	ClubID      *string   `json:"club_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"category_id"`
	CityIDs     []int64   `json:"city_ids"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxPeople   int       `json:"max_people"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventListResp struct {
	Items    []EventResp `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

type ReviewResp struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventID     string    `json:"event_id"`
	Score       int       `json:"score"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
