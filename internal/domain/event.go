package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a time-boxed gathering with a participant cap. A nil ClubID
// means the event is public; otherwise only accepted members of that
// club may participate.
type Event struct {
	ID          uuid.UUID
	HostID      uuid.UUID
	ClubID      *uuid.UUID
	Title       string
	Description string
	CategoryID  int64
	CityIDs     []int64
	StartTime   time.Time
	EndTime     time.Time
	MaxPeople   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewEvent(
	hostID uuid.UUID,
	clubID *uuid.UUID,
	title, description string,
	categoryID int64,
	cityIDs []int64,
	start, end time.Time,
	maxPeople int,
	now time.Time,
) (*Event, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if hostID == uuid.Nil {
		return nil, ErrValidation("host_id is required")
	}
	if title == "" || len(title) > 120 {
		return nil, ErrValidation("title is required and must be <= 120 chars")
	}
	if description == "" || len(description) > 4000 {
		return nil, ErrValidation("description is required and must be <= 4000 chars")
	}
	if categoryID <= 0 {
		return nil, ErrValidation("category_id is required")
	}
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return nil, ErrValidation("start_time must be before end_time")
	}
	if start.Before(now) {
		return nil, ErrValidation("start_time must not be in the past")
	}
	// the host occupies one slot
	if maxPeople < 1 {
		return nil, ErrValidation("max_people must be >= 1")
	}

	return &Event{
		ID:          uuid.New(),
		HostID:      hostID,
		ClubID:      clubID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		CityIDs:     append([]int64(nil), cityIDs...),
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		MaxPeople:   maxPeople,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// HasStarted reports now >= start_time. Update and delete are only
// allowed before the start.
func (e *Event) HasStarted(now time.Time) bool {
	return !now.Before(e.StartTime)
}

// IsEnded reports now > end_time.
func (e *Event) IsEnded(now time.Time) bool {
	return now.After(e.EndTime)
}

func (e *Event) IsClubScoped() bool { return e.ClubID != nil }

// ApplyUpdate patches mutable fields and re-validates the combined time
// range. Nil means "leave unchanged". Refdata existence and the
// capacity-vs-participants check live in the application layer.
func (e *Event) ApplyUpdate(
	title, description *string,
	categoryID *int64,
	cityIDs *[]int64,
	start, end *time.Time,
	maxPeople *int,
	now time.Time,
) error {
	if title != nil {
		v := strings.TrimSpace(*title)
		if v == "" || len(v) > 120 {
			return ErrValidation("title must be non-empty and <= 120 chars")
		}
		e.Title = v
	}
	if description != nil {
		v := strings.TrimSpace(*description)
		if v == "" || len(v) > 4000 {
			return ErrValidation("description must be non-empty and <= 4000 chars")
		}
		e.Description = v
	}
	if categoryID != nil {
		if *categoryID <= 0 {
			return ErrValidation("category_id must be positive")
		}
		e.CategoryID = *categoryID
	}
	if cityIDs != nil {
		e.CityIDs = append([]int64(nil), (*cityIDs)...)
	}
	if start != nil {
		e.StartTime = start.UTC()
	}
	if end != nil {
		e.EndTime = end.UTC()
	}
	if start != nil || end != nil {
		if !e.StartTime.Before(e.EndTime) {
			return ErrValidation("start_time must be before end_time")
		}
		if e.StartTime.Before(now) {
			return ErrValidation("start_time must not be in the past")
		}
	}
	if maxPeople != nil {
		if *maxPeople < 1 {
			return ErrValidation("max_people must be >= 1")
		}
		e.MaxPeople = *maxPeople
	}
	e.UpdatedAt = now.UTC()
	return nil
}

// Participation is an identity-to-event enrollment record. There is no
// approval stage; a row exists or it does not.
type Participation struct {
	EventID   uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}
