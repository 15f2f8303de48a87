package dto

import "github.com/minyoungbaek/eventory/internal/domain"

func ToClubResp(c *domain.Club) ClubResp {
	return ClubResp{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		LeaderID:    c.LeaderID.String(),
		MaxPeople:   c.MaxPeople,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToClubResps(cs []*domain.Club) []ClubResp {
	out := make([]ClubResp, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToClubResp(c))
	}
	return out
}

func ToApplicantResp(m *domain.Membership) ApplicantResp {
	return ApplicantResp{
		UserID:    m.UserID.String(),
		Status:    string(m.Status),
		AppliedAt: m.CreatedAt,
	}
}

func ToApplicantResps(ms []*domain.Membership) []ApplicantResp {
	out := make([]ApplicantResp, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToApplicantResp(m))
	}
	return out
}

func ToEventResp(e *domain.Event) EventResp {
	resp := EventResp{
		ID:          e.ID.String(),
		HostID:      e.HostID.String(),
		Title:       e.Title,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		CityIDs:     e.CityIDs,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		MaxPeople:   e.MaxPeople,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if resp.CityIDs == nil {
		resp.CityIDs = []int64{}
	}
	if e.ClubID != nil {
		s := e.ClubID.String()
		resp.ClubID = &s
	}
	return resp
}

func ToEventResps(es []*domain.Event) []EventResp {
	out := make([]EventResp, 0, len(es))
	for _, e := range es {
		out = append(out, ToEventResp(e))
	}
	return out
}

func ToReviewResp(rv *domain.Review) ReviewResp {
	return ReviewResp{
		ID:          rv.ID.String(),
		UserID:      rv.UserID.String(),
		EventID:     rv.EventID.String(),
		Score:       rv.Score,
		Title:       rv.Title,
		Description: rv.Description,
		CreatedAt:   rv.CreatedAt,
		UpdatedAt:   rv.UpdatedAt,
	}
}

func ToReviewResps(rvs []*domain.Review) []ReviewResp {
	out := make([]ReviewResp, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, ToReviewResp(rv))
	}
	return out
}
