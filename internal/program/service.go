// Wellness Escape | 2026
// service.go

package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellnessescape/backend/internal/core"
)

// ErrMismatchedSession means a check-in referenced a session that does not
// belong to the given week and program.
var ErrMismatchedSession = errors.New("session does not belong to the given week")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	includeInactive bool,
) ([]Program, error) {
	return s.repo.ListPrograms(ctx, includeInactive)
}

// GetDetail loads one program with its weeks and sessions nested. Inactive
// sessions are filtered unless includeInactive is set.
func (s *Service) GetDetail(
	ctx context.Context,
	id string,
	includeInactive bool,
) (*ProgramDetailResponse, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive && !includeInactive {
		return nil, fmt.Errorf("get program: %w", core.ErrNotFound)
	}

	weeks, err := s.repo.ListWeeks(ctx, id)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListSessions(ctx, id)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[string][]SessionResponse)
	for i := range sessions {
		sess := &sessions[i]
		if !sess.IsActive && !includeInactive {
			continue
		}
		byWeek[sess.WeekID] = append(byWeek[sess.WeekID], ToSessionResponse(sess))
	}

	detail := &ProgramDetailResponse{
		ProgramResponse: ToProgramResponse(p),
		Weeks:           make([]WeekResponse, 0, len(weeks)),
	}
	for i := range weeks {
		w := &weeks[i]
		sessionsForWeek := byWeek[w.ID]
		if sessionsForWeek == nil {
			sessionsForWeek = []SessionResponse{}
		}
		detail.Weeks = append(detail.Weeks, WeekResponse{
			ID:            w.ID,
			WeekNumber:    w.WeekNumber,
			Title:         w.Title,
			Summary:       w.Summary,
			IntentionText: w.IntentionText,
			Sessions:      sessionsForWeek,
		})
	}

	return detail, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProgramRequest,
) (*Program, error) {
	p := &Program{
		ID:               uuid.New().String(),
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		IsActive:         true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.CreateProgram(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProgramRequest,
) (*Program, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.ShortDescription != nil {
		p.ShortDescription = req.ShortDescription
	}
	if req.LongDescription != nil {
		p.LongDescription = req.LongDescription
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProgram(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) CreateWeek(
	ctx context.Context,
	programID string,
	req CreateWeekRequest,
) (*Week, error) {
	if _, err := s.repo.GetProgram(ctx, programID); err != nil {
		return nil, err
	}

	w := &Week{
		ID:            uuid.New().String(),
		ProgramID:     programID,
		WeekNumber:    req.WeekNumber,
		Title:         req.Title,
		Summary:       req.Summary,
		IntentionText: req.IntentionText,
	}

	if err := s.repo.CreateWeek(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) UpdateWeek(
	ctx context.Context,
	id string,
	req UpdateWeekRequest,
) (*Week, error) {
	w, err := s.repo.GetWeek(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WeekNumber != nil {
		w.WeekNumber = *req.WeekNumber
	}
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Summary != nil {
		w.Summary = req.Summary
	}
	if req.IntentionText != nil {
		w.IntentionText = req.IntentionText
	}

	if err := s.repo.UpdateWeek(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) CreateSession(
	ctx context.Context,
	weekID string,
	req CreateSessionRequest,
) (*Session, error) {
	w, err := s.repo.GetWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:              uuid.New().String(),
		ProgramID:       w.ProgramID,
		WeekID:          w.ID,
		OrderIndex:      req.OrderIndex,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		VideoURL:        req.VideoURL,
		VideoURL2:       req.VideoURL2,
		JournalPrompt:   req.JournalPrompt,
		IsActive:        true,
	}
	if req.IsActive != nil {
		sess.IsActive = *req.IsActive
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Service) UpdateSession(
	ctx context.Context,
	id string,
	req UpdateSessionRequest,
) (*Session, error) {
	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OrderIndex != nil {
		sess.OrderIndex = *req.OrderIndex
	}
	if req.Title != nil {
		sess.Title = *req.Title
	}
	if req.Description != nil {
		sess.Description = req.Description
	}
	if req.DurationMinutes != nil {
		sess.DurationMinutes = req.DurationMinutes
	}
	if req.VideoURL != nil {
		sess.VideoURL = req.VideoURL
	}
	if req.VideoURL2 != nil {
		sess.VideoURL2 = req.VideoURL2
	}
	if req.JournalPrompt != nil {
		sess.JournalPrompt = req.JournalPrompt
	}
	if req.IsActive != nil {
		sess.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// CheckIn records a completed session for the user. The referenced session
// must belong to the given week and program.
func (s *Service) CheckIn(
	ctx context.Context,
	userID string,
	req CreateCheckInRequest,
) (*CheckIn, error) {
	sess, err := s.repo.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.WeekID != req.WeekID || sess.ProgramID != req.ProgramID {
		return nil, ErrMismatchedSession
	}

	c := &CheckIn{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProgramID: req.ProgramID,
		WeekID:    req.WeekID,
		SessionID: req.SessionID,
	}

	if err := s.repo.CreateCheckIn(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListCheckIns(
	ctx context.Context,
	userID string,
) ([]CheckIn, error) {
	return s.repo.ListCheckIns(ctx, userID)
}
