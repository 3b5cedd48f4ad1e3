package devbackend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

const defaultLimit = 50

func itoa(n int) string {
	return strconv.Itoa(n)
}

// The backend's snake_case query surfaces. They decode through the same
// schema package as the dashboard, so list values may be repeated or
// comma-joined and every problem comes back as a field error.
type (
	BotParams struct {
		schema.Page
		Status          []model.BotStatus       `query:"status" validate:"omitempty,dive,oneof=queued joining in_call recording processing completed failed cancelled"`
		MeetingPlatform []model.MeetingPlatform `query:"meeting_platform" validate:"omitempty,dive,oneof=zoom teams google_meet"`
		CreatedAfter    *time.Time              `query:"created_after"`
		CreatedBefore   *time.Time              `query:"created_before"`
		BotUUID         string                  `query:"bot_uuid" validate:"omitempty,uuid"`
	}
	AdminBotParams struct {
		BotParams
		TeamID *int `query:"team_id" validate:"omitempty,gt=0"`
	}
	EventParams struct {
		schema.Page
		StartDate *time.Time `query:"start_date"`
		EndDate   *time.Time `query:"end_date"`
		Search    string     `query:"search" validate:"max=200"`
	}
	TicketParams struct {
		schema.Page
		Status []model.TicketStatus `query:"status" validate:"omitempty,dive,oneof=open in_progress resolved closed"`
	}
	AdminTicketParams struct {
		TicketParams
		TeamID *int `query:"team_id" validate:"omitempty,gt=0"`
	}
	TeamParams struct {
		schema.Page
		Search string `query:"search" validate:"max=200"`
	}
	UserParams struct {
		schema.Page
		Search string       `query:"search" validate:"max=200"`
		Role   []model.Role `query:"role" validate:"omitempty,dive,oneof=user admin"`
	}
)

// parseParams decodes the request's query into T. On failure it writes a
// 400 listing every invalid field and reports false.
func parseParams[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	res := schema.ParseQuery[T](r.URL.Query())
	if !res.OK() {
		respondError(w, http.StatusBadRequest, model.NewValidationError("Invalid request", res.Errors...))
		return res.Value, false
	}
	return res.Value, true
}

// pageOf converts the wire page to the store's, applying the default limit.
func pageOf(p schema.Page) Page {
	out := Page{Cursor: p.Cursor, Limit: defaultLimit}
	if p.Limit != nil {
		out.Limit = *p.Limit
	}
	return out
}

func (p BotParams) query() BotQuery {
	return BotQuery{
		Status:        p.Status,
		Platform:      p.MeetingPlatform,
		CreatedAfter:  p.CreatedAfter,
		CreatedBefore: p.CreatedBefore,
		BotUUID:       p.BotUUID,
	}
}

// teamOf returns the caller's team id. Users without a team see an empty
// team, which matches no rows.
func teamOf(r *http.Request) int {
	if u := userFromContext(r.Context()); u != nil && u.TeamID != nil {
		return *u.TeamID
	}
	return 0
}

// --- Config and auth ---

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondDetail(w, s.opts.Features)
}

// handleGetSession answers the session lookup. No session is a 200 with a
// null body.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	u, info, err := s.currentSession(r)
	if err != nil {
		s.internalError(w, "session lookup", err)
		return
	}
	if u == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, model.Session{User: sessionUser(u), Session: *info})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	u, err := s.store.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, &model.APIError{Code: model.ErrUnauthorized, Message: "Invalid email or password"})
		return
	}
	if err != nil {
		s.internalError(w, "authenticate", err)
		return
	}
	if u.Banned {
		s.logger.Info("banned user refused", "user_id", u.ID)
		respondError(w, http.StatusForbidden, &model.APIError{Code: "BANNED_USER", Message: "This account has been banned"})
		return
	}

	info, err := s.store.CreateSession(r.Context(), u.ID, s.opts.SessionTTL)
	if err != nil {
		s.internalError(w, "create session", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    info.Token,
		Path:     "/",
		Expires:  info.ExpiresAt,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, model.SignInResponse{Token: info.Token, User: sessionUser(u)})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if err := s.store.DeleteSession(r.Context(), c.Value); err != nil {
			s.internalError(w, "delete session", err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, model.SignOutResponse{Success: true})
}

// --- Team-scoped resources ---

func (s *Server) handleListBots(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[BotParams](w, r)
	if !ok {
		return
	}
	bq := params.query()
	team := teamOf(r)
	bq.TeamID = &team
	resp, err := s.store.ListBots(r.Context(), bq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleGetBot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	team := teamOf(r)
	bot, err := s.store.GetBot(r.Context(), &team, id)
	if err != nil {
		s.internalError(w, "get bot", err)
		return
	}
	if bot == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("Bot", id))
		return
	}
	respondDetail(w, *bot)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[EventParams](w, r)
	if !ok {
		return
	}
	eq := EventQuery{
		TeamID: teamOf(r),
		Start:  params.StartDate,
		End:    params.EndDate,
		Search: params.Search,
	}
	resp, err := s.store.ListEvents(r.Context(), eq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	s.respondTeam(w, r, teamOf(r))
}

func (s *Server) respondTeam(w http.ResponseWriter, r *http.Request, id int) {
	team, err := s.store.GetTeam(r.Context(), id)
	if err != nil {
		s.internalError(w, "get team", err)
		return
	}
	if team == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("Team", itoa(id)))
		return
	}
	respondDetail(w, *team)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	p, ok := parseParams[schema.Page](w, r)
	if !ok {
		return
	}
	resp, err := s.store.ListMembers(r.Context(), teamOf(r), pageOf(p))
	respondList(s, w, resp, err)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	team := teamOf(r)
	usage, err := s.store.Usage(r.Context(), team, time.Now())
	if err != nil {
		s.internalError(w, "usage", err)
		return
	}
	if usage == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("Team", itoa(team)))
		return
	}
	respondDetail(w, *usage)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[TicketParams](w, r)
	if !ok {
		return
	}
	team := teamOf(r)
	tq := TicketQuery{TeamID: &team, Status: params.Status}
	resp, err := s.store.ListTickets(r.Context(), tq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	team := teamOf(r)
	s.respondTicket(w, r, &team)
}

func (s *Server) respondTicket(w http.ResponseWriter, r *http.Request, team *int) {
	id := chi.URLParam(r, "uuid")
	ticket, err := s.store.GetTicket(r.Context(), team, id)
	if err != nil {
		s.internalError(w, "get ticket", err)
		return
	}
	if ticket == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("Ticket", id))
		return
	}
	respondDetail(w, *ticket)
}

// --- Admin ---

func (s *Server) handleAdminListTeams(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[TeamParams](w, r)
	if !ok {
		return
	}
	resp, err := s.store.ListTeams(r.Context(), params.Search, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleAdminGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("Team", chi.URLParam(r, "id")))
		return
	}
	s.respondTeam(w, r, id)
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[UserParams](w, r)
	if !ok {
		return
	}
	uq := UserQuery{Search: params.Search, Role: params.Role}
	resp, err := s.store.ListUsers(r.Context(), uq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleAdminGetUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("User", raw))
		return
	}
	u, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.internalError(w, "get user", err)
		return
	}
	if u == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("User", raw))
		return
	}
	respondDetail(w, *u)
}

func (s *Server) handleAdminListBots(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[AdminBotParams](w, r)
	if !ok {
		return
	}
	bq := params.query()
	bq.TeamID = params.TeamID
	resp, err := s.store.ListBots(r.Context(), bq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleAdminListTickets(w http.ResponseWriter, r *http.Request) {
	params, ok := parseParams[AdminTicketParams](w, r)
	if !ok {
		return
	}
	tq := TicketQuery{Status: params.Status, TeamID: params.TeamID}
	resp, err := s.store.ListTickets(r.Context(), tq, pageOf(params.Page))
	respondList(s, w, resp, err)
}

func (s *Server) handleAdminGetTicket(w http.ResponseWriter, r *http.Request) {
	s.respondTicket(w, r, nil)
}
