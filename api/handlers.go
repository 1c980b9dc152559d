/*
handlers.go - HTTP API handlers for the strategy dashboard

PURPOSE:
  Exposes the dashboard via REST API. Handles HTTP request/response, JSON
  serialization, and delegates every calculation to the calculator
  packages (dueness, installments, points, birthdays, pipeline, feedback).

ENDPOINTS:
  Auth:
    POST   /api/auth/register          Create user, returns token
    POST   /api/auth/login             Authenticate, returns token

  Entities (all bearer-protected, scoped to the caller):
    GET/POST        /api/{collection}
    GET/PUT/DELETE  /api/{collection}/{id}
    for collection in equipe, tarefas, acoes, esteira, agenda,
    consorcio, tdv, feedback

  Derived:
    POST   /api/consorcio/{id}/confirmar   Record a paid installment
    POST   /api/tdv/{id}/confirmar         Record a collected period
    GET    /api/consorcio/pendentes        Semester position + month dues
    GET    /api/tdv/vencidas               Plans past their due date
    GET    /api/tdv/pendentes              Plans maturing this cycle
    GET    /api/esteira/painel             Month split + categories
    GET    /api/widgets/*                  Aggregate widget numbers
    GET    /api/dashday                    Day dashboard

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Load the caller's rows, convert to calculator inputs
  4. Call domain logic
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid credentials
  - 404: Resource not found
  - 409: Conflict (duplicate user, settled plan)
  - 500: Internal errors

CLOCK:
  Every calculation takes "today" from h.Now, injectable for tests.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/carioca/estrategia/auth"
	"github.com/carioca/estrategia/birthdays"
	"github.com/carioca/estrategia/calendar"
	"github.com/carioca/estrategia/dueness"
	"github.com/carioca/estrategia/feedback"
	"github.com/carioca/estrategia/installments"
	"github.com/carioca/estrategia/pipeline"
	"github.com/carioca/estrategia/points"
	"github.com/carioca/estrategia/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Log    *logrus.Logger
	Secret string

	// Now supplies "today" to every calculation. Overridable in tests.
	Now func() calendar.Date
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log *logrus.Logger, secret string) *Handler {
	return &Handler{
		Store:  store,
		Log:    log,
		Secret: secret,
		Now:    calendar.Today,
	}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// owner resolves the authenticated caller's email from the request context.
func owner(r *http.Request) string {
	return auth.Owner(r.Context())
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Register creates a new dashboard user and returns a token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Senha == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	existing, err := h.Store.GetUser(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check user", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "User already exists", nil)
		return
	}

	hash, err := auth.HashPassword(req.Senha)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	user := sqlite.User{
		Email:        req.Email,
		Name:         req.Nome,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Store.SaveUser(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save user", err)
		return
	}

	token, err := auth.IssueToken(h.Secret, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	h.Log.WithField("email", user.Email).Info("user registered")
	writeJSON(w, http.StatusCreated, TokenResponse{Token: token, Email: user.Email, Nome: user.Name})
}

// Login authenticates a user and returns a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.Store.GetUser(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Senha) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := auth.IssueToken(h.Secret, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token, Email: user.Email, Nome: user.Name})
}

// =============================================================================
// MEMBER HANDLERS (equipe)
// =============================================================================

func toMemberDTO(m sqlite.Member) MemberDTO {
	return MemberDTO{ID: m.ID, Nome: m.Name, Cargo: m.Role, DtNiver: m.BirthDate}
}

// ListMembers returns the caller's team.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListMembers(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}
	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toMemberDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMember adds a team member.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Nome == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("membro")
	}

	rec := sqlite.Member{ID: req.ID, Name: req.Nome, Role: req.Cargo, BirthDate: req.DtNiver, OwnerEmail: owner(r)}
	if err := h.Store.SaveMember(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberDTO(rec))
}

// GetMember returns a single team member.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.Store.GetMember(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get member", err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "Member not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toMemberDTO(*m))
}

// UpdateMember replaces a team member.
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetMember(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get member", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Member not found", nil)
		return
	}

	var req MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.Member{ID: id, Name: req.Nome, Role: req.Cargo, BirthDate: req.DtNiver, OwnerEmail: owner(r)}
	if err := h.Store.SaveMember(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberDTO(rec))
}

// DeleteMember removes a team member.
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteMember(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TASK HANDLERS (tarefas)
// =============================================================================

func toTaskDTO(t sqlite.Task) TaskDTO {
	return TaskDTO{ID: t.ID, Titulo: t.Title, Descricao: t.Description, DtVenc: t.DueDate}
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListTasks(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Titulo == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("tarefa")
	}

	rec := sqlite.Task{ID: req.ID, Title: req.Titulo, Description: req.Descricao, DueDate: req.DtVenc, OwnerEmail: owner(r)}
	if err := h.Store.SaveTask(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskDTO(rec))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTask(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get task", err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Task not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(*t))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetTask(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get task", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Task not found", nil)
		return
	}

	var req TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.Task{ID: id, Title: req.Titulo, Description: req.Descricao, DueDate: req.DtVenc, OwnerEmail: owner(r)}
	if err := h.Store.SaveTask(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(rec))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTask(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ACTION HANDLERS (acoes)
// =============================================================================

func toActionDTO(a sqlite.Action) ActionDTO {
	return ActionDTO{ID: a.ID, Titulo: a.Title, Responsavel: a.Assignee, DtVenc: a.DueDate, Obs: a.Notes}
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.Store.ListActions(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list actions", err)
		return
	}
	dtos := make([]ActionDTO, len(actions))
	for i, a := range actions {
		dtos[i] = toActionDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAction(w http.ResponseWriter, r *http.Request) {
	var req ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Titulo == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("acao")
	}

	rec := sqlite.Action{ID: req.ID, Title: req.Titulo, Assignee: req.Responsavel, DueDate: req.DtVenc, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveAction(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save action", err)
		return
	}
	writeJSON(w, http.StatusCreated, toActionDTO(rec))
}

func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.GetAction(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get action", err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Action not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toActionDTO(*a))
}

func (h *Handler) UpdateAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetAction(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get action", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Action not found", nil)
		return
	}

	var req ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.Action{ID: id, Title: req.Titulo, Assignee: req.Responsavel, DueDate: req.DtVenc, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveAction(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save action", err)
		return
	}
	writeJSON(w, http.StatusOK, toActionDTO(rec))
}

func (h *Handler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAction(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete action", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CONSORTIUM HANDLERS (consorcio)
// =============================================================================

func toConsortiumDTO(p sqlite.ConsortiumPlan) ConsortiumDTO {
	return ConsortiumDTO{ID: p.ID, Proposta: p.Proposal, DtVenda: p.SaleDate, Tipo: p.Category, Valor: p.Value, DiaPg: p.Paid}
}

// toConsortiumPlan converts a stored row into a calculator input. Bad
// dates and amounts degrade to zero values there.
func toConsortiumPlan(p sqlite.ConsortiumPlan) installments.Plan {
	return installments.Plan{
		ID:       p.ID,
		Proposal: p.Proposal,
		SaleDate: calendar.ParseISO(p.SaleDate),
		Category: installments.Category(p.Category),
		Value:    installments.ParseValue(p.Value),
		Paid:     p.Paid,
	}
}

func (h *Handler) consortiumPlans(r *http.Request) ([]sqlite.ConsortiumPlan, []installments.Plan, error) {
	records, err := h.Store.ListConsortiumPlans(r.Context(), owner(r))
	if err != nil {
		return nil, nil, err
	}
	plans := make([]installments.Plan, len(records))
	for i, rec := range records {
		plans[i] = toConsortiumPlan(rec)
	}
	return records, plans, nil
}

func (h *Handler) ListConsortiumPlans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListConsortiumPlans(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	dtos := make([]ConsortiumDTO, len(records))
	for i, p := range records {
		dtos[i] = toConsortiumDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateConsortiumPlan(w http.ResponseWriter, r *http.Request) {
	var req ConsortiumDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Proposta == "" {
		writeError(w, http.StatusBadRequest, "Proposal is required", nil)
		return
	}
	if req.DiaPg < 0 || req.DiaPg > installments.TotalInstallments {
		writeError(w, http.StatusBadRequest, "Paid count out of range", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("consorcio")
	}

	rec := sqlite.ConsortiumPlan{ID: req.ID, Proposal: req.Proposta, SaleDate: req.DtVenda, Category: req.Tipo, Value: req.Valor, Paid: req.DiaPg, OwnerEmail: owner(r)}
	if err := h.Store.SaveConsortiumPlan(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, toConsortiumDTO(rec))
}

func (h *Handler) GetConsortiumPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetConsortiumPlan(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toConsortiumDTO(*p))
}

func (h *Handler) UpdateConsortiumPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetConsortiumPlan(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	var req ConsortiumDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.DiaPg < 0 || req.DiaPg > installments.TotalInstallments {
		writeError(w, http.StatusBadRequest, "Paid count out of range", nil)
		return
	}
	rec := sqlite.ConsortiumPlan{ID: id, Proposal: req.Proposta, SaleDate: req.DtVenda, Category: req.Tipo, Value: req.Valor, Paid: req.DiaPg, OwnerEmail: owner(r)}
	if err := h.Store.SaveConsortiumPlan(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toConsortiumDTO(rec))
}

func (h *Handler) DeleteConsortiumPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteConsortiumPlan(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmConsortiumPayment records the next installment as paid.
// POST /api/consorcio/{id}/confirmar
func (h *Handler) ConfirmConsortiumPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetConsortiumPlan(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	updated, ok := installments.Confirm(toConsortiumPlan(*rec))
	if !ok {
		writeError(w, http.StatusConflict, "Plan is already settled", nil)
		return
	}

	rec.Paid = updated.Paid
	if err := h.Store.SaveConsortiumPlan(r.Context(), *rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"plan": id, "paid": rec.Paid}).Info("consortium installment confirmed")
	writeJSON(w, http.StatusOK, toConsortiumDTO(*rec))
}

// ConsortiumPending returns the semester position: amounts collected and
// outstanding, plus the plans with an installment maturing this month.
// GET /api/consorcio/pendentes
func (h *Handler) ConsortiumPending(w http.ResponseWriter, r *http.Request) {
	records, plans, err := h.consortiumPlans(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	today := h.Now()

	byID := make(map[string]sqlite.ConsortiumPlan, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	due := installments.DueThisMonth(plans, today)
	dueDTOs := make([]ConsortiumDTO, len(due))
	for i, p := range due {
		dueDTOs[i] = toConsortiumDTO(byID[p.ID])
	}

	writeJSON(w, http.StatusOK, ConsortiumWidgetDTO{
		PagasSemestre:     installments.PaidInSemester(plans, today).String(),
		PendentesSemestre: installments.PendingInSemester(plans, today).String(),
		VenceMes:          dueDTOs,
		Total:             len(plans),
	})
}

// =============================================================================
// TDV HANDLERS
// =============================================================================

func toTDVDTO(p sqlite.TDVPlan) TDVDTO {
	return TDVDTO{ID: p.ID, Proposta: p.Proposal, NMeses: p.RemainingMonths, DiaVenc: p.NextDue, PmtPontos: p.Points, DtVenda: p.SaleDate}
}

func toTDVPlan(p sqlite.TDVPlan) points.Plan {
	return points.Plan{
		ID:        p.ID,
		Proposal:  p.Proposal,
		Remaining: p.RemainingMonths,
		NextDue:   p.NextDue,
		Points:    p.Points,
		SaleDate:  calendar.ParseISO(p.SaleDate),
	}
}

func (h *Handler) tdvPlans(r *http.Request) ([]sqlite.TDVPlan, []points.Plan, error) {
	records, err := h.Store.ListTDVPlans(r.Context(), owner(r))
	if err != nil {
		return nil, nil, err
	}
	plans := make([]points.Plan, len(records))
	for i, rec := range records {
		plans[i] = toTDVPlan(rec)
	}
	return records, plans, nil
}

func (h *Handler) ListTDVPlans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListTDVPlans(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	dtos := make([]TDVDTO, len(records))
	for i, p := range records {
		dtos[i] = toTDVDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTDVPlan(w http.ResponseWriter, r *http.Request) {
	var req TDVDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Proposta == "" {
		writeError(w, http.StatusBadRequest, "Proposal is required", nil)
		return
	}
	if req.NMeses < 0 {
		writeError(w, http.StatusBadRequest, "Remaining months must not be negative", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("tdv")
	}

	rec := sqlite.TDVPlan{ID: req.ID, Proposal: req.Proposta, RemainingMonths: req.NMeses, NextDue: req.DiaVenc, Points: req.PmtPontos, SaleDate: req.DtVenda, OwnerEmail: owner(r)}
	if err := h.Store.SaveTDVPlan(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTDVDTO(rec))
}

func (h *Handler) GetTDVPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetTDVPlan(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toTDVDTO(*p))
}

func (h *Handler) UpdateTDVPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetTDVPlan(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	var req TDVDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.TDVPlan{ID: id, Proposal: req.Proposta, RemainingMonths: req.NMeses, NextDue: req.DiaVenc, Points: req.PmtPontos, SaleDate: req.DtVenda, OwnerEmail: owner(r)}
	if err := h.Store.SaveTDVPlan(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toTDVDTO(rec))
}

func (h *Handler) DeleteTDVPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTDVPlan(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmTDVPeriod records the current period's points as collected and
// rolls the due marker one month forward.
// POST /api/tdv/{id}/confirmar
func (h *Handler) ConfirmTDVPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetTDVPlan(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	updated := points.Confirm(toTDVPlan(*rec), h.Now())
	rec.RemainingMonths = updated.Remaining
	rec.NextDue = updated.NextDue
	if err := h.Store.SaveTDVPlan(r.Context(), *rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"plan": id, "remaining": rec.RemainingMonths}).Info("tdv period confirmed")
	writeJSON(w, http.StatusOK, toTDVDTO(*rec))
}

// tdvListFrom maps a derived plan list back to stored rows.
func tdvListFrom(records []sqlite.TDVPlan, derived []points.Plan) []TDVDTO {
	byID := make(map[string]sqlite.TDVPlan, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	dtos := make([]TDVDTO, len(derived))
	for i, p := range derived {
		dtos[i] = toTDVDTO(byID[p.ID])
	}
	return dtos
}

// TDVOverdue lists plans whose due date slipped past without collection.
// GET /api/tdv/vencidas
func (h *Handler) TDVOverdue(w http.ResponseWriter, r *http.Request) {
	records, plans, err := h.tdvPlans(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	writeJSON(w, http.StatusOK, tdvListFrom(records, points.Overdue(plans, h.Now())))
}

// TDVUpcoming lists plans maturing in the current cycle.
// GET /api/tdv/pendentes
func (h *Handler) TDVUpcoming(w http.ResponseWriter, r *http.Request) {
	records, plans, err := h.tdvPlans(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	writeJSON(w, http.StatusOK, tdvListFrom(records, points.Upcoming(plans, h.Now())))
}

// =============================================================================
// DEAL HANDLERS (esteira)
// =============================================================================

func toDealDTO(d sqlite.Deal) DealDTO {
	return DealDTO{ID: d.ID, Nome: d.Name, CnpjCpf: d.TaxID, Operacao: d.Operation, Valor: d.Value, Data: d.CloseDate}
}

func toDeal(d sqlite.Deal) pipeline.Deal {
	return pipeline.Deal{
		ID:        d.ID,
		Name:      d.Name,
		TaxID:     d.TaxID,
		Operation: d.Operation,
		Value:     installments.ParseValue(d.Value),
		Date:      calendar.ParseISO(d.CloseDate),
	}
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.Store.ListDeals(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list deals", err)
		return
	}
	dtos := make([]DealDTO, len(deals))
	for i, d := range deals {
		dtos[i] = toDealDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req DealDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Nome == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("esteira")
	}

	rec := sqlite.Deal{ID: req.ID, Name: req.Nome, TaxID: req.CnpjCpf, Operation: req.Operacao, Value: req.Valor, CloseDate: req.Data, OwnerEmail: owner(r)}
	if err := h.Store.SaveDeal(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save deal", err)
		return
	}
	writeJSON(w, http.StatusCreated, toDealDTO(rec))
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.GetDeal(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get deal", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "Deal not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toDealDTO(*d))
}

func (h *Handler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetDeal(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get deal", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Deal not found", nil)
		return
	}

	var req DealDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.Deal{ID: id, Name: req.Nome, TaxID: req.CnpjCpf, Operation: req.Operacao, Value: req.Valor, CloseDate: req.Data, OwnerEmail: owner(r)}
	if err := h.Store.SaveDeal(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save deal", err)
		return
	}
	writeJSON(w, http.StatusOK, toDealDTO(rec))
}

func (h *Handler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteDeal(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete deal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PipelinePanel splits the caller's deals into the current month and the
// upcoming tail, plus a per-category grouping over all deals.
// GET /api/esteira/painel
func (h *Handler) PipelinePanel(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListDeals(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list deals", err)
		return
	}

	byID := make(map[string]sqlite.Deal, len(records))
	deals := make([]pipeline.Deal, len(records))
	for i, rec := range records {
		byID[rec.ID] = rec
		deals[i] = toDeal(rec)
	}

	toDTOs := func(list []pipeline.Deal) []DealDTO {
		dtos := make([]DealDTO, len(list))
		for i, d := range list {
			dtos[i] = toDealDTO(byID[d.ID])
		}
		return dtos
	}

	split := pipeline.SplitByMonth(deals, h.Now())
	grouped := pipeline.GroupByCategory(deals)
	categories := make(map[string][]DealDTO, len(grouped))
	for cat, list := range grouped {
		categories[string(cat)] = toDTOs(list)
	}

	writeJSON(w, http.StatusOK, PipelinePanelResponse{
		MesAtual:   toDTOs(split.CurrentMonth),
		Proximas:   toDTOs(split.Upcoming),
		Categorias: categories,
	})
}

// =============================================================================
// AGENDA HANDLERS
// =============================================================================

func toAgendaDTO(e sqlite.AgendaEvent) AgendaDTO {
	return AgendaDTO{ID: e.ID, Titulo: e.Title, Data: e.EventDate, Hora: e.EventTime, Obs: e.Notes}
}

func (h *Handler) ListAgendaEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListAgendaEvents(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	dtos := make([]AgendaDTO, len(events))
	for i, e := range events {
		dtos[i] = toAgendaDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAgendaEvent(w http.ResponseWriter, r *http.Request) {
	var req AgendaDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Titulo == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("agenda")
	}

	rec := sqlite.AgendaEvent{ID: req.ID, Title: req.Titulo, EventDate: req.Data, EventTime: req.Hora, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveAgendaEvent(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save event", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAgendaDTO(rec))
}

func (h *Handler) GetAgendaEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetAgendaEvent(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAgendaDTO(*e))
}

func (h *Handler) UpdateAgendaEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetAgendaEvent(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}

	var req AgendaDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.AgendaEvent{ID: id, Title: req.Titulo, EventDate: req.Data, EventTime: req.Hora, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveAgendaEvent(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save event", err)
		return
	}
	writeJSON(w, http.StatusOK, toAgendaDTO(rec))
}

func (h *Handler) DeleteAgendaEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAgendaEvent(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// FEEDBACK HANDLERS
// =============================================================================

func toFeedbackDTO(f sqlite.FeedbackEntry) FeedbackDTO {
	return FeedbackDTO{ID: f.ID, QuemID: f.MemberID, Resultado: f.Score, Obs: f.Notes}
}

func (h *Handler) ListFeedbackEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListFeedbackEntries(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list feedback", err)
		return
	}
	dtos := make([]FeedbackDTO, len(entries))
	for i, f := range entries {
		dtos[i] = toFeedbackDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SearchFeedback narrows the listing to one team member.
// GET /api/feedback/search?quem_id=...
func (h *Handler) SearchFeedback(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("quem_id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "quem_id is required", nil)
		return
	}

	entries, err := h.Store.ListFeedbackByMember(r.Context(), owner(r), memberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search feedback", err)
		return
	}
	dtos := make([]FeedbackDTO, len(entries))
	for i, f := range entries {
		dtos[i] = toFeedbackDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateFeedbackEntry(w http.ResponseWriter, r *http.Request) {
	var req FeedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.QuemID == "" {
		writeError(w, http.StatusBadRequest, "Member id is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("feedback")
	}

	rec := sqlite.FeedbackEntry{ID: req.ID, MemberID: req.QuemID, Score: req.Resultado, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveFeedbackEntry(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, toFeedbackDTO(rec))
}

func (h *Handler) GetFeedbackEntry(w http.ResponseWriter, r *http.Request) {
	f, err := h.Store.GetFeedbackEntry(r.Context(), chi.URLParam(r, "id"), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get feedback", err)
		return
	}
	if f == nil {
		writeError(w, http.StatusNotFound, "Feedback not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackDTO(*f))
}

func (h *Handler) UpdateFeedbackEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetFeedbackEntry(r.Context(), id, owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get feedback", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Feedback not found", nil)
		return
	}

	var req FeedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec := sqlite.FeedbackEntry{ID: id, MemberID: req.QuemID, Score: req.Resultado, Notes: req.Obs, OwnerEmail: owner(r)}
	if err := h.Store.SaveFeedbackEntry(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, toFeedbackDTO(rec))
}

func (h *Handler) DeleteFeedbackEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFeedbackEntry(r.Context(), chi.URLParam(r, "id"), owner(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete feedback", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WIDGET HANDLERS
// =============================================================================

func duenessCounts(items []dueness.Item, today calendar.Date) DuenessWidgetDTO {
	counts := dueness.CountOf(items, today)
	return DuenessWidgetDTO{
		Atrasadas: counts.Overdue,
		Hoje:      counts.DueToday,
		Semana:    counts.WeekWithToday(),
		Depois:    counts.Later,
	}
}

// TasksWidget returns the due-date partition counts for tasks.
// GET /api/widgets/tarefas
func (h *Handler) TasksWidget(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListTasks(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	items := make([]dueness.Item, len(tasks))
	for i, t := range tasks {
		items[i] = dueness.NewItem(t.ID, t.Title, t.DueDate)
	}
	writeJSON(w, http.StatusOK, duenessCounts(items, h.Now()))
}

// ActionsWidget returns the due-date partition counts for actions.
// GET /api/widgets/acoes
func (h *Handler) ActionsWidget(w http.ResponseWriter, r *http.Request) {
	actions, err := h.Store.ListActions(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list actions", err)
		return
	}
	items := make([]dueness.Item, len(actions))
	for i, a := range actions {
		items[i] = dueness.NewItem(a.ID, a.Title, a.DueDate)
	}
	writeJSON(w, http.StatusOK, duenessCounts(items, h.Now()))
}

// ConsortiumWidget returns the semester's consortium position.
// GET /api/widgets/consorcio
func (h *Handler) ConsortiumWidget(w http.ResponseWriter, r *http.Request) {
	h.ConsortiumPending(w, r)
}

// TDVWidget returns the TDV points position.
// GET /api/widgets/tdv
func (h *Handler) TDVWidget(w http.ResponseWriter, r *http.Request) {
	_, plans, err := h.tdvPlans(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}
	today := h.Now()
	writeJSON(w, http.StatusOK, TDVWidgetDTO{
		PontosMes:      points.ThisMonth(plans, today),
		PontosSemestre: points.ThisSemester(plans, today),
		Vencidas:       len(points.Overdue(plans, today)),
		Proximas:       len(points.Upcoming(plans, today)),
	})
}

func (h *Handler) teamPeople(r *http.Request) ([]sqlite.Member, []birthdays.Person, error) {
	members, err := h.Store.ListMembers(r.Context(), owner(r))
	if err != nil {
		return nil, nil, err
	}
	people := make([]birthdays.Person, len(members))
	for i, m := range members {
		people[i] = birthdays.Person{ID: m.ID, Name: m.Name, Birth: m.BirthDate}
	}
	return members, people, nil
}

// BirthdaysWidget counts the weekend-normalized birthday matches.
// GET /api/widgets/aniversariantes
func (h *Handler) BirthdaysWidget(w http.ResponseWriter, r *http.Request) {
	_, people, err := h.teamPeople(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}
	counts := birthdays.CountOf(people, h.Now())
	writeJSON(w, http.StatusOK, BirthdayWidgetDTO{Hoje: counts.Today, Semana: counts.ThisWeek, Mes: counts.ThisMonth})
}

// FeedbackWidget summarizes feedback scores.
// GET /api/widgets/feedback
func (h *Handler) FeedbackWidget(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListFeedbackEntries(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list feedback", err)
		return
	}
	in := make([]feedback.Entry, len(entries))
	for i, f := range entries {
		in[i] = feedback.Entry{ID: f.ID, MemberID: f.MemberID, Score: f.Score, Note: f.Notes}
	}
	stats := feedback.Compute(in)
	writeJSON(w, http.StatusOK, FeedbackWidgetDTO{
		Total:      stats.Total,
		Aprovados:  stats.Approved,
		Reprovados: stats.Failed,
		Media:      stats.Average,
		Avaliados:  stats.Scored,
	})
}

// TeamWidget counts team members.
// GET /api/widgets/equipe
func (h *Handler) TeamWidget(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListMembers(r.Context(), owner(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}
	writeJSON(w, http.StatusOK, TeamWidgetDTO{Total: len(members)})
}

// =============================================================================
// DASHDAY
// =============================================================================

func toSection(items []dueness.Item, today calendar.Date) DashdaySection {
	buckets := dueness.Classify(items, today)
	toDTOs := func(list []dueness.Item) []DueItemDTO {
		dtos := make([]DueItemDTO, len(list))
		for i, it := range list {
			dtos[i] = DueItemDTO{ID: it.ID, Titulo: it.Title, DtVenc: it.Due.ISO()}
		}
		return dtos
	}
	return DashdaySection{
		Atrasados: toDTOs(dueness.SortByDate(buckets.Overdue)),
		Hoje:      toDTOs(dueness.SortByDate(buckets.DueToday)),
	}
}

// Dashday assembles the day dashboard: overdue and due-today rows across
// tasks, actions, pipeline and agenda, plus exact-date birthdays.
// GET /api/dashday
func (h *Handler) Dashday(w http.ResponseWriter, r *http.Request) {
	today := h.Now()
	who := owner(r)
	ctx := r.Context()

	tasks, err := h.Store.ListTasks(ctx, who)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	actions, err := h.Store.ListActions(ctx, who)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list actions", err)
		return
	}
	deals, err := h.Store.ListDeals(ctx, who)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list deals", err)
		return
	}
	events, err := h.Store.ListAgendaEvents(ctx, who)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	members, people, err := h.teamPeople(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}

	taskItems := make([]dueness.Item, len(tasks))
	for i, t := range tasks {
		taskItems[i] = dueness.NewItem(t.ID, t.Title, t.DueDate)
	}
	actionItems := make([]dueness.Item, len(actions))
	for i, a := range actions {
		actionItems[i] = dueness.NewItem(a.ID, a.Title, a.DueDate)
	}
	dealItems := make([]dueness.Item, len(deals))
	for i, d := range deals {
		dealItems[i] = dueness.NewItem(d.ID, d.Name, d.CloseDate)
	}
	eventItems := make([]dueness.Item, len(events))
	for i, e := range events {
		eventItems[i] = dueness.NewItem(e.ID, e.Title, e.EventDate)
	}

	byID := make(map[string]sqlite.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	celebrants := []MemberDTO{}
	for _, p := range birthdays.ExactToday(people, today) {
		celebrants = append(celebrants, toMemberDTO(byID[p.ID]))
	}

	writeJSON(w, http.StatusOK, DashdayResponse{
		Tarefas:         toSection(taskItems, today),
		Acoes:           toSection(actionItems, today),
		Esteira:         toSection(dealItems, today),
		Agenda:          toSection(eventItems, today),
		Aniversariantes: celebrants,
	})
}
