/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON shapes the SPA exchanges with the server. Field names
  keep the Portuguese labels the screens use (dt_venc, dia_pg, pmt_pontos,
  quem_id, ...) so stored rows round-trip unchanged.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

CONVENTIONS:
  - Dates travel as ISO "YYYY-MM-DD" strings (or empty when missing).
  - Amounts travel as decimal strings; parsing happens in the calculators.
  - TDV due markers keep the "DD/MM" encoding of the legacy sheets.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - store/sqlite/sqlite.go: the raw records behind them
*/
package api

// =============================================================================
// AUTH
// =============================================================================

// RegisterRequest creates a dashboard user.
type RegisterRequest struct {
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
}

// LoginRequest authenticates a dashboard user.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// TokenResponse carries the bearer token issued on register/login.
type TokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Nome  string `json:"nome,omitempty"`
}

// ErrorResponse is the standard error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// ENTITIES
// =============================================================================

// MemberDTO is a team member (equipe).
type MemberDTO struct {
	ID      string `json:"id"`
	Nome    string `json:"nome"`
	Cargo   string `json:"cargo,omitempty"`
	DtNiver string `json:"dt_niver,omitempty"`
}

// TaskDTO is a tracked task (tarefas).
type TaskDTO struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao,omitempty"`
	DtVenc    string `json:"dt_venc,omitempty"`
}

// ActionDTO is a strategic action (acoes).
type ActionDTO struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Responsavel string `json:"responsavel,omitempty"`
	DtVenc      string `json:"dt_venc,omitempty"`
	Obs         string `json:"obs,omitempty"`
}

// ConsortiumDTO is a consortium sale (consorcio).
type ConsortiumDTO struct {
	ID       string `json:"id"`
	Proposta string `json:"proposta"`
	DtVenda  string `json:"dt_venda,omitempty"`
	Tipo     string `json:"tipo"`
	Valor    string `json:"valor"`
	DiaPg    int    `json:"dia_pg"`
}

// TDVDTO is a TDV points contract.
type TDVDTO struct {
	ID        string `json:"id"`
	Proposta  string `json:"proposta"`
	NMeses    int    `json:"n_meses"`
	DiaVenc   string `json:"dia_venc,omitempty"`
	PmtPontos int    `json:"pmt_pontos"`
	DtVenda   string `json:"dt_venda,omitempty"`
}

// DealDTO is a pipeline entry (esteira).
type DealDTO struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	CnpjCpf  string `json:"cnpj_cpf,omitempty"`
	Operacao string `json:"operacao,omitempty"`
	Valor    string `json:"valor,omitempty"`
	Data     string `json:"data,omitempty"`
}

// AgendaDTO is a scheduled event.
type AgendaDTO struct {
	ID     string `json:"id"`
	Titulo string `json:"titulo"`
	Data   string `json:"data,omitempty"`
	Hora   string `json:"hora,omitempty"`
	Obs    string `json:"obs,omitempty"`
}

// FeedbackDTO is a one-on-one feedback record.
type FeedbackDTO struct {
	ID        string `json:"id"`
	QuemID    string `json:"quem_id"`
	Resultado string `json:"resultado,omitempty"`
	Obs       string `json:"obs,omitempty"`
}

// =============================================================================
// WIDGETS
// =============================================================================

// DuenessWidgetDTO carries the four-way due-date partition counts. Semana
// includes today, matching what the task and action widgets display.
type DuenessWidgetDTO struct {
	Atrasadas int `json:"atrasadas"`
	Hoje      int `json:"hoje"`
	Semana    int `json:"semana"`
	Depois    int `json:"depois"`
}

// ConsortiumWidgetDTO summarizes the semester's consortium position.
type ConsortiumWidgetDTO struct {
	PagasSemestre     string          `json:"pagas_semestre"`
	PendentesSemestre string          `json:"pendentes_semestre"`
	VenceMes          []ConsortiumDTO `json:"vence_mes"`
	Total             int             `json:"total"`
}

// TDVWidgetDTO summarizes the TDV points position.
type TDVWidgetDTO struct {
	PontosMes      int `json:"pontos_mes"`
	PontosSemestre int `json:"pontos_semestre"`
	Vencidas       int `json:"vencidas"`
	Proximas       int `json:"proximas"`
}

// BirthdayWidgetDTO counts birthday matches after weekend normalization.
type BirthdayWidgetDTO struct {
	Hoje   int `json:"hoje"`
	Semana int `json:"semana"`
	Mes    int `json:"mes"`
}

// FeedbackWidgetDTO summarizes feedback scores.
type FeedbackWidgetDTO struct {
	Total      int     `json:"total"`
	Aprovados  int     `json:"aprovados"`
	Reprovados int     `json:"reprovados"`
	Media      float64 `json:"media"`
	Avaliados  int     `json:"avaliados"`
}

// TeamWidgetDTO counts team members.
type TeamWidgetDTO struct {
	Total int `json:"total"`
}

// =============================================================================
// DASHDAY AND DERIVED LISTS
// =============================================================================

// DueItemDTO is one dated row in a dashday section.
type DueItemDTO struct {
	ID     string `json:"id"`
	Titulo string `json:"titulo"`
	DtVenc string `json:"dt_venc"`
}

// DashdaySection pairs the overdue and due-today listings.
type DashdaySection struct {
	Atrasados []DueItemDTO `json:"atrasados"`
	Hoje      []DueItemDTO `json:"hoje"`
}

// DashdayResponse is the day dashboard: what is late or due today across
// every tracked collection, plus exact-date birthdays.
type DashdayResponse struct {
	Tarefas         DashdaySection `json:"tarefas"`
	Acoes           DashdaySection `json:"acoes"`
	Esteira         DashdaySection `json:"esteira"`
	Agenda          DashdaySection `json:"agenda"`
	Aniversariantes []MemberDTO    `json:"aniversariantes"`
}

// PipelinePanelResponse is the esteira screen: the month split plus the
// per-category grouping.
type PipelinePanelResponse struct {
	MesAtual   []DealDTO            `json:"mes_atual"`
	Proximas   []DealDTO            `json:"proximas"`
	Categorias map[string][]DealDTO `json:"categorias"`
}
