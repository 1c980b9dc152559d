/*
Package sqlite provides the SQLite-backed persistence for the dashboard.

PURPOSE:
  Every entity the back office manages lives here: registered users,
  team members, tasks, actions, consortium plans, TDV contracts,
  pipeline deals, agenda events and feedback entries. Rows are plain
  records with raw string dates and amounts; parsing/normalization
  happens at the API boundary, so a malformed row degrades in the
  calculators instead of failing a query.

OWNER SCOPING:
  All entity rows carry owner_email. List queries filter by it, and
  Get/Delete take the owner so one user can never read or remove
  another's rows.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("estrategia.db")   // ":memory:" in tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the database at path. Use ":memory:" for an
// in-memory database in tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT,
		birth_date TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_members_owner ON members(owner_email);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		due_date TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_email);

	CREATE TABLE IF NOT EXISTS actions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		assignee TEXT,
		due_date TEXT,
		notes TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_actions_owner ON actions(owner_email);

	CREATE TABLE IF NOT EXISTS consortium_plans (
		id TEXT PRIMARY KEY,
		proposal TEXT NOT NULL,
		sale_date TEXT,
		category TEXT NOT NULL,
		value TEXT NOT NULL,
		paid INTEGER NOT NULL DEFAULT 0,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_consortium_owner ON consortium_plans(owner_email);

	CREATE TABLE IF NOT EXISTS tdv_plans (
		id TEXT PRIMARY KEY,
		proposal TEXT NOT NULL,
		remaining_months INTEGER NOT NULL DEFAULT 0,
		next_due TEXT,
		points INTEGER NOT NULL DEFAULT 0,
		sale_date TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tdv_owner ON tdv_plans(owner_email);

	CREATE TABLE IF NOT EXISTS deals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tax_id TEXT,
		operation TEXT,
		value TEXT,
		close_date TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deals_owner ON deals(owner_email);

	CREATE TABLE IF NOT EXISTS agenda_events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		event_date TEXT,
		event_time TEXT,
		notes TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_agenda_owner ON agenda_events(owner_email);

	CREATE TABLE IF NOT EXISTS feedback_entries (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		score TEXT,
		notes TEXT,
		owner_email TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_owner ON feedback_entries(owner_email);
	CREATE INDEX IF NOT EXISTS idx_feedback_member ON feedback_entries(member_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD TYPES - Raw rows; dates and amounts stay strings until the API
// boundary parses them.
// =============================================================================

type User struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type Member struct {
	ID         string
	Name       string
	Role       string
	BirthDate  string // ISO date
	OwnerEmail string
}

type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     string // ISO date
	OwnerEmail  string
}

type Action struct {
	ID         string
	Title      string
	Assignee   string
	DueDate    string // ISO date
	Notes      string
	OwnerEmail string
}

type ConsortiumPlan struct {
	ID         string
	Proposal   string
	SaleDate   string // ISO date
	Category   string
	Value      string // decimal string
	Paid       int
	OwnerEmail string
}

type TDVPlan struct {
	ID              string
	Proposal        string
	RemainingMonths int
	NextDue         string // "DD/MM"
	Points          int
	SaleDate        string // ISO date
	OwnerEmail      string
}

type Deal struct {
	ID         string
	Name       string
	TaxID      string
	Operation  string
	Value      string // decimal string
	CloseDate  string // ISO date
	OwnerEmail string
}

type AgendaEvent struct {
	ID         string
	Title      string
	EventDate  string // ISO date or RFC 3339
	EventTime  string
	Notes      string
	OwnerEmail string
}

type FeedbackEntry struct {
	ID         string
	MemberID   string
	Score      string
	Notes      string
	OwnerEmail string
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.Email, u.Name, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// GetUser returns nil (no error) when the user does not exist.
func (s *Store) GetUser(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT email, name, password_hash, created_at FROM users WHERE email = ?`, email)

	var u User
	var createdAt string
	if err := row.Scan(&u.Email, &u.Name, &u.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT email, name, password_hash, created_at FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt string
		if err := rows.Scan(&u.Email, &u.Name, &u.PasswordHash, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// =============================================================================
// MEMBERS (equipe)
// =============================================================================

func (s *Store) SaveMember(ctx context.Context, m Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO members (id, name, role, birth_date, owner_email)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, m.BirthDate, m.OwnerEmail)
	return err
}

func (s *Store) GetMember(ctx context.Context, id, owner string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, birth_date, owner_email
		FROM members WHERE id = ? AND owner_email = ?`, id, owner)

	var m Member
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.BirthDate, &m.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListMembers(ctx context.Context, owner string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, birth_date, owner_email
		FROM members WHERE owner_email = ? ORDER BY name`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.BirthDate, &m.OwnerEmail); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) DeleteMember(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM members WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// TASKS (tarefas)
// =============================================================================

func (s *Store) SaveTask(ctx context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (id, title, description, due_date, owner_email)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.DueDate, t.OwnerEmail)
	return err
}

func (s *Store) GetTask(ctx context.Context, id, owner string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, due_date, owner_email
		FROM tasks WHERE id = ? AND owner_email = ?`, id, owner)

	var t Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context, owner string) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, due_date, owner_email
		FROM tasks WHERE owner_email = ? ORDER BY due_date, title`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.OwnerEmail); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// ACTIONS (acoes)
// =============================================================================

func (s *Store) SaveAction(ctx context.Context, a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO actions (id, title, assignee, due_date, notes, owner_email)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Assignee, a.DueDate, a.Notes, a.OwnerEmail)
	return err
}

func (s *Store) GetAction(ctx context.Context, id, owner string) (*Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, assignee, due_date, notes, owner_email
		FROM actions WHERE id = ? AND owner_email = ?`, id, owner)

	var a Action
	if err := row.Scan(&a.ID, &a.Title, &a.Assignee, &a.DueDate, &a.Notes, &a.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListActions(ctx context.Context, owner string) ([]Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, assignee, due_date, notes, owner_email
		FROM actions WHERE owner_email = ? ORDER BY due_date, title`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.Title, &a.Assignee, &a.DueDate, &a.Notes, &a.OwnerEmail); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (s *Store) DeleteAction(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM actions WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// CONSORTIUM PLANS (consorcio)
// =============================================================================

func (s *Store) SaveConsortiumPlan(ctx context.Context, p ConsortiumPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO consortium_plans
			(id, proposal, sale_date, category, value, paid, owner_email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Proposal, p.SaleDate, p.Category, p.Value, p.Paid, p.OwnerEmail)
	return err
}

func (s *Store) GetConsortiumPlan(ctx context.Context, id, owner string) (*ConsortiumPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, proposal, sale_date, category, value, paid, owner_email
		FROM consortium_plans WHERE id = ? AND owner_email = ?`, id, owner)

	var p ConsortiumPlan
	if err := row.Scan(&p.ID, &p.Proposal, &p.SaleDate, &p.Category, &p.Value, &p.Paid, &p.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListConsortiumPlans(ctx context.Context, owner string) ([]ConsortiumPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, proposal, sale_date, category, value, paid, owner_email
		FROM consortium_plans WHERE owner_email = ? ORDER BY sale_date, proposal`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []ConsortiumPlan
	for rows.Next() {
		var p ConsortiumPlan
		if err := rows.Scan(&p.ID, &p.Proposal, &p.SaleDate, &p.Category, &p.Value, &p.Paid, &p.OwnerEmail); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) DeleteConsortiumPlan(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM consortium_plans WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// TDV PLANS
// =============================================================================

func (s *Store) SaveTDVPlan(ctx context.Context, p TDVPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tdv_plans
			(id, proposal, remaining_months, next_due, points, sale_date, owner_email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Proposal, p.RemainingMonths, p.NextDue, p.Points, p.SaleDate, p.OwnerEmail)
	return err
}

func (s *Store) GetTDVPlan(ctx context.Context, id, owner string) (*TDVPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, proposal, remaining_months, next_due, points, sale_date, owner_email
		FROM tdv_plans WHERE id = ? AND owner_email = ?`, id, owner)

	var p TDVPlan
	if err := row.Scan(&p.ID, &p.Proposal, &p.RemainingMonths, &p.NextDue, &p.Points, &p.SaleDate, &p.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListTDVPlans(ctx context.Context, owner string) ([]TDVPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, proposal, remaining_months, next_due, points, sale_date, owner_email
		FROM tdv_plans WHERE owner_email = ? ORDER BY proposal`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []TDVPlan
	for rows.Next() {
		var p TDVPlan
		if err := rows.Scan(&p.ID, &p.Proposal, &p.RemainingMonths, &p.NextDue, &p.Points, &p.SaleDate, &p.OwnerEmail); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) DeleteTDVPlan(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tdv_plans WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// DEALS (esteira)
// =============================================================================

func (s *Store) SaveDeal(ctx context.Context, d Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO deals
			(id, name, tax_id, operation, value, close_date, owner_email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.TaxID, d.Operation, d.Value, d.CloseDate, d.OwnerEmail)
	return err
}

func (s *Store) GetDeal(ctx context.Context, id, owner string) (*Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, tax_id, operation, value, close_date, owner_email
		FROM deals WHERE id = ? AND owner_email = ?`, id, owner)

	var d Deal
	if err := row.Scan(&d.ID, &d.Name, &d.TaxID, &d.Operation, &d.Value, &d.CloseDate, &d.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListDeals(ctx context.Context, owner string) ([]Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tax_id, operation, value, close_date, owner_email
		FROM deals WHERE owner_email = ? ORDER BY close_date, name`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		var d Deal
		if err := rows.Scan(&d.ID, &d.Name, &d.TaxID, &d.Operation, &d.Value, &d.CloseDate, &d.OwnerEmail); err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (s *Store) DeleteDeal(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM deals WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// AGENDA EVENTS
// =============================================================================

func (s *Store) SaveAgendaEvent(ctx context.Context, e AgendaEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO agenda_events
			(id, title, event_date, event_time, notes, owner_email)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.EventDate, e.EventTime, e.Notes, e.OwnerEmail)
	return err
}

func (s *Store) GetAgendaEvent(ctx context.Context, id, owner string) (*AgendaEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, event_date, event_time, notes, owner_email
		FROM agenda_events WHERE id = ? AND owner_email = ?`, id, owner)

	var e AgendaEvent
	if err := row.Scan(&e.ID, &e.Title, &e.EventDate, &e.EventTime, &e.Notes, &e.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListAgendaEvents(ctx context.Context, owner string) ([]AgendaEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, event_date, event_time, notes, owner_email
		FROM agenda_events WHERE owner_email = ? ORDER BY event_date, event_time`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []AgendaEvent
	for rows.Next() {
		var e AgendaEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.EventDate, &e.EventTime, &e.Notes, &e.OwnerEmail); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) DeleteAgendaEvent(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM agenda_events WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}

// =============================================================================
// FEEDBACK
// =============================================================================

func (s *Store) SaveFeedbackEntry(ctx context.Context, f FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO feedback_entries
			(id, member_id, score, notes, owner_email)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.MemberID, f.Score, f.Notes, f.OwnerEmail)
	return err
}

func (s *Store) GetFeedbackEntry(ctx context.Context, id, owner string) (*FeedbackEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, member_id, score, notes, owner_email
		FROM feedback_entries WHERE id = ? AND owner_email = ?`, id, owner)

	var f FeedbackEntry
	if err := row.Scan(&f.ID, &f.MemberID, &f.Score, &f.Notes, &f.OwnerEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (s *Store) ListFeedbackEntries(ctx context.Context, owner string) ([]FeedbackEntry, error) {
	return s.queryFeedback(ctx, `
		SELECT id, member_id, score, notes, owner_email
		FROM feedback_entries WHERE owner_email = ? ORDER BY id`, owner)
}

// ListFeedbackByMember narrows the listing to one team member.
func (s *Store) ListFeedbackByMember(ctx context.Context, owner, memberID string) ([]FeedbackEntry, error) {
	return s.queryFeedback(ctx, `
		SELECT id, member_id, score, notes, owner_email
		FROM feedback_entries WHERE owner_email = ? AND member_id = ? ORDER BY id`, owner, memberID)
}

func (s *Store) queryFeedback(ctx context.Context, query string, args ...any) ([]FeedbackEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FeedbackEntry
	for rows.Next() {
		var f FeedbackEntry
		if err := rows.Scan(&f.ID, &f.MemberID, &f.Score, &f.Notes, &f.OwnerEmail); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteFeedbackEntry(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM feedback_entries WHERE id = ? AND owner_email = ?`, id, owner)
	return err
}
