package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := User{Email: "chef@carioca.com", Name: "Chef", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.SaveUser(ctx, u))

	got, err := s.GetUser(ctx, "chef@carioca.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chef", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)

	missing, err := s.GetUser(ctx, "nobody@carioca.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemberCRUDAndOwnerScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMember(ctx, Member{ID: "m1", Name: "Ana", Role: "gerente", BirthDate: "1990-03-08", OwnerEmail: "a@x.com"}))
	require.NoError(t, s.SaveMember(ctx, Member{ID: "m2", Name: "Bia", OwnerEmail: "b@x.com"}))

	// List sees only the owner's rows
	mine, err := s.ListMembers(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ana", mine[0].Name)

	// Get across owners comes back nil
	stolen, err := s.GetMember(ctx, "m2", "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stolen)

	// Delete across owners is a no-op
	require.NoError(t, s.DeleteMember(ctx, "m2", "a@x.com"))
	still, err := s.GetMember(ctx, "m2", "b@x.com")
	require.NoError(t, err)
	assert.NotNil(t, still)

	// Save with an existing id replaces
	require.NoError(t, s.SaveMember(ctx, Member{ID: "m1", Name: "Ana Paula", OwnerEmail: "a@x.com"}))
	got, err := s.GetMember(ctx, "m1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", got.Name)
}

func TestTaskAndActionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTask(ctx, Task{ID: "t1", Title: "fechar mês", DueDate: "2025-03-10", OwnerEmail: "a@x.com"}))
	require.NoError(t, s.SaveAction(ctx, Action{ID: "a1", Title: "campanha", Assignee: "Ana", DueDate: "2025-03-12", OwnerEmail: "a@x.com"}))

	tasks, err := s.ListTasks(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "fechar mês", tasks[0].Title)

	actions, err := s.ListActions(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Ana", actions[0].Assignee)

	require.NoError(t, s.DeleteTask(ctx, "t1", "a@x.com"))
	tasks, err = s.ListTasks(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestConsortiumPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := ConsortiumPlan{ID: "c1", Proposal: "P-100", SaleDate: "2025-02-20", Category: "imovel", Value: "1000", Paid: 2, OwnerEmail: "a@x.com"}
	require.NoError(t, s.SaveConsortiumPlan(ctx, p))

	got, err := s.GetConsortiumPlan(ctx, "c1", "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Paid)
	assert.Equal(t, "1000", got.Value)

	got.Paid = 3
	require.NoError(t, s.SaveConsortiumPlan(ctx, *got))
	again, err := s.GetConsortiumPlan(ctx, "c1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Paid)
}

func TestTDVPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := TDVPlan{ID: "tdv1", Proposal: "T-1", RemainingMonths: 3, NextDue: "20/01", Points: 50, SaleDate: "2025-01-10", OwnerEmail: "a@x.com"}
	require.NoError(t, s.SaveTDVPlan(ctx, p))

	got, err := s.GetTDVPlan(ctx, "tdv1", "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "20/01", got.NextDue)
	assert.Equal(t, 3, got.RemainingMonths)
}

func TestDealAndAgendaRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveDeal(ctx, Deal{ID: "d1", Name: "Empresa X", TaxID: "00.000.000/0001-00", Operation: "SBPE", Value: "250000", CloseDate: "2025-03-20", OwnerEmail: "a@x.com"}))
	require.NoError(t, s.SaveAgendaEvent(ctx, AgendaEvent{ID: "e1", Title: "reunião", EventDate: "2025-03-11", EventTime: "14:00", OwnerEmail: "a@x.com"}))

	deals, err := s.ListDeals(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "SBPE", deals[0].Operation)

	events, err := s.ListAgendaEvents(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "14:00", events[0].EventTime)
}

func TestFeedbackQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveFeedbackEntry(ctx, FeedbackEntry{ID: "f1", MemberID: "m1", Score: "8", OwnerEmail: "a@x.com"}))
	require.NoError(t, s.SaveFeedbackEntry(ctx, FeedbackEntry{ID: "f2", MemberID: "m2", Score: "6", OwnerEmail: "a@x.com"}))
	require.NoError(t, s.SaveFeedbackEntry(ctx, FeedbackEntry{ID: "f3", MemberID: "m1", Score: "9", OwnerEmail: "b@x.com"}))

	all, err := s.ListFeedbackEntries(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forM1, err := s.ListFeedbackByMember(ctx, "a@x.com", "m1")
	require.NoError(t, err)
	require.Len(t, forM1, 1)
	assert.Equal(t, "f1", forM1[0].ID)
}
