// Package service exposes the settlement calculator and session storage over Connect RPC.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSettlementService creates a new SettlementService with the given storage
// backend. m may be nil.
func NewSettlementService(store storage.Store, m *metrics.Metrics) *SettlementService {
	return &SettlementService{store: store, metrics: m}
}

// CalculateSettlement computes the payment plan for a ledger.
func (s *SettlementService) CalculateSettlement(ctx context.Context, req *connect.Request[CalculateSettlementRequest]) (*connect.Response[CalculateSettlementResponse], error) {
	slog.Info("CalculateSettlement request received", "expenses_count", len(req.Msg.Expenses))

	resp := s.settle(req.Msg.Expenses, req.Msg.NumSlots)

	slog.Info("CalculateSettlement successful",
		"status", resp.Status,
		"transactions_count", len(resp.Transactions),
		"skipped_count", len(resp.SkippedRows),
	)
	return connect.NewResponse(&resp), nil
}

// GetBalances returns every person's net balance and the rows that were skipped.
func (s *SettlementService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "expenses_count", len(req.Msg.Expenses))

	balances, issues := calculator.AccumulateBalancesWidth(req.Msg.Expenses, req.Msg.NumSlots)
	s.metrics.ObserveSkippedRows(len(issues))

	resp := &GetBalancesResponse{
		Balances:    make([]MemberBalance, 0, len(balances)),
		SkippedRows: toSkippedRows(issues),
	}
	for _, name := range balances.Names() {
		resp.Balances = append(resp.Balances, MemberBalance{Name: name, Balance: balances[name]})
	}

	slog.Info("GetBalances successful",
		"members_count", len(resp.Balances),
		"skipped_count", len(resp.SkippedRows),
	)
	return connect.NewResponse(resp), nil
}

// GetSummary returns the paid/owed table for the requested people.
func (s *SettlementService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	slog.Info("GetSummary request received",
		"expenses_count", len(req.Msg.Expenses),
		"people_count", len(req.Msg.People),
	)

	people := req.Msg.People
	if len(people) == 0 {
		people = resolvePeople(req.Msg.PayerNames, req.Msg.ParticipantNames, req.Msg.Expenses)
	}
	resp := summarize(req.Msg.Expenses, people, req.Msg.NumSlots)

	slog.Info("GetSummary successful", "people_count", len(resp.People))
	return connect.NewResponse(&resp), nil
}

// CreateSession saves a new ledger session.
func (s *SettlementService) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	session := req.Msg.Session
	slog.Info("CreateSession request received", "expenses_count", len(session.Expenses))

	if err := validateSession(&session); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	session.ID = ""

	if err := s.store.CreateSession(ctx, &session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session created", "session_id", session.ID)
	return connect.NewResponse(&CreateSessionResponse{Session: &session}), nil
}

// GetSession loads a saved session.
func (s *SettlementService) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	sessionID := req.Msg.SessionID
	slog.Info("GetSession request received", "session_id", sessionID)

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetSession successful", "session_id", session.ID, "expenses_count", len(session.Expenses))
	return connect.NewResponse(&GetSessionResponse{Session: session}), nil
}

// UpdateSession replaces a saved session.
func (s *SettlementService) UpdateSession(ctx context.Context, req *connect.Request[UpdateSessionRequest]) (*connect.Response[UpdateSessionResponse], error) {
	session := req.Msg.Session
	slog.Info("UpdateSession request received",
		"session_id", session.ID,
		"expenses_count", len(session.Expenses),
	)

	if session.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session id required"))
	}
	if err := validateSession(&session); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpdateSession(ctx, &session); err != nil {
		slog.Error("UpdateSession failed", "session_id", session.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Session updated", "session_id", session.ID)
	return connect.NewResponse(&UpdateSessionResponse{Session: &session}), nil
}

// ListSessions returns saved session headers.
func (s *SettlementService) ListSessions(ctx context.Context, req *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error) {
	slog.Info("ListSessions request received")

	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListSessions successful", "count", len(sessions))
	return connect.NewResponse(&ListSessionsResponse{Sessions: sessions}), nil
}

// SettleSession computes the settlement and summary of a saved session.
// The summary covers the session roster, or everyone in the ledger when no
// roster was configured. A positive NumSlots caps the named slots read per row.
func (s *SettlementService) SettleSession(ctx context.Context, req *connect.Request[SettleSessionRequest]) (*connect.Response[SettleSessionResponse], error) {
	sessionID := req.Msg.SessionID
	slog.Info("SettleSession request received", "session_id", sessionID)

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	people := resolvePeople(session.PayerNames, session.ParticipantNames, session.Expenses)
	resp := &SettleSessionResponse{
		Settlement: s.settle(session.Expenses, session.NumSlots),
		Summary:    summarize(session.Expenses, people, session.NumSlots),
	}

	slog.Info("SettleSession successful",
		"session_id", sessionID,
		"status", resp.Settlement.Status,
		"transactions_count", len(resp.Settlement.Transactions),
	)
	return connect.NewResponse(resp), nil
}

func (s *SettlementService) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id required"))
	}
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		slog.Error("Failed to load session", "session_id", sessionID, "error", err)
		return nil, storeError(err)
	}
	return session, nil
}

func (s *SettlementService) settle(expenses []models.Expense, numSlots int) CalculateSettlementResponse {
	settlement := calculator.CalculateSettlementWidth(expenses, numSlots)
	s.metrics.ObserveSettlement(settlement.Status.String(), len(settlement.Transactions))
	s.metrics.ObserveSkippedRows(len(settlement.Skipped))

	resp := CalculateSettlementResponse{
		Status:      settlement.Status.String(),
		Message:     settlement.Message(),
		SkippedRows: toSkippedRows(settlement.Skipped),
	}
	for _, t := range settlement.Transactions {
		resp.Transactions = append(resp.Transactions, Transaction{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount,
			Text:   t.String(),
		})
	}
	return resp
}

func summarize(expenses []models.Expense, people []string, numSlots int) GetSummaryResponse {
	summary := calculator.GenerateSummaryWidth(expenses, people, numSlots)
	resp := GetSummaryResponse{
		People: make([]PersonSummary, len(summary.People)),
		Check:  summary.Check(),
	}
	for i, p := range summary.People {
		resp.People[i] = PersonSummary{
			Name:       p.Name,
			TotalPaid:  p.TotalPaid,
			TotalOwed:  p.TotalOwed,
			Difference: p.Difference,
		}
	}
	return resp
}

// resolvePeople prefers the configured roster and falls back to the ledger.
func resolvePeople(payerNames, participantNames string, expenses []models.Expense) []string {
	if roster := ledger.Roster(payerNames, participantNames); len(roster) > 0 {
		return roster
	}
	return ledger.People(expenses)
}

func validateSession(session *models.Session) error {
	if session.NumSlots < 0 {
		return fmt.Errorf("num_slots must not be negative")
	}
	return nil
}

func toSkippedRows(issues []calculator.RowIssue) []SkippedRow {
	if len(issues) == 0 {
		return nil
	}
	rows := make([]SkippedRow, len(issues))
	for i, issue := range issues {
		rows[i] = SkippedRow{Row: issue.Index + 1, Error: issue.Err.Error()}
	}
	return rows
}

func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
