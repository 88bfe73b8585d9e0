package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// SettlementServiceName is the fully-qualified name of the settlement service.
const SettlementServiceName = "settleup.v1.SettlementService"

// Procedure paths served by NewSettlementServiceHandler.
const (
	CalculateSettlementProcedure = "/" + SettlementServiceName + "/CalculateSettlement"
	GetBalancesProcedure         = "/" + SettlementServiceName + "/GetBalances"
	GetSummaryProcedure          = "/" + SettlementServiceName + "/GetSummary"
	CreateSessionProcedure       = "/" + SettlementServiceName + "/CreateSession"
	GetSessionProcedure          = "/" + SettlementServiceName + "/GetSession"
	UpdateSessionProcedure       = "/" + SettlementServiceName + "/UpdateSession"
	ListSessionsProcedure        = "/" + SettlementServiceName + "/ListSessions"
	SettleSessionProcedure       = "/" + SettlementServiceName + "/SettleSession"
)

// NewSettlementServiceHandler builds an HTTP handler for every procedure of
// svc. It returns the path prefix to mount the handler on.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CalculateSettlementProcedure, connect.NewUnaryHandler(CalculateSettlementProcedure, svc.CalculateSettlement, opts...))
	mux.Handle(GetBalancesProcedure, connect.NewUnaryHandler(GetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(CreateSessionProcedure, connect.NewUnaryHandler(CreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(UpdateSessionProcedure, connect.NewUnaryHandler(UpdateSessionProcedure, svc.UpdateSession, opts...))
	mux.Handle(ListSessionsProcedure, connect.NewUnaryHandler(ListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(SettleSessionProcedure, connect.NewUnaryHandler(SettleSessionProcedure, svc.SettleSession, opts...))

	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient calls a remote settlement service.
type SettlementServiceClient struct {
	calculateSettlement *connect.Client[CalculateSettlementRequest, CalculateSettlementResponse]
	getBalances         *connect.Client[GetBalancesRequest, GetBalancesResponse]
	getSummary          *connect.Client[GetSummaryRequest, GetSummaryResponse]
	createSession       *connect.Client[CreateSessionRequest, CreateSessionResponse]
	getSession          *connect.Client[GetSessionRequest, GetSessionResponse]
	updateSession       *connect.Client[UpdateSessionRequest, UpdateSessionResponse]
	listSessions        *connect.Client[ListSessionsRequest, ListSessionsResponse]
	settleSession       *connect.Client[SettleSessionRequest, SettleSessionResponse]
}

// NewSettlementServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SettlementServiceClient{
		calculateSettlement: connect.NewClient[CalculateSettlementRequest, CalculateSettlementResponse](httpClient, baseURL+CalculateSettlementProcedure, opts...),
		getBalances:         connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+GetBalancesProcedure, opts...),
		getSummary:          connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+GetSummaryProcedure, opts...),
		createSession:       connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+CreateSessionProcedure, opts...),
		getSession:          connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+GetSessionProcedure, opts...),
		updateSession:       connect.NewClient[UpdateSessionRequest, UpdateSessionResponse](httpClient, baseURL+UpdateSessionProcedure, opts...),
		listSessions:        connect.NewClient[ListSessionsRequest, ListSessionsResponse](httpClient, baseURL+ListSessionsProcedure, opts...),
		settleSession:       connect.NewClient[SettleSessionRequest, SettleSessionResponse](httpClient, baseURL+SettleSessionProcedure, opts...),
	}
}

func (c *SettlementServiceClient) CalculateSettlement(ctx context.Context, req *connect.Request[CalculateSettlementRequest]) (*connect.Response[CalculateSettlementResponse], error) {
	return c.calculateSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) UpdateSession(ctx context.Context, req *connect.Request[UpdateSessionRequest]) (*connect.Response[UpdateSessionResponse], error) {
	return c.updateSession.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ListSessions(ctx context.Context, req *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) SettleSession(ctx context.Context, req *connect.Request[SettleSessionRequest]) (*connect.Response[SettleSessionResponse], error) {
	return c.settleSession.CallUnary(ctx, req)
}
