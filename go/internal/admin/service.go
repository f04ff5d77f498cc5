package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/shop"
	"github.com/rs/zerolog/log"
)

// AdminApp defines what the service layer needs from the admin application
type AdminApp interface {
	GrantMoney(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
	SetSkinPrice(ctx context.Context, skinID string, price int64) error
	SetHousePrice(ctx context.Context, houseID string, price int64) error
	ListOnline(ctx context.Context) []models.PlayerState
}

// Service implements the AdminService RPCs
type Service struct {
	app AdminApp
}

// NewService creates a new admin service
func NewService(app AdminApp) *Service {
	return &Service{
		app: app,
	}
}

// GrantMoney credits or debits an account
func (s *Service) GrantMoney(ctx context.Context, req *connect.Request[GrantMoneyRequest]) (*connect.Response[GrantMoneyResponse], error) {
	id, err := uuid.Parse(req.Msg.AccountID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	balance, err := s.app.GrantMoney(ctx, id, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GrantMoneyResponse{NewBalance: balance}), nil
}

// SetSkinPrice creates or reprices a skin
func (s *Service) SetSkinPrice(ctx context.Context, req *connect.Request[SetSkinPriceRequest]) (*connect.Response[SetPriceResponse], error) {
	if err := s.app.SetSkinPrice(ctx, req.Msg.SkinID, req.Msg.Price); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SetPriceResponse{}), nil
}

// SetHousePrice creates or reprices a house
func (s *Service) SetHousePrice(ctx context.Context, req *connect.Request[SetHousePriceRequest]) (*connect.Response[SetPriceResponse], error) {
	if err := s.app.SetHousePrice(ctx, req.Msg.HouseID, req.Msg.Price); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SetPriceResponse{}), nil
}

// ListOnline returns the players currently present
func (s *Service) ListOnline(ctx context.Context, req *connect.Request[ListOnlineRequest]) (*connect.Response[ListOnlineResponse], error) {
	players := s.app.ListOnline(ctx)
	return connect.NewResponse(&ListOnlineResponse{
		Count:   len(players),
		Players: players,
	}), nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, shop.ErrInvalidPrice),
		errors.Is(err, shop.ErrUnknownSkin),
		errors.Is(err, shop.ErrUnknownHouse):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, accounts.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, accounts.ErrInsufficientFunds):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		log.Error().Err(err).Msg("admin request failed")
		return connect.NewError(connect.CodeInternal, err)
	}
}

// NewTokenInterceptor rejects calls without the shared admin token
func NewTokenInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			got := req.Header().Get(TokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn().Str("procedure", req.Spec().Procedure).Msg("rejected admin call")
				return nil, connect.NewError(connect.CodeUnauthenticated, ErrBadToken)
			}
			return next(ctx, req)
		}
	}
}

// NewHandler builds the AdminService handler and the path to mount it on.
// An empty token disables every call.
func NewHandler(svc *Service, token string, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(NewTokenInterceptor(token)),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GrantMoneyProcedure, connect.NewUnaryHandler(GrantMoneyProcedure, svc.GrantMoney, opts...))
	mux.Handle(SetSkinPriceProcedure, connect.NewUnaryHandler(SetSkinPriceProcedure, svc.SetSkinPrice, opts...))
	mux.Handle(SetHousePriceProcedure, connect.NewUnaryHandler(SetHousePriceProcedure, svc.SetHousePrice, opts...))
	mux.Handle(ListOnlineProcedure, connect.NewUnaryHandler(ListOnlineProcedure, svc.ListOnline, opts...))
	return "/" + ServiceName + "/", mux
}
