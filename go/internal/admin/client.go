package admin

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// Client calls the AdminService
type Client struct {
	grantMoney    *connect.Client[GrantMoneyRequest, GrantMoneyResponse]
	setSkinPrice  *connect.Client[SetSkinPriceRequest, SetPriceResponse]
	setHousePrice *connect.Client[SetHousePriceRequest, SetPriceResponse]
	listOnline    *connect.Client[ListOnlineRequest, ListOnlineResponse]
}

// NewClient creates a client against baseURL, sending token on every call
func NewClient(httpClient connect.HTTPClient, baseURL, token string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(tokenSender(token)),
	}, opts...)

	return &Client{
		grantMoney:    connect.NewClient[GrantMoneyRequest, GrantMoneyResponse](httpClient, baseURL+GrantMoneyProcedure, opts...),
		setSkinPrice:  connect.NewClient[SetSkinPriceRequest, SetPriceResponse](httpClient, baseURL+SetSkinPriceProcedure, opts...),
		setHousePrice: connect.NewClient[SetHousePriceRequest, SetPriceResponse](httpClient, baseURL+SetHousePriceProcedure, opts...),
		listOnline:    connect.NewClient[ListOnlineRequest, ListOnlineResponse](httpClient, baseURL+ListOnlineProcedure, opts...),
	}
}

func tokenSender(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(TokenHeader, token)
			return next(ctx, req)
		}
	}
}

func (c *Client) GrantMoney(ctx context.Context, accountID uuid.UUID, amount int64) (int64, error) {
	resp, err := c.grantMoney.CallUnary(ctx, connect.NewRequest(&GrantMoneyRequest{
		AccountID: accountID.String(),
		Amount:    amount,
	}))
	if err != nil {
		return 0, err
	}
	return resp.Msg.NewBalance, nil
}

func (c *Client) SetSkinPrice(ctx context.Context, skinID string, price int64) error {
	_, err := c.setSkinPrice.CallUnary(ctx, connect.NewRequest(&SetSkinPriceRequest{SkinID: skinID, Price: price}))
	return err
}

func (c *Client) SetHousePrice(ctx context.Context, houseID string, price int64) error {
	_, err := c.setHousePrice.CallUnary(ctx, connect.NewRequest(&SetHousePriceRequest{HouseID: houseID, Price: price}))
	return err
}

func (c *Client) ListOnline(ctx context.Context) (*ListOnlineResponse, error) {
	resp, err := c.listOnline.CallUnary(ctx, connect.NewRequest(&ListOnlineRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
