package worldclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/internal/models"
)

// StateUpdate is the body of POST /player-state. Nil fields are omitted.
type StateUpdate struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Skin *string  `json:"skin,omitempty"`
	Chat *string  `json:"chat,omitempty"`
}

// StateResponse is the server's echo of a state post
type StateResponse struct {
	Player   models.PlayerState `json:"player"`
	Bubble   string             `json:"bubble,omitempty"`
	Teleport *models.Position   `json:"teleport,omitempty"`
}

// MapResponse is the tile grid served at GET /map
type MapResponse struct {
	TileSize int     `json:"tile_size"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	Tiles    [][]int `json:"tiles"`
}

// Client talks to the overworld REST API
type Client struct {
	*clients.BaseClient
}

func NewClient(baseURL string) *Client {
	return &Client{BaseClient: clients.NewBaseClient(baseURL)}
}

// SetToken authenticates every following call with a Google ID token
func (c *Client) SetToken(idToken string) {
	c.SetHeader("Authorization", "Bearer "+idToken)
}

// Login exchanges an ID token for the account and keeps the token for later calls
func (c *Client) Login(ctx context.Context, idToken string) (*models.Account, error) {
	var resp struct {
		Account models.Account `json:"account"`
	}
	if err := c.postJSON(ctx, "/auth/google", map[string]string{"token": idToken}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(idToken)
	return &resp.Account, nil
}

func (c *Client) PostState(ctx context.Context, upd StateUpdate) (*StateResponse, error) {
	var resp StateResponse
	if err := c.postJSON(ctx, "/player-state", upd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListPlayers(ctx context.Context) ([]models.PlayerState, error) {
	var players []models.PlayerState
	if err := c.getJSON(ctx, "/players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (c *Client) Map(ctx context.Context) (*MapResponse, error) {
	var m MapResponse
	if err := c.getJSON(ctx, "/map", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) BuySkin(ctx context.Context, skinID string) (*models.PurchaseResult, error) {
	var result models.PurchaseResult
	if err := c.postJSON(ctx, "/buy-skin", map[string]string{"skinId": skinID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}
	body, err := c.MakeRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
