package client

import (
	"context"
	"fmt"

	"github.com/landchain/titleledger/pkg/identity"
)

// Land mirrors the gateway's land representation.
type Land struct {
	ID           uint64 `json:"id"`
	Owner        string `json:"owner"`
	SizeSqFt     uint64 `json:"size_sqft"`
	Location     string `json:"location"`
	TitleNumber  string `json:"title_number"`
	Verified     bool   `json:"verified"`
	RegisteredAt string `json:"registered_at"`
}

// HistoryEntry is one ownership record.
type HistoryEntry struct {
	Owner          string `json:"owner"`
	Timestamp      string `json:"timestamp"`
	VerifiedAtTime bool   `json:"verified_at_time"`
}

// Event is one journaled ledger event.
type Event struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	LandID    uint64 `json:"land_id"`
	Owner     string `json:"owner"`
	PrevOwner string `json:"prev_owner,omitempty"`
	Timestamp string `json:"timestamp"`
}

// RegisterLand registers a new land parcel. Admin only.
func (c *Client) RegisterLand(ctx context.Context, landID uint64, owner identity.Identity, sizeSqFt uint64, location, titleNumber string) (Land, error) {
	req := map[string]interface{}{
		"land_id":      landID,
		"owner":        owner.Hex(),
		"size_sqft":    sizeSqFt,
		"location":     location,
		"title_number": titleNumber,
	}
	var land Land
	err := c.post(ctx, "/v1/lands", req, &land)
	return land, err
}

// VerifyLand marks a land as verified. Admin only.
func (c *Client) VerifyLand(ctx context.Context, landID uint64) (Land, error) {
	var land Land
	err := c.post(ctx, fmt.Sprintf("/v1/lands/%d/verify", landID), nil, &land)
	return land, err
}

// TransferOwnership moves a land to a new owner. Current owner only.
func (c *Client) TransferOwnership(ctx context.Context, landID uint64, newOwner identity.Identity) (Land, error) {
	var land Land
	err := c.post(ctx, fmt.Sprintf("/v1/lands/%d/transfer", landID), map[string]string{"new_owner": newOwner.Hex()}, &land)
	return land, err
}

// TransferAdmin hands the admin role to a new identity. Admin only.
func (c *Client) TransferAdmin(ctx context.Context, newAdmin identity.Identity) error {
	return c.post(ctx, "/v1/admin/transfer", map[string]string{"new_admin": newAdmin.Hex()}, nil)
}

// GetLand fetches a land's details.
func (c *Client) GetLand(ctx context.Context, landID uint64) (Land, error) {
	var land Land
	err := c.get(ctx, fmt.Sprintf("/v1/lands/%d", landID), &land)
	return land, err
}

// ListLands returns all land ids in registration order.
func (c *Client) ListLands(ctx context.Context) ([]uint64, error) {
	var out struct {
		LandIDs []uint64 `json:"land_ids"`
	}
	err := c.get(ctx, "/v1/lands", &out)
	return out.LandIDs, err
}

// LandCount returns the number of registered lands.
func (c *Client) LandCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.get(ctx, "/v1/lands/count", &out)
	return out.Count, err
}

// GetHistory returns a land's ownership history, oldest first.
func (c *Client) GetHistory(ctx context.Context, landID uint64) ([]HistoryEntry, error) {
	var out struct {
		History []HistoryEntry `json:"history"`
	}
	err := c.get(ctx, fmt.Sprintf("/v1/lands/%d/history", landID), &out)
	return out.History, err
}

// OwnerLands returns the ids of lands held by owner.
func (c *Client) OwnerLands(ctx context.Context, owner identity.Identity) ([]uint64, error) {
	var out struct {
		LandIDs []uint64 `json:"land_ids"`
	}
	err := c.get(ctx, "/v1/owners/"+owner.Hex()+"/lands", &out)
	return out.LandIDs, err
}

// IsOwner reports whether addr currently owns the land.
func (c *Client) IsOwner(ctx context.Context, landID uint64, addr identity.Identity) (bool, error) {
	var out struct {
		IsOwner bool `json:"is_owner"`
	}
	err := c.get(ctx, fmt.Sprintf("/v1/lands/%d/owner/%s", landID, addr.Hex()), &out)
	return out.IsOwner, err
}

// ListEvents returns journaled events, optionally filtered by land.
func (c *Client) ListEvents(ctx context.Context, landID uint64, limit int) ([]Event, error) {
	path := "/v1/events"
	sep := "?"
	if landID != 0 {
		path += fmt.Sprintf("%sland_id=%d", sep, landID)
		sep = "&"
	}
	if limit > 0 {
		path += fmt.Sprintf("%slimit=%d", sep, limit)
	}
	var out struct {
		Events []Event `json:"events"`
	}
	err := c.get(ctx, path, &out)
	return out.Events, err
}

// Health checks gateway liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// Status returns the gateway status document.
func (c *Client) Status(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.get(ctx, "/v1/status", &out)
	return out, err
}
