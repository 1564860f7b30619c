package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
)

type registerLandRequest struct {
	LandID      uint64 `json:"land_id"`
	Owner       string `json:"owner"`
	SizeSqFt    uint64 `json:"size_sqft"`
	Location    string `json:"location"`
	TitleNumber string `json:"title_number"`
}

type transferRequest struct {
	NewOwner string `json:"new_owner"`
}

type transferAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

type landResponse struct {
	ID           uint64 `json:"id"`
	Owner        string `json:"owner"`
	SizeSqFt     uint64 `json:"size_sqft"`
	Location     string `json:"location"`
	TitleNumber  string `json:"title_number"`
	Verified     bool   `json:"verified"`
	RegisteredAt string `json:"registered_at"`
}

type historyEntryResponse struct {
	Owner          string `json:"owner"`
	Timestamp      string `json:"timestamp"`
	VerifiedAtTime bool   `json:"verified_at_time"`
}

func landToResponse(land registry.Land) landResponse {
	return landResponse{
		ID:           uint64(land.ID),
		Owner:        land.Owner.Hex(),
		SizeSqFt:     land.SizeSqFt,
		Location:     land.Location,
		TitleNumber:  land.TitleNumber,
		Verified:     land.Verified,
		RegisteredAt: land.RegisteredAt.Format(timeFormat),
	}
}

func (g *Gateway) decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewInvalidArgumentError("body", "invalid request body", err.Error())
	}
	return nil
}

func (g *Gateway) caller(r *http.Request) (identity.Identity, error) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		return identity.Zero, errors.NewUnauthenticatedError("no caller identity on request")
	}
	return caller, nil
}

func landIDParam(r *http.Request) (registry.LandID, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidArgumentError("id", "land id must be a positive integer", raw)
	}
	return registry.LandID(id), nil
}

func (g *Gateway) handleRegisterLand(w http.ResponseWriter, r *http.Request) {
	caller, err := g.caller(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	var req registerLandRequest
	if err := g.decodeBody(r, &req); err != nil {
		g.writeError(w, err)
		return
	}
	owner, err := identity.Parse(req.Owner)
	if err != nil {
		g.writeError(w, errors.NewInvalidArgumentError("owner", "invalid owner address", req.Owner))
		return
	}

	if err := g.ledger.RegisterLand(caller, registry.LandID(req.LandID), owner, req.SizeSqFt, req.Location, req.TitleNumber); err != nil {
		g.writeError(w, err)
		return
	}

	land, err := g.ledger.GetLandDetails(registry.LandID(req.LandID))
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusCreated, landToResponse(land))
}

func (g *Gateway) handleVerifyLand(w http.ResponseWriter, r *http.Request) {
	caller, err := g.caller(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	id, err := landIDParam(r)
	if err != nil {
		g.writeError(w, err)
		return
	}

	if err := g.ledger.VerifyLand(caller, id); err != nil {
		g.writeError(w, err)
		return
	}

	land, err := g.ledger.GetLandDetails(id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, landToResponse(land))
}

func (g *Gateway) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, err := g.caller(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	id, err := landIDParam(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	var req transferRequest
	if err := g.decodeBody(r, &req); err != nil {
		g.writeError(w, err)
		return
	}
	newOwner, err := identity.Parse(req.NewOwner)
	if err != nil {
		g.writeError(w, errors.NewInvalidArgumentError("new_owner", "invalid new owner address", req.NewOwner))
		return
	}

	if err := g.ledger.TransferOwnership(caller, id, newOwner); err != nil {
		g.writeError(w, err)
		return
	}

	land, err := g.ledger.GetLandDetails(id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, landToResponse(land))
}

func (g *Gateway) handleTransferAdmin(w http.ResponseWriter, r *http.Request) {
	caller, err := g.caller(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	var req transferAdminRequest
	if err := g.decodeBody(r, &req); err != nil {
		g.writeError(w, err)
		return
	}
	newAdmin, err := identity.Parse(req.NewAdmin)
	if err != nil {
		g.writeError(w, errors.NewInvalidArgumentError("new_admin", "invalid new admin address", req.NewAdmin))
		return
	}

	if err := g.ledger.TransferAdmin(caller, newAdmin); err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, map[string]string{"admin": newAdmin.Hex()})
}

func (g *Gateway) handleGetLand(w http.ResponseWriter, r *http.Request) {
	id, err := landIDParam(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	land, err := g.ledger.GetLandDetails(id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, landToResponse(land))
}

func (g *Gateway) handleListLands(w http.ResponseWriter, r *http.Request) {
	ids := g.ledger.GetAllLandIDs()
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"land_ids": out,
		"count":    len(out),
	})
}

func (g *Gateway) handleLandCount(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]int{"count": g.ledger.GetLandCount()})
}

func (g *Gateway) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := landIDParam(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	records, err := g.ledger.GetOwnershipHistory(id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	out := make([]historyEntryResponse, len(records))
	for i, rec := range records {
		out[i] = historyEntryResponse{
			Owner:          rec.Owner.Hex(),
			Timestamp:      rec.Timestamp.Format(timeFormat),
			VerifiedAtTime: rec.VerifiedAtTime,
		}
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"land_id": uint64(id),
		"history": out,
	})
}

func (g *Gateway) handleOwnerLands(w http.ResponseWriter, r *http.Request) {
	owner, err := identity.Parse(chi.URLParam(r, "address"))
	if err != nil {
		g.writeError(w, errors.NewInvalidArgumentError("address", "invalid owner address", chi.URLParam(r, "address")))
		return
	}
	ids := g.ledger.GetOwnerLands(owner)
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"owner":    owner.Hex(),
		"land_ids": out,
		"count":    len(out),
	})
}

func (g *Gateway) handleIsOwner(w http.ResponseWriter, r *http.Request) {
	id, err := landIDParam(r)
	if err != nil {
		g.writeError(w, err)
		return
	}
	addr, err := identity.Parse(chi.URLParam(r, "address"))
	if err != nil {
		g.writeError(w, errors.NewInvalidArgumentError("address", "invalid address", chi.URLParam(r, "address")))
		return
	}
	isOwner, err := g.ledger.IsOwner(id, addr)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"land_id":  uint64(id),
		"address":  addr.Hex(),
		"is_owner": isOwner,
	})
}

func (g *Gateway) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if g.store == nil {
		g.writeError(w, errors.NewNotFoundError("journal", "event journaling is disabled"))
		return
	}

	var landID uint64
	if raw := r.URL.Query().Get("land_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			g.writeError(w, errors.NewInvalidArgumentError("land_id", "land_id must be a positive integer", raw))
			return
		}
		landID = parsed
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			g.writeError(w, errors.NewInvalidArgumentError("limit", "limit must be a non-negative integer", raw))
			return
		}
		limit = parsed
	}

	evts, err := g.store.ListEvents(landID, limit)
	if err != nil {
		g.logger.ComponentError(logging.ComponentGateway, "journal query failed", zap.Error(err))
		g.writeError(w, err)
		return
	}
	out := make([]eventJSON, len(evts))
	for i, evt := range evts {
		out[i] = eventPayload(evt)
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": out,
		"count":  len(out),
	})
}
