package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelclub/padel-league/masters"
	"github.com/padelclub/padel-league/services"
	"github.com/padelclub/padel-league/statesync"
)

type MastersHandler struct {
	mastersService services.MastersService
}

func NewMastersHandler(mastersService services.MastersService) *MastersHandler {
	return &MastersHandler{mastersService: mastersService}
}

func snapshotResponse(snap statesync.Snapshot) jsonResponse {
	return jsonResponse{
		"state":    snap.State,
		"stage":    masters.StageOf(snap.State),
		"revision": snap.Revision,
	}
}

func (h *MastersHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.mastersService.State(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) AddTeamHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Player1 string `json:"player1"`
		Player2 string `json:"player2"`
		Group   string `json:"group"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snap, err := h.mastersService.AddTeam(r.Context(), input.Player1, input.Player2, masters.Group(input.Group))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) RemoveTeamHandler(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	snap, err := h.mastersService.RemoveTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) AutoFillHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.mastersService.AutoFill(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) StartTournamentHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.mastersService.StartTournament)
}

func (h *MastersHandler) StartCrossRoundHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.mastersService.StartCrossRound)
}

func (h *MastersHandler) StartFinalsHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.mastersService.StartFinals)
}

func (h *MastersHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	start func(ctx context.Context, force bool) (statesync.Snapshot, error),
) {
	snap, err := start(r.Context(), forceParam(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	var input struct {
		WinnerID string `json:"winner_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snap, err := h.mastersService.RecordResult(r.Context(), matchID, input.WinnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.mastersService.Reset(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, snapshotResponse(snap), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MastersHandler) PodiumHandler(w http.ResponseWriter, r *http.Request) {
	podium, ok, err := h.mastersService.Podium(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !ok {
		errorResponse(w, r, http.StatusConflict, "podium is not decided yet")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"podium": podium}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
