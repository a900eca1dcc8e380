package handlers

import (
	"net/http"
	"time"

	"github.com/padelclub/padel-league/models"
	"github.com/padelclub/padel-league/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(leagueService services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

func (h *LeagueHandler) RecordMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ShiftID    *int      `json:"shift_id"`
		Pair1AID   int       `json:"pair1_a_id"`
		Pair1BID   int       `json:"pair1_b_id"`
		Pair2AID   int       `json:"pair2_a_id"`
		Pair2BID   int       `json:"pair2_b_id"`
		WinnerPair int       `json:"winner_pair"`
		PlayedAt   time.Time `json:"played_at"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match := &models.LeagueMatch{
		ShiftID:    input.ShiftID,
		Pair1AID:   input.Pair1AID,
		Pair1BID:   input.Pair1BID,
		Pair2AID:   input.Pair2AID,
		Pair2BID:   input.Pair2BID,
		WinnerPair: input.WinnerPair,
		PlayedAt:   input.PlayedAt,
	}
	if err := h.leagueService.RecordMatch(r.Context(), match); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.leagueService.RecentMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) SeasonRankingHandler(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.leagueService.SeasonRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
