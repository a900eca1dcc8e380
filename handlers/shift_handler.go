package handlers

import (
	"net/http"
	"time"

	"github.com/padelclub/padel-league/services"
)

type ShiftHandler struct {
	shiftService services.ShiftService
}

func NewShiftHandler(shiftService services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

func (h *ShiftHandler) ListShiftsHandler(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"shifts": shifts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShiftHandler) CreateShiftHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Date   time.Time `json:"date"`
		Courts int       `json:"courts"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	shift, err := h.shiftService.Create(r.Context(), input.Date, input.Courts)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"shift": shift}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShiftHandler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	shiftID, err := getIDFromURL(r, "shiftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID int `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	signup, err := h.shiftService.SignUp(r.Context(), shiftID, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"signup": signup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShiftHandler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	shiftID, err := getIDFromURL(r, "shiftID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.shiftService.Withdraw(r.Context(), shiftID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
