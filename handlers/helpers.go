package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/padelclub/padel-league/masters"
	"github.com/padelclub/padel-league/repositories"
	"github.com/padelclub/padel-league/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}

func forceParam(r *http.Request) bool {
	return r.URL.Query().Get("force") == "true"
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error", slog.String("path", r.URL.Path), slog.Any("error", err))
	errorResponse(w, r, http.StatusInternalServerError,
		"the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// mapServiceErrorToHTTP translates service and engine sentinels into HTTP
// statuses. Prerequisite warnings become 409 with the warning list so the
// client can confirm and retry with ?force=true.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var prereq *masters.PrerequisiteError
	switch {
	case errors.As(err, &prereq):
		if writeErr := writeJSON(w, http.StatusConflict, jsonResponse{
			"warning":        "prerequisites not met; repeat with ?force=true to proceed anyway",
			"details":        prereq.Warnings,
			"force_required": true,
		}, nil); writeErr != nil {
			serverErrorResponse(w, r, writeErr)
		}

	case errors.Is(err, repositories.ErrPlayerNotFound),
		errors.Is(err, repositories.ErrShiftNotFound),
		errors.Is(err, repositories.ErrSignupNotFound),
		errors.Is(err, masters.ErrTeamNotFound),
		errors.Is(err, masters.ErrMatchNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, repositories.ErrPlayerNameConflict),
		errors.Is(err, repositories.ErrSignupConflict),
		errors.Is(err, repositories.ErrStaleRevision),
		errors.Is(err, masters.ErrAlreadyStarted),
		errors.Is(err, masters.ErrWrongStage):
		errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrPlayerNameRequired),
		errors.Is(err, services.ErrShiftDateRequired),
		errors.Is(err, services.ErrShiftCourtsInvalid),
		errors.Is(err, services.ErrShiftFull),
		errors.Is(err, services.ErrMatchPlayersNotDistinct),
		errors.Is(err, services.ErrMatchWinnerPairInvalid),
		errors.Is(err, repositories.ErrSignupPlayerUnknown),
		errors.Is(err, repositories.ErrLeagueMatchPlayerUnknown),
		errors.Is(err, masters.ErrGroupFull),
		errors.Is(err, masters.ErrSamePlayer),
		errors.Is(err, masters.ErrInsufficientPool),
		errors.Is(err, masters.ErrUnknownGroup),
		errors.Is(err, masters.ErrInvalidWinner):
		errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
