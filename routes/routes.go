package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/padelclub/padel-league/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	shiftHandler *handlers.ShiftHandler,
	leagueHandler *handlers.LeagueHandler,
	mastersHandler *handlers.MastersHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayersHandler)
		r.Post("/", playerHandler.RegisterPlayerHandler)
		r.Delete("/{playerID}", playerHandler.DeletePlayerHandler)
	})

	router.Route("/shifts", func(r chi.Router) {
		r.Get("/", shiftHandler.ListShiftsHandler)
		r.Post("/", shiftHandler.CreateShiftHandler)
		r.Post("/{shiftID}/signups", shiftHandler.SignUpHandler)
		r.Delete("/{shiftID}/signups/{playerID}", shiftHandler.WithdrawHandler)
	})

	router.Route("/league", func(r chi.Router) {
		r.Get("/matches", leagueHandler.ListMatchesHandler)
		r.Post("/matches", leagueHandler.RecordMatchHandler)
		r.Get("/ranking", leagueHandler.SeasonRankingHandler)
	})

	router.Route("/masters", func(r chi.Router) {
		r.Get("/", mastersHandler.GetStateHandler)
		r.Post("/teams", mastersHandler.AddTeamHandler)
		r.Delete("/teams/{teamID}", mastersHandler.RemoveTeamHandler)
		r.Post("/autofill", mastersHandler.AutoFillHandler)
		r.Post("/start", mastersHandler.StartTournamentHandler)
		r.Post("/cross-round", mastersHandler.StartCrossRoundHandler)
		r.Post("/finals", mastersHandler.StartFinalsHandler)
		r.Post("/matches/{matchID}/result", mastersHandler.RecordResultHandler)
		r.Post("/reset", mastersHandler.ResetHandler)
		r.Get("/podium", mastersHandler.PodiumHandler)
	})

	router.Get("/ws/masters", webSocketHandler.ServeMastersFeed)
}
