package main

import (
	"encoding/json"
	"net/http"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
	"github.com/Shadowrun-FPS/tournament-service/internal/httputil"
	"github.com/Shadowrun-FPS/tournament-service/internal/service"
	"github.com/Shadowrun-FPS/tournament-service/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newRouter(database *sqlx.DB, picker service.MapPicker) http.Handler {
	tournamentStore := store.NewTournamentStore(database)
	matchStore := store.NewMatchStore(database)
	tournaments := service.NewTournamentService(database, tournamentStore, matchStore, picker)
	matches := service.NewMatchService(database, tournamentStore, matchStore, picker)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		list, err := tournaments.GetTournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list tournaments", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	})

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Format   string `json:"format"`
			Capacity int    `json:"capacity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		id, err := tournaments.CreateTournament(r.Context(), req.Name, bracket.TournamentFormat(req.Format), req.Capacity)
		if err != nil {
			httputil.DomainError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	})

	r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		data, err := tournaments.GetTournamentData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httputil.DomainError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, tournamentResponse(data))
	})

	r.Post("/tournaments/{id}/teams", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name   string `json:"name"`
			Tag    string `json:"tag"`
			Rating int    `json:"rating"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		id, err := tournaments.RegisterTeam(r.Context(), chi.URLParam(r, "id"), service.TeamInput{
			Name:   req.Name,
			Tag:    req.Tag,
			Rating: req.Rating,
		})
		if err != nil {
			httputil.DomainError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	})

	r.Post("/tournaments/{id}/seed", func(w http.ResponseWriter, r *http.Request) {
		if err := tournaments.SeedTournament(r.Context(), chi.URLParam(r, "id")); err != nil {
			httputil.DomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		data, err := matches.GetMatchData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httputil.DomainError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, matchDetailResponse(data))
	})

	r.Post("/matches/{id}/scores", func(w http.ResponseWriter, r *http.Request) {
		matchID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid match id", err)
			return
		}

		var req struct {
			MapIndex int `json:"mapIndex"`
			Side     int `json:"side"`
			Score1   int `json:"score1"`
			Score2   int `json:"score2"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		result, err := matches.SubmitMapScore(r.Context(), matchID, req.MapIndex, req.Side, req.Score1, req.Score2)
		if err != nil {
			httputil.DomainError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, submitResponse(result))
	})

	return r
}
