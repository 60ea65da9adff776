package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}/live-form", handler.SetLiveForm)
	mux.HandleFunc("POST /v1/ratings", handler.AddRating)
	mux.HandleFunc("POST /v1/affinities/refresh", handler.RefreshAffinities)

	mux.HandleFunc("PUT /v1/players/{playerID}/cards/{cardID}", handler.UpdateCard)
	mux.HandleFunc("PUT /v1/players/{playerID}/cards/{cardID}/stats", handler.UpdateCardStats)
	mux.HandleFunc("DELETE /v1/players/{playerID}/cards/{cardID}/positions/{position}/ratings/last", handler.RemoveLastRating)
	mux.HandleFunc("PUT /v1/players/{playerID}/cards/{cardID}/positions/{position}/build", handler.SaveBuild)
	mux.HandleFunc("GET /v1/players/{playerID}/cards/{cardID}/positions/{position}/analysis", handler.AnalyzeCard)
	mux.HandleFunc("GET /v1/players/{playerID}/cards/{cardID}/positions/{position}/suggestion", handler.SuggestBuild)
}

func registerIdealBuildRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/ideal-builds", handler.ListIdealBuilds)
	mux.HandleFunc("PUT /v1/ideal-builds", handler.UpsertIdealBuild)
	mux.HandleFunc("DELETE /v1/ideal-builds/{buildID}", handler.DeleteIdealBuild)
}

func registerFormationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("POST /v1/formations", handler.CreateFormation)
	mux.HandleFunc("GET /v1/formations/{formationID}", handler.GetFormation)
	mux.HandleFunc("PUT /v1/formations/{formationID}", handler.UpdateFormation)
	mux.HandleFunc("DELETE /v1/formations/{formationID}", handler.DeleteFormation)
	mux.HandleFunc("POST /v1/formations/{formationID}/results", handler.RecordFormationResult)
	mux.HandleFunc("GET /v1/formations/{formationID}/summary", handler.GetFormationSummary)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/lineups/generate", handler.GenerateLineup)
}

func registerBackupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/backup", handler.ExportBackup)
	mux.HandleFunc("POST /v1/backup", handler.ImportBackup)
}
