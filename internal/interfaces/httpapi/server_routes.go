package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/movies", handler.ListMovies)
	mux.HandleFunc("GET /api/auctions/latest/leaderboard", handler.GetLatestLeaderboard)
	mux.HandleFunc("GET /api/auctions/{auctionID}/leaderboard", handler.GetAuctionLeaderboard)
	mux.HandleFunc("GET /api/years/{year}/leaderboard", handler.GetYearLeaderboard)
}

func registerCronRoutes(mux *http.ServeMux, handler *Handler, cronSecret string) {
	mux.Handle("POST /api/cron/update-movies", RequireCronSecret(cronSecret, http.HandlerFunc(handler.UpdateAllMovies)))
	mux.Handle("POST /api/cron/update-movie", RequireCronSecret(cronSecret, http.HandlerFunc(handler.UpdateMovieByTitle)))
}
