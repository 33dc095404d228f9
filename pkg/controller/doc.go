// Package controller holds the HTTP middlewares shared by the API server:
// access logging with request IDs (WithLogger), origin checks (CORS) and the
// opt-in profiling mux (PprofMux).
package controller
