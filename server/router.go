// Package server assembles the HTTP surface: the middleware pipeline, the
// resource routes and the process lifecycle of the listener.
package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/auth"
	"github.com/user/bloglist-go/blogs"
	"github.com/user/bloglist-go/config"
	_ "github.com/user/bloglist-go/docs" // registers the Swagger document
	"github.com/user/bloglist-go/store"
	"github.com/user/bloglist-go/users"
)

// NewRouter wires services and handlers on top of st and returns the root
// handler. Middleware runs in the order it is listed here.
func NewRouter(cfg *config.AppConfig, st store.Store) http.Handler {
	authService := auth.NewService(st, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	userHandlers := users.NewUserHandlers(users.NewUserService(st, authService))
	blogHandlers := blogs.NewBlogHandler(blogs.NewBlogService(st, st))

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(auth.TokenExtractor(authService))

	r.NotFound(apperror.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return apperror.NewUnknownEndpointError()
	}).ServeHTTP)
	r.MethodNotAllowed(apperror.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return apperror.NewMethodNotAllowedError()
	}).ServeHTTP)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handleHealth(st))
		r.Method(http.MethodPost, "/login", authHandlers.HandleLogin())

		r.Route("/users", func(r chi.Router) {
			r.Method(http.MethodGet, "/", userHandlers.HandleListUsers())
			r.Method(http.MethodPost, "/", userHandlers.HandleCreateUser())
		})

		r.Route("/blogs", blogHandlers.RegisterRoutes)

		if cfg.Server.IsTest() {
			r.Method(http.MethodPost, "/testing/reset", handleReset(st))
		}
	})

	return r
}

// recoverer turns a panic into the uniform 500 response. A panic that
// escapes after headers were written can only be logged.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			log.Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("recovered from panic")
			apperror.WriteError(w, r, apperror.NewInternalError("panic in handler", nil))
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether the database answers.
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} apperror.ErrorResponse "Database unreachable"
// @Router /health [get]
func handleHealth(st store.Store) apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			return apperror.NewDatabaseError("database ping failed", err)
		}
		apperror.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return nil
	}
}

// handleReset godoc
// @Summary Reset the database
// @Description Deletes every blog and user. Only mounted when APP_ENV=test.
// @Tags testing
// @Success 204 "No Content"
// @Router /testing/reset [post]
func handleReset(st store.Store) apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := st.Reset(r.Context()); err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusNoContent, nil)
		return nil
	}
}
