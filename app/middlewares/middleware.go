package middlewares

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hwickes/restyle-pos/app/models"
	"github.com/hwickes/restyle-pos/app/repositories"
	"github.com/hwickes/restyle-pos/app/utils/renderer"
	"github.com/hwickes/restyle-pos/app/utils/sessions"
)

type contextKey string

const userContextKey contextKey = "current_user"

// CurrentUser returns the authenticated account placed on the context by
// RequireAuth, or nil outside an authenticated route.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func RequireAuth(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := store.GetUserID(r)
			if userID == "" {
				renderer.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("RequireAuth: failed to load user %s: %v", userID, err)
				renderer.Error(w, http.StatusInternalServerError, "something went wrong")
				return
			}
			if user == nil {
				_ = store.ClearSession(w, r)
				renderer.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner guards the back-office routes. It must run after RequireAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil || user.Role != models.RoleOwner {
			renderer.Error(w, http.StatusForbidden, "owner access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
