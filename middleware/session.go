package middleware

import (
	"context"
	"net/http"

	"github.com/notesnap/notesnap-api/auth"
	"github.com/notesnap/notesnap-api/models"
	"gorm.io/gorm"
)

type contextKey string

const userKey contextKey = "user"

// RequireSession resolves the session cookie to a user record and attaches
// it to the request context for downstream handlers. A cookie naming a user
// that no longer exists is treated the same as no cookie at all.
func RequireSession(db *gorm.DB, jwtSecret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			username, err := auth.VerifyToken(jwtSecret, cookie.Value)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			var user models.User
			if err := db.Where("username = ?", username).First(&user).Error; err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserFrom returns the session user attached by RequireSession.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}
