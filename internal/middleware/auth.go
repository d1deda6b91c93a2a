package middleware

import (
	"context"
	"net/http"

	"github.com/repairlink/repairlink/internal/auth"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
	"github.com/repairlink/repairlink/pkg/utils"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyTechnician
)

// Authenticator resolves the session cookie into a caller identity and
// exposes the composable guards the route groups are wrapped with.
type Authenticator struct {
	sessions       *auth.Manager
	userRepo       repository.UserRepository
	technicianRepo repository.TechnicianRepository
}

func NewAuthenticator(sessions *auth.Manager, userRepo repository.UserRepository, technicianRepo repository.TechnicianRepository) *Authenticator {
	return &Authenticator{
		sessions:       sessions,
		userRepo:       userRepo,
		technicianRepo: technicianRepo,
	}
}

// RequireAuth rejects anonymous callers and puts the resolved User into the
// request context. Technician accounts also get their Technician row
// attached so ownership checks downstream see it on every route.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolveUser(r)
		if err != nil {
			utils.Unauthorized(w, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)

		if user.UserType == models.UserTypeTechnician {
			technician, err := a.technicianRepo.GetByUserID(r.Context(), user.ID)
			if err != nil {
				utils.InternalError(w, "failed to resolve technician profile")
				return
			}
			if technician != nil {
				ctx = context.WithValue(ctx, ctxKeyTechnician, technician)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects any caller whose user record is not an admin. Must
// run inside RequireAuth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil {
			utils.Unauthorized(w, "authentication required")
			return
		}
		if !user.IsAdmin() {
			utils.Forbidden(w, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireTechnician rejects callers without a technician profile. Must run
// inside RequireAuth.
func (a *Authenticator) RequireTechnician(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TechnicianFrom(r.Context()) == nil {
			utils.Forbidden(w, "technician access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) resolveUser(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, apperrors.ErrUnauthorized
	}

	sess, err := a.sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := a.userRepo.GetByID(r.Context(), sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// UserFrom returns the authenticated user, or nil for anonymous callers.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(ctxKeyUser).(*models.User)
	return user
}

// TechnicianFrom returns the technician resolved by RequireTechnician.
func TechnicianFrom(ctx context.Context) *models.Technician {
	technician, _ := ctx.Value(ctxKeyTechnician).(*models.Technician)
	return technician
}
