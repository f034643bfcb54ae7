package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/errs"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/store"
)

// UserIDParam is the chi URL parameter naming the user.
const UserIDParam = "_id"

// writeJSON writes a JSON response with the given status code. The body is
// encoded before any header is sent so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(errs.NewInternalServerError())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// writeError maps err onto an HTTP status and writes it as an errs.HTTPError.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *errs.HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.Is(err, store.ErrInvalidID):
		httpErr = errs.NewBadRequestError("Invalid user id", []errs.FieldError{
			{Field: UserIDParam, Error: "must be a 24 character hex string"},
		})
	case errors.Is(err, store.ErrNotFound):
		httpErr = errs.NewNotFoundError("User not found")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		httpErr = errs.NewInternalServerError()
	}
	writeJSON(w, r, httpErr.Status, httpErr)
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ExerciseStore defines the interface for exercise persistence.
type ExerciseStore interface {
	InsertExercise(ctx context.Context, ex *models.Exercise) error
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Exercise, error)
}

// Handler holds the user, exercise and log HTTP handlers.
type Handler struct {
	users     UserStore
	exercises ExerciseStore
	dates     *Dates
	now       func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLocation sets the time zone used for canonical dates. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(h *Handler) { h.dates = NewDates(loc) }
}

// WithClock replaces time.Now, which supplies the default exercise date.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(users UserStore, exercises ExerciseStore, opts ...Option) *Handler {
	h := &Handler{
		users:     users,
		exercises: exercises,
		dates:     NewDates(time.UTC),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateUser stores a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Debug().Str("user_id", user.ID.Hex()).Msg("user created")
	writeJSON(w, r, http.StatusOK, user)
}

// ListUsers returns every user.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, r, http.StatusOK, users)
}

// CreateExercise records an exercise for the user in the path.
func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, UserIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createExerciseRequest
	if err := bind(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	date, err := h.dates.Normalize(req.Date, h.now())
	if err != nil {
		writeError(w, r, errs.NewBadRequestError("Validation failed", []errs.FieldError{
			{Field: "date", Error: "must be a valid date"},
		}))
		return
	}

	ex := &models.Exercise{
		Duration:    *req.Duration,
		Description: req.Description,
		Date:        date,
		Owner:       user.ID,
	}
	if err := h.exercises.InsertExercise(r.Context(), ex); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, models.ExerciseResponse{
		Username:    user.Username,
		Duration:    ex.Duration,
		Description: ex.Description,
		Date:        ex.Date,
		ID:          ex.Owner.Hex(),
	})
}

// Logs returns the user's exercise log, filtered by the from, to and limit
// query parameters.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, UserIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	q, err := h.dates.ParseLogQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	exercises, err := h.exercises.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log := h.dates.BuildLog(exercises, q)
	writeJSON(w, r, http.StatusOK, models.LogResponse{
		Username: user.Username,
		Count:    len(log),
		ID:       user.ID.Hex(),
		Log:      log,
	})
}
