package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"drugdex/m/domain"
	"drugdex/m/internal/label"
	"drugdex/m/internal/logger"
	"drugdex/m/internal/store"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

const defaultPageSize = 50

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	secret   string
	validate *validator.Validate
	log      *logger.Logger
}

// New constructs a Handler.
func New(st *store.Store, secret string, log *logger.Logger) *Handler {
	return &Handler{
		store:    st,
		secret:   secret,
		validate: validator.New(),
		log:      log,
	}
}

// Router wires up the HTTP API. Catalog reads are public; label writes
// require an authenticated editor or admin.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Route("/drugs", func(r chi.Router) {
		r.Get("/", h.listDrugs)
		r.Get("/{slug}", h.getDrug)
		r.Get("/{slug}/faqs", h.listFAQs)

		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Put("/{id}/label", h.updateLabel)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

// Auth handlers

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to hash password")
		return
	}

	user := domain.User{
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		respondError(w, http.StatusConflict, "unable to create user")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Drug handlers

func (h *Handler) listDrugs(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := queryInt(r, "limit", defaultPageSize)
	offset := queryInt(r, "offset", 0)

	drugs, err := h.store.ListDrugs(r.Context(), query, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list drugs")
		return
	}
	respondJSON(w, http.StatusOK, drugs)
}

func (h *Handler) getDrug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	drug, err := h.store.GetDrugBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "drug not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load drug")
		return
	}
	respondJSON(w, http.StatusOK, drug)
}

func (h *Handler) listFAQs(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	drug, err := h.store.GetDrugBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "drug not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load drug")
		return
	}

	faqs, err := h.store.ListFAQs(r.Context(), drug.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list faqs")
		return
	}
	respondJSON(w, http.StatusOK, faqs)
}

// updateLabel replaces a drug's label-derived fields from a raw document.
// The body goes through the boundary validator before anything touches the
// store: structurally invalid payloads are rejected outright, wrong-typed
// known fields are neutralized with a warning.
func (h *Handler) updateLabel(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin", "editor") {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid drug id")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	warnings, verr := ValidateLabelPayload(payload)
	if verr != nil {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}
	for _, warning := range warnings {
		h.log.Warn("label payload field neutralized", "drug_id", id, "field", warning)
	}

	existing, err := h.store.GetDrugByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "drug not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load drug")
		return
	}

	updated := label.Canonicalize(payload)
	updated.ID = existing.ID
	updated.Slug = existing.Slug
	if updated.Name == label.UnknownDrugName {
		updated.Name = existing.Name
	}

	if err := h.store.UpdateLabel(r.Context(), updated); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update label")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Helpers

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return strings.ToLower(first.Field()) + " failed " + first.Tag() + " validation"
	}
	return err.Error()
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
