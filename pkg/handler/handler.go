package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/alienwaste/alienwaste-backend/pkg/common"
	"github.com/alienwaste/alienwaste-backend/pkg/game"
	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgGameStateNotFound = "Game state not found"
	msgInvalidAuth       = "Invalid authentication data"
	maxBodyBytes         = 1 << 20
)

// UpdateHandler consumes Telegram updates delivered to the webhook
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// API serves the Web App endpoints
type API struct {
	game     *game.Service
	bot      UpdateHandler
	health   state.Checker
	validate *validator.Validate
}

type NewAPIOptions struct {
	Game *game.Service
	// Bot is optional; without it webhook updates are acknowledged and dropped
	Bot    UpdateHandler
	Health state.Checker
}

func NewAPI(opts NewAPIOptions) *API {
	health := opts.Health
	if health == nil {
		health = state.MemoryHealthChecker{}
	}
	return &API{
		game:     opts.Game,
		bot:      opts.Bot,
		health:   health,
		validate: newValidator(),
	}
}

// Register mounts every route on mux
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth", a.HandleAuth)
	mux.HandleFunc("POST /api/scan-waste", a.HandleScanWaste)
	mux.HandleFunc("POST /api/complete-mission", a.HandleCompleteMission)
	mux.HandleFunc("POST /api/regenerate-alien", a.HandleRegenerateAlien)
	mux.HandleFunc("GET /api/leaderboard", a.HandleLeaderboard)
	mux.HandleFunc("GET /api/game-state/{userId}", a.HandleGetGameState)
	mux.HandleFunc("GET /api/waste-types", a.HandleWasteTypes)
	mux.HandleFunc("POST /webhook", a.HandleWebhook)
	mux.HandleFunc("GET /healthz", a.HandleHealth)
}

// Handler returns the routes wrapped in the CORS middleware
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.Register(mux)
	return CORS(mux)
}

// CORS allows the Web App to call the API from any origin
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decode reads a JSON body into dst and validates it
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if err := a.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return errors.New(strings.Join(parts, "; "))
		}
		return err
	}
	return nil
}

// writeServiceError maps game errors onto HTTP statuses. Anything unexpected
// is a 500 with fallback as message.
func writeServiceError(w http.ResponseWriter, scope *common.Scope, err error, fallback string) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		scope.Log.Errorf("game state not found")
		writeError(w, http.StatusNotFound, msgGameStateNotFound)
	case errors.Is(err, game.ErrUnauthorized):
		scope.Log.Warnf("rejected authentication")
		writeError(w, http.StatusUnauthorized, msgInvalidAuth)
	case errors.Is(err, game.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		scope.TraceError(err)
		scope.Log.Errorf("%s: %v", fallback, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
