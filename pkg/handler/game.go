package handler

import (
	"net/http"
	"strconv"

	"github.com/alienwaste/alienwaste-backend/pkg/catalog"
	"github.com/alienwaste/alienwaste-backend/pkg/common"
	"github.com/alienwaste/alienwaste-backend/pkg/game"
	"github.com/alienwaste/alienwaste-backend/pkg/state"
)

type authRequest struct {
	InitData string `json:"initData" validate:"required"`
}

type authUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

type authResponse struct {
	Success   bool             `json:"success"`
	User      authUser         `json:"user"`
	GameState *state.GameState `json:"gameState"`
}

type scanRequest struct {
	UserID    string   `json:"userId" validate:"required"`
	WasteType string   `json:"wasteType" validate:"required,max=64"`
	Points    int      `json:"points" validate:"gte=0"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type scanResponse struct {
	Success        bool             `json:"success"`
	GameState      *state.GameState `json:"gameState"`
	Message        string           `json:"message"`
	ScansRemaining int              `json:"scansRemaining"`
}

type userRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type stateResponse struct {
	Success   bool             `json:"success"`
	GameState *state.GameState `json:"gameState"`
}

type leaderboardResponse struct {
	Success     bool                     `json:"success"`
	Leaderboard []state.LeaderboardEntry `json:"leaderboard"`
}

type wasteTypesResponse struct {
	Success    bool                `json:"success"`
	WasteTypes []catalog.WasteType `json:"wasteTypes"`
}

// HandleAuth verifies Telegram init data and returns the player's game state
func (a *API) HandleAuth(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.Auth")
	defer scope.Finish()

	var req authRequest
	if err := a.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.game.Authenticate(scope.Ctx, req.InitData)
	if err != nil {
		writeServiceError(w, scope, err, "Authentication failed")
		return
	}
	scope.WithUser(result.User.IDString())
	scope.SetAttributes("player.created", result.Created)
	if result.Created {
		scope.Log.Info("created game state on first login")
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		User: authUser{
			ID:        result.User.ID,
			FirstName: result.User.FirstName,
			Username:  result.User.Username,
		},
		GameState: result.State,
	})
}

// HandleScanWaste runs a scan through the rate gate. Rejections are answered
// with 429 and the machine-readable code.
func (a *API) HandleScanWaste(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.ScanWaste")
	defer scope.Finish()

	var req scanRequest
	if err := a.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scope.WithUser(req.UserID)

	result, err := a.game.Scan(scope.Ctx, game.ScanRequest{
		UserID:    req.UserID,
		WasteType: req.WasteType,
		Points:    req.Points,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeServiceError(w, scope, err, "Failed to scan waste")
		return
	}

	if !result.Accepted {
		rej := result.Rejection
		scope.SetAttributes("scan.rejected", string(rej.Code))
		scope.Log.Infof("scan rejected: %s", rej.Code)

		body := map[string]any{
			"error": rej.Message,
			"code":  rej.Code,
		}
		for k, v := range rej.Details {
			body[k] = v
		}
		writeJSON(w, http.StatusTooManyRequests, body)
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{
		Success:        true,
		GameState:      result.State,
		Message:        result.Message,
		ScansRemaining: result.ScansRemaining,
	})
}

// HandleCompleteMission marks the daily mission as completed
func (a *API) HandleCompleteMission(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.CompleteMission")
	defer scope.Finish()

	var req userRequest
	if err := a.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scope.WithUser(req.UserID)

	gs, err := a.game.CompleteMission(scope.Ctx, req.UserID)
	if err != nil {
		writeServiceError(w, scope, err, "Failed to complete mission")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, GameState: gs})
}

func (a *API) HandleRegenerateAlien(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.RegenerateAlien")
	defer scope.Finish()

	var req userRequest
	if err := a.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scope.WithUser(req.UserID)

	gs, err := a.game.RegenerateAlien(scope.Ctx, req.UserID)
	if err != nil {
		writeServiceError(w, scope, err, "Failed to regenerate alien")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, GameState: gs})
}

// HandleLeaderboard returns the top players. An optional ?limit overrides the
// default size.
func (a *API) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.Leaderboard")
	defer scope.Finish()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := a.game.Leaderboard(scope.Ctx, limit)
	if err != nil {
		writeServiceError(w, scope, err, "Failed to get leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Success: true, Leaderboard: entries})
}

func (a *API) HandleGetGameState(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.GetGameState")
	defer scope.Finish()

	userID := r.PathValue("userId")
	scope.WithUser(userID)

	gs, err := a.game.GetState(scope.Ctx, userID)
	if err != nil {
		writeServiceError(w, scope, err, "Failed to get game state")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{Success: true, GameState: gs})
}

func (a *API) HandleWasteTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, wasteTypesResponse{Success: true, WasteTypes: a.game.WasteTypes()})
}
