package handler

import (
	"encoding/json"
	"net/http"

	"github.com/alienwaste/alienwaste-backend/pkg/common"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HandleWebhook feeds a Telegram update to the bot. Telegram retries any
// non-2xx answer, so failures are logged and still acknowledged.
func (a *API) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	scope := common.NewScope(r.Context(), "API.Webhook")
	defer scope.Finish()

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&update); err != nil {
		scope.Log.Warnf("dropping malformed update: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	scope.SetAttributes("telegram.update_id", update.UpdateID)

	if a.bot == nil {
		scope.Log.Debugf("bot disabled, dropping update %d", update.UpdateID)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := a.bot.HandleUpdate(scope.Ctx, update); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to handle update %d: %v", update.UpdateID, err)
	}
	w.WriteHeader(http.StatusOK)
}

// HandleHealth reports whether the state backend is reachable
func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.health.Check(r.Context()); err != nil {
		logrus.Warnf("health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
