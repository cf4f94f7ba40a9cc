package wingo

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dto "wingo_backend/internal/api/dto/wingo"
	"wingo_backend/internal/converter"
	"wingo_backend/internal/middleware"
	"wingo_backend/internal/model"
	"wingo_backend/internal/service"
	"wingo_backend/pkg/req"
	"wingo_backend/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv   service.WingoService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.WingoService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// GetRound возвращает текущий открытый раунд дорожки
func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")

	round, err := h.serv.GetOpenRound(r.Context(), track)
	if err != nil {
		h.writeError(w, "get round failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.RoundToResponse(round))
}

// GetHistory возвращает рассчитанные раунды дорожки, новые первыми
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	rounds, err := h.serv.GetHistory(r.Context(), track, limit)
	if err != nil {
		h.writeError(w, "get history failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.RoundsToResponse(rounds))
}

// PlaceBet размещает ставку от имени авторизованного пользователя
func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.PlaceBetRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	bet, err := h.serv.PlaceBet(r.Context(), converter.PlaceBetRequestToModel(&payload, userID))
	if err != nil {
		h.writeError(w, "place bet failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.BetToResponse(bet))
}

// Risk возвращает операторский срез риска по открытому раунду дорожки
func (h *Handler) Risk(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")

	snapshot, err := h.serv.RiskSnapshot(r.Context(), track)
	if err != nil {
		h.writeError(w, "risk snapshot failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.RiskSnapshotToResponse(snapshot))
}

// SetOverride назначает значение следующего исхода дорожки
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.OverrideRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	override, err := h.serv.SetOverride(r.Context(), payload.Track, payload.Number, operatorID)
	if err != nil {
		h.writeError(w, "set override failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.OverrideToResponse(override))
}

// ListOverrides возвращает активные операторские выборы по всем дорожкам
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.serv.ActiveOverrides(r.Context())
	if err != nil {
		h.writeError(w, "list overrides failed", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.OverridesToResponse(overrides))
}

// Sweep принудительно запускает цикл закрытия и расчета раундов
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	err := h.serv.Sweep(r.Context(), time.Now())
	if err != nil {
		h.writeError(w, "sweep failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError переводит ошибки доменного слоя в HTTP статусы
func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidSelection):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, model.ErrRoundNotFound),
		errors.Is(err, model.ErrTrackNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrRoundNotOpen),
		errors.Is(err, model.ErrBettingWindowClosed):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}

	http.Error(w, err.Error(), status)
}
