// File: internal/infra/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-bonus-verify/internal/application"
	"telegram-bonus-verify/internal/infra/logging"
	"telegram-bonus-verify/internal/infra/metrics"
	"telegram-bonus-verify/internal/usecase"
)

// Server exposes the issuance and status webhooks for the chat widget and
// the callback webhook for Telegram.
type Server struct {
	bonusUC usecase.BonusUseCase
	flow    *application.VerifyFlow
	secret  string
	log     *zerolog.Logger
}

func NewServer(bonusUC usecase.BonusUseCase, flow *application.VerifyFlow, webhookSecret string, logger *zerolog.Logger) *Server {
	return &Server{
		bonusUC: bonusUC,
		flow:    flow,
		secret:  webhookSecret,
		log:     logger,
	}
}

// Router builds the full route tree. The same two logical operations are
// mounted twice: the ChatBot.com envelope under /api/bonus and flat JSON
// under /api/v1/bonus.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(15*time.Second),
	)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.mountBonus(r, "/api/bonus/telegram", chatbotResponder{})
	s.mountBonus(r, "/api/v1/bonus/telegram", plainResponder{})

	r.Post("/api/telegram/webhook", s.handleTelegramWebhook)

	return r
}

func (s *Server) mountBonus(r chi.Router, prefix string, resp Responder) {
	r.Route(prefix, func(r chi.Router) {
		r.With(SharedSecret(s.secret)).Get("/start", s.handleStartHandshake)
		r.With(SharedSecret(s.secret)).Post("/start", s.handleIssue(resp))
		r.Get("/status", s.handleStatus(resp))
		r.Post("/status", s.handleStatus(resp))
	})
}

// handleStartHandshake serves the widget's webhook-validation GET: echo the
// challenge as plain text when present, otherwise a small ok payload.
func (s *Server) handleStartHandshake(w http.ResponseWriter, r *http.Request) {
	if challenge := r.URL.Query().Get("challenge"); challenge != "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIssue(resp Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		iss, err := s.bonusUC.Issue(r.Context())
		if err != nil {
			logging.With(r.Context(), s.log).Error().Err(err).Msg("issue bonus failed")
			resp.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		metrics.IncBonusIssued()
		resp.Issue(w, iss)
	}
}

func (s *Server) handleStatus(resp Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			resp.Error(w, http.StatusBadRequest, "token required")
			return
		}
		st, err := s.bonusUC.CheckStatus(r.Context(), token)
		if err != nil {
			logging.With(r.Context(), s.log).Error().Err(err).Msg("status check failed")
			resp.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		metrics.IncStatusCheck(statusResult(st))
		resp.Status(w, st)
	}
}

// tokenFromRequest accepts the token wherever the widget puts it: the
// token/bonus_code query parameters or the attributes.bonus_code body field.
func tokenFromRequest(r *http.Request) string {
	q := r.URL.Query()
	if t := q.Get("token"); t != "" {
		return t
	}
	if t := q.Get("bonus_code"); t != "" {
		return t
	}
	if r.Method == http.MethodPost && r.Body != nil {
		var body struct {
			Attributes struct {
				BonusCode string `json:"bonus_code"`
			} `json:"attributes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			return body.Attributes.BonusCode
		}
	}
	return ""
}

// handleTelegramWebhook always answers 200: Telegram re-delivers the update
// on any other status, which only multiplies failures.
func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logging.With(r.Context(), s.log).Warn().Err(err).Msg("undecodable telegram update")
	} else {
		s.flow.HandleUpdate(r.Context(), update)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
