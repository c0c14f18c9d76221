package trigger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

const GoogleIssuer = "https://accounts.google.com"

// PushEnvelope is the body of a Pub/Sub push delivery. The message is logged but otherwise
// not inspected - every delivery triggers a poll.
type PushEnvelope struct {
	Message struct {
		ID          string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		Data        []byte            `json:"data,omitempty"`
		Attributes  map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// NewVerifier returns a verifier for Google-signed OIDC tokens issued for the audience, as
// attached by authenticated Pub/Sub push subscriptions and Cloud Scheduler.
func NewVerifier(ctx context.Context, audience string) (*oidc.IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, err
	}

	return provider.Verifier(&oidc.Config{ClientID: audience}), nil
}

type PushHandler struct {
	runner   Runner
	verifier Verifier
	log      *slog.Logger
}

// NewPushHandler returns an HTTP handler that runs one poll per POST. A failed poll is
// reported as a 500 so that the delivering scheduler records (and may retry) the failure.
// If verifier is nil requests are not authenticated.
func NewPushHandler(runner Runner, verifier Verifier, logger *slog.Logger) *PushHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PushHandler{
		runner:   runner,
		verifier: verifier,
		log:      logger,
	}
}

func (h *PushHandler) ServeHTTP(w http.ResponseWriter, rq *http.Request) {
	if rq.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.verifier != nil {
		token, ok := strings.CutPrefix(rq.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := h.verifier.Verify(rq.Context(), strings.TrimSpace(token)); err != nil {
			h.log.Warn("rejected push request", "error", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	envelope := PushEnvelope{}
	if b, err := io.ReadAll(io.LimitReader(rq.Body, 1<<20)); err != nil {
		h.log.Warn("error reading push request", "error", err)
	} else if len(b) > 0 {
		if err := json.Unmarshal(b, &envelope); err != nil {
			h.log.Debug("push request body is not a Pub/Sub envelope", "error", err)
		}
	}

	h.log.Info("trigger received", "message", envelope.Message.ID, "subscription", envelope.Subscription)

	summary, err := h.runner.Run(rq.Context())
	if err != nil {
		h.log.Error("poll failed", "run", summary.Run, "error", err)
		http.Error(w, "poll failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
