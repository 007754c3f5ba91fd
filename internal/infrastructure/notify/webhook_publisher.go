// Package notify pushes finished-game results to an external webhook.
package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
	"github.com/fieldgames/domination/internal/platform/logging"
	"github.com/fieldgames/domination/internal/platform/resilience"
)

type WebhookPublisherConfig struct {
	URL       string
	AuthToken string
	Timeout   time.Duration
	Breaker   resilience.CircuitBreakerConfig
}

// WebhookPublisher POSTs a finished game's scoreboard as JSON. A circuit
// breaker keeps a dead endpoint from slowing down game finalization.
type WebhookPublisher struct {
	client    *http.Client
	url       string
	authToken string
	breaker   *resilience.CircuitBreaker
	logger    *logging.Logger
}

type finalScorePayload struct {
	GameID     string            `json:"gameId"`
	GameName   string            `json:"gameName"`
	FinishedAt time.Time         `json:"finishedAt"`
	Scores     []teamScoreRecord `json:"scores"`
}

type teamScoreRecord struct {
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	CaptureBonus int    `json:"captureBonus"`
	Holding      int    `json:"holding"`
	Total        int    `json:"total"`
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WebhookPublisher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:       strings.TrimSpace(cfg.URL),
		authToken: strings.TrimSpace(cfg.AuthToken),
		breaker:   resilience.NewCircuitBreaker(cfg.Breaker),
		logger:    logger,
	}
}

func (p *WebhookPublisher) PublishFinalScores(ctx context.Context, g game.Game, scores []scoreboard.TeamScore) error {
	if p.url == "" {
		return nil
	}
	if !p.breaker.Allow() {
		return crerr.Newf("final score webhook circuit is %s", p.breaker.State())
	}

	payload := finalScorePayload{
		GameID:     g.ID,
		GameName:   g.Name,
		FinishedAt: time.Now().UTC(),
		Scores:     make([]teamScoreRecord, 0, len(scores)),
	}
	for _, score := range scores {
		payload.Scores = append(payload.Scores, teamScoreRecord{
			TeamID:       score.TeamID,
			TeamName:     score.TeamName,
			CaptureBonus: score.CaptureBonusScore,
			Holding:      score.HoldingScore,
			Total:        score.TotalScore,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "encode final score payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(buf.B))
	if err != nil {
		return crerr.Wrap(err, "create final score webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.authToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.breaker.RecordFailure()
		return crerr.Wrap(err, "post final score webhook")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		p.breaker.RecordFailure()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return crerr.Newf("post final score webhook status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	p.breaker.RecordSuccess()
	p.logger.InfoContext(ctx, "final scores published", "game_id", g.ID, "teams", len(scores))
	return nil
}
