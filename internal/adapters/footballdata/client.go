// Package footballdata es el cliente HTTP de la API v4 de football-data.org.
package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	defaultBase = "https://api.football-data.org/v4"
	competition = "PL"

	// Free tier: 10 requests/min. Por defecto se usa el 60%.
	defaultRequestsPerMinute = 6

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// ErrClient es un 4xx distinto de 429: no se reintenta.
var ErrClient = errors.New("footballdata: client error")

// Options configura el Client. Los campos vacíos usan los valores por defecto.
type Options struct {
	BaseURL           string
	APIKey            string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Client es el HTTP client de football-data.org con rate limiting, retries
// y circuit breaker. Implementa ports.FeedProvider.
type Client struct {
	http    *http.Client
	base    string
	apiKey  string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient crea un Client con las opciones dadas.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBase
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = defaultRequestsPerMinute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "football-data",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		// Un 4xx es culpa de la petición, no de la API.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrClient)
		},
	})

	perSec := rate.Limit(float64(opts.RequestsPerMinute) / 60)
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		base:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		limiter: rate.NewLimiter(perSec, 2),
		breaker: cb,
	}
}

// FetchStandings devuelve la clasificación total de la Premier League.
func (c *Client) FetchStandings(ctx context.Context) (domain.LeagueTable, error) {
	var raw standingsResponse
	url := fmt.Sprintf("%s/competitions/%s/standings", c.base, competition)
	if err := c.get(ctx, url, &raw); err != nil {
		return domain.LeagueTable{}, fmt.Errorf("footballdata.FetchStandings: %w", err)
	}

	rows, ok := totalTable(raw)
	if !ok {
		return domain.LeagueTable{}, fmt.Errorf("footballdata.FetchStandings: response has no table")
	}

	slog.Debug("standings fetched", "teams", len(rows), "matchday", raw.Season.CurrentMatchday)
	return domain.LeagueTable{
		Season:          seasonLabel(raw.Season),
		CurrentMatchday: raw.Season.CurrentMatchday,
		Entries:         mapStandings(rows),
	}, nil
}

// FetchMatches devuelve todos los partidos de la temporada, en cualquier estado.
func (c *Client) FetchMatches(ctx context.Context) ([]domain.Match, error) {
	var raw matchesResponse
	url := fmt.Sprintf("%s/competitions/%s/matches", c.base, competition)
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("footballdata.FetchMatches: %w", err)
	}
	slog.Debug("matches fetched", "count", len(raw.Matches))
	return mapMatches(raw.Matches), nil
}

// get hace un GET a través del circuit breaker, con rate limiting y retries.
func (c *Client) get(ctx context.Context, url string, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.doWithRetry(ctx, func() (*http.Response, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")
			if c.apiKey != "" {
				req.Header.Set("X-Auth-Token", c.apiKey)
			}
			return c.http.Do(req)
		}, out)
	})
	return err
}

// doWithRetry ejecuta la función con backoff exponencial, respetando el contexto.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by API", "attempt", attempt+1)
			if attempt == maxRetries {
				return fmt.Errorf("rate limited after %d retries", maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("%w %d: %s", ErrClient, resp.StatusCode, strings.TrimSpace(string(body)))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
