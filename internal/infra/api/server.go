package api

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/infra/logging"
	"telegram-video-bridge/internal/infra/metrics"
	"telegram-video-bridge/internal/usecase"
)

// VideoRequester records a website request and tries to deliver it.
type VideoRequester interface {
	Request(ctx context.Context, videoID, userID string) (usecase.RequestOutcome, error)
}

// SecretChecker is the shared-secret gate of the request endpoint.
type SecretChecker interface {
	Validate(supplied string, present bool) bool
}

// Readiness reports whether the bot is connected.
type Readiness interface {
	IsReady() bool
}

type Options struct {
	ChatURL string // public link to the bot chat, target of every redirect
	BaseURL string // website base URL used in direct-video links
	Secret  string // embedded in direct-video links
	Timeout time.Duration
}

// Server wires the website-facing routes to the video usecase.
type Server struct {
	videos  VideoRequester
	secrets SecretChecker
	ready   Readiness
	opts    Options
	log     *zerolog.Logger
}

func NewServer(videos VideoRequester, secrets SecretChecker, ready Readiness, opts Options, logger *zerolog.Logger) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Server{videos: videos, secrets: secrets, ready: ready, opts: opts, log: logger}
}

// Routes returns the HTTP handler for the service.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(s.opts.Timeout),
	)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/request-video/{videoId}/{userId}", s.handleRequestVideo)
	r.Get("/direct-video/{videoId}/{userId}", s.handleDirectVideo)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Telegram Video Bot is running!"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if s.ready != nil && !s.ready.IsReady() {
		_, _ = w.Write([]byte("ok (bot not ready)"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// handleRequestVideo always redirects to the bot chat once the secret checks out; the delivery
// outcome never reaches the browser.
func (s *Server) handleRequestVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	userID := chi.URLParam(r, "userId")
	l := logging.With(r.Context(), s.log)

	vals, present := r.URL.Query()["secret"]
	supplied := ""
	if present && len(vals) > 0 {
		supplied = vals[0]
	}
	if !s.secrets.Validate(supplied, present) {
		metrics.IncVideoRequest("unauthorized")
		l.Warn().Str("video_id", videoID).Str("user_id", userID).Msg("video request rejected: bad secret")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	outcome, err := s.videos.Request(r.Context(), videoID, userID)
	if err != nil {
		l.Error().Err(err).Str("video_id", videoID).Str("user_id", userID).Msg("video request not recorded")
	} else {
		l.Info().Str("video_id", videoID).Str("user_id", userID).Str("outcome", string(outcome)).Msg("video requested")
	}
	http.Redirect(w, r, s.opts.ChatURL, http.StatusFound)
}

func (s *Server) handleDirectVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	userID := chi.URLParam(r, "userId")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := directPage.Execute(w, struct {
		VideoID string
		Link    string
	}{
		VideoID: videoID,
		Link:    s.requestLink(videoID, userID),
	}); err != nil {
		s.log.Error().Err(err).Msg("render direct-video page")
	}
}

// requestLink builds the authorized request URL; relative when no base URL is configured.
func (s *Server) requestLink(videoID, userID string) string {
	base := strings.TrimRight(s.opts.BaseURL, "/")
	return base + "/request-video/" + url.PathEscape(videoID) + "/" + url.PathEscape(userID) +
		"?secret=" + url.QueryEscape(s.opts.Secret)
}

var directPage = template.Must(template.New("direct").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Get video {{.VideoID}}</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;}
.card{max-width:560px;border:1px solid #ddd;border-radius:12px;padding:24px;}
.btn{display:inline-block;margin-top:16px;padding:10px 16px;border-radius:8px;border:1px solid #888;text-decoration:none}
.small{font-size:12px;color:#666}
</style>
</head>
<body>
<div class="card">
  <h2>Video {{.VideoID}}</h2>
  <p>Tap the button to receive this video in Telegram.</p>
  <a class="btn" href="{{.Link}}">Get it in Telegram</a>
  <div class="small">If nothing arrives, open the bot and send /start.</div>
</div>
</body>
</html>`))
