// Imposter
//
// A social deduction party game. A host creates a room and shares its
// six-character code; players join until the room is full. Each round
// the host picks a secret word, one player is drawn at random as the
// impostor, and everyone else is shown the word. Players then try to
// talk about the word convincingly enough to flush the impostor out.
//
// Features:
// - Single websocket endpoint at /imposter/ws, JSON messages with a "type" field
// - Rooms keyed by 6-char uppercase codes, collision-checked at creation
// - Exactly one host per room; host disconnect closes the room
// - Seat indices stay contiguous across joins, leaves, and host transfers
// - Host can hand the room to any seated player
// - Per-room chat and WebRTC signaling passthrough
// - In-browser QR button to share a room code, backed by go-qrcode
// - Idle rooms reaped after a configurable timeout

package main

import (
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

//go:embed imposter/index.html
var indexHTML []byte

//go:embed imposter/app.css
var imposterCSS []byte

//go:embed imposter/app.js
var imposterJS []byte

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(imposterCSS)
	}
}

func getJsHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(imposterJS)
	}
}

// qrHandler renders a PNG QR code pointing at the game page with the
// room code prefilled, so a host can share a lobby from their screen.
func qrHandler(cfg *Config, path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if len(code) != roomCodeLength {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + path + "?code=" + code

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

// registerImposterGame sets up routes so that:
//   - $path           → HTML client
//   - $path/ws        → shared WebSocket endpoint for all rooms
//   - $path/qr/:code  → PNG QR code for joining the given room
func registerImposterGame(cfg *Config, path string, mux *httprouter.Router) {
	g := newImposterGame(cfg)

	if cfg.sessionTimeout > 0 {
		go g.reaperLoop(cfg.sessionTimeout)
	}

	// Client view (HTML)
	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	// Shared assets
	mux.GET(cfg.prefix+"/assets/imposter/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/assets/imposter/app.js", getJsHandler(cfg))

	// Shared websocket endpoint; rooms are created and joined in-band
	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, g))

	// Per-room QR code
	mux.GET(cfg.prefix+path+"/qr/:code", qrHandler(cfg, path))
}
