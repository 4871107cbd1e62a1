// Package connectortest provides in-process fake Facebook Graph and Zalo
// servers for connector, orchestrator and handler tests.
package connectortest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
)

const GraphVersion = "v19.0"

// Failure is a canned error response for one operation. Drop closes the
// connection without answering.
type Failure struct {
	Status int
	Body   string
	Drop   bool
}

func writeFailure(w http.ResponseWriter, f Failure) {
	if f.Drop {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
				return
			}
		}
		panic(http.ErrAbortHandler)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.Status)
	_, _ = w.Write([]byte(f.Body))
}

// recorder keeps the ordered list of operations a fake served
type recorder struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]Failure
}

func (r *recorder) record(op string) (Failure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	f, ok := r.failures[op]
	return f, ok
}

// Calls returns the served operations in order
func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how often op was served
func (r *recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Fail makes every subsequent op request answer with f
func (r *recorder) Fail(op string, f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = make(map[string]Failure)
	}
	r.failures[op] = f
}

// Page is one page returned by /me/accounts
type Page struct {
	ID          string
	Name        string
	AccessToken string
	Category    string
}

// Graph fakes the Facebook Graph API. Operation names: code_exchange,
// long_lived_exchange, app_token, me_accounts, subscribe_app and
// subscribe_page:<page id>.
type Graph struct {
	*httptest.Server
	recorder

	AppID      string
	AppSecret  string
	ShortToken string
	LongToken  string
	AppToken   string
	Pages      []Page
	PageSize   int

	mu        sync.Mutex
	lastForms map[string]map[string]string
}

// NewGraph starts a fake Graph API serving one page "page_1"
func NewGraph(t testing.TB) *Graph {
	t.Helper()
	g := &Graph{
		AppID:      "fb-app",
		AppSecret:  "fb-secret",
		ShortToken: "SHORT",
		LongToken:  "LONG",
		AppToken:   "fb-app|app-token",
		Pages:      []Page{{ID: "page_1", Name: "Acme Page", AccessToken: "PAGE_TOKEN", Category: "Shopping"}},
		PageSize:   25,
		lastForms:  make(map[string]map[string]string),
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Close)
	return g
}

// Settings returns integration settings matching the fake app
func (g *Graph) Settings(publicBaseURL string) *models.IntegrationSetting {
	return &models.IntegrationSetting{
		ID:                 "facebook-settings",
		Provider:           "facebook",
		AppID:              g.AppID,
		AppSecret:          g.AppSecret,
		Scopes:             models.StringArray{"pages_show_list", "pages_messaging"},
		WebhookURL:         publicBaseURL + "/api/facebook/webhook",
		WebhookVerifyToken: "verify-me",
		PublicBaseURL:      publicBaseURL,
	}
}

// Form returns the parameters of the last request served for op
func (g *Graph) Form(op string) map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastForms[op]
}

func (g *Graph) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/"+GraphVersion)

	op := ""
	switch {
	case path == "/oauth/access_token":
		switch r.Form.Get("grant_type") {
		case "authorization_code":
			op = "code_exchange"
		case "fb_exchange_token":
			op = "long_lived_exchange"
		case "client_credentials":
			op = "app_token"
		}
	case path == "/me/accounts" && r.Method == http.MethodGet:
		op = "me_accounts"
	case path == "/"+g.AppID+"/subscriptions" && r.Method == http.MethodPost:
		op = "subscribe_app"
	case strings.HasSuffix(path, "/subscribed_apps") && r.Method == http.MethodPost:
		op = "subscribe_page:" + strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/subscribed_apps")
	}
	if op == "" {
		writeJSON(w, http.StatusNotFound, graphError("Unknown path components: "+path, 2500))
		return
	}

	form := make(map[string]string, len(r.Form))
	for k := range r.Form {
		form[k] = r.Form.Get(k)
	}
	g.mu.Lock()
	g.lastForms[op] = form
	g.mu.Unlock()

	if f, ok := g.record(op); ok {
		writeFailure(w, f)
		return
	}

	switch op {
	case "code_exchange":
		if form["client_id"] != g.AppID || form["client_secret"] != g.AppSecret {
			writeJSON(w, http.StatusBadRequest, graphError("Error validating client secret.", 1))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": g.ShortToken, "token_type": "bearer", "expires_in": 3600,
		})
	case "long_lived_exchange":
		if form["fb_exchange_token"] != g.ShortToken {
			writeJSON(w, http.StatusBadRequest, graphError("Invalid OAuth access token.", 190))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": g.LongToken, "token_type": "bearer", "expires_in": 5184000,
		})
	case "app_token":
		writeJSON(w, http.StatusOK, map[string]any{"access_token": g.AppToken, "token_type": "bearer"})
	case "me_accounts":
		g.serveAccounts(w, r, form)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func (g *Graph) serveAccounts(w http.ResponseWriter, r *http.Request, form map[string]string) {
	if form["access_token"] != g.LongToken {
		writeJSON(w, http.StatusBadRequest, graphError("Invalid OAuth access token.", 190))
		return
	}
	offset, _ := strconv.Atoi(form["after"])
	end := min(offset+g.PageSize, len(g.Pages))

	data := make([]map[string]any, 0, end-offset)
	for _, p := range g.Pages[offset:end] {
		data = append(data, map[string]any{
			"id":           p.ID,
			"name":         p.Name,
			"access_token": p.AccessToken,
			"category":     p.Category,
			"picture":      map[string]any{"data": map[string]any{"url": "https://cdn.example.com/" + p.ID}},
		})
	}

	resp := map[string]any{"data": data}
	if end < len(g.Pages) {
		q := r.URL.Query()
		q.Set("after", strconv.Itoa(end))
		resp["paging"] = map[string]any{
			"next": fmt.Sprintf("%s%s?%s", g.URL, r.URL.Path, q.Encode()),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func graphError(message string, code int) map[string]any {
	return map[string]any{"error": map[string]any{
		"message": message, "type": "OAuthException", "code": code, "fbtrace_id": "trace",
	}}
}

// Zalo fakes the Zalo OAuth and OpenAPI hosts on one server. Operation
// names: token_exchange and getoa.
type Zalo struct {
	*httptest.Server
	recorder

	AppID       string
	AppSecret   string
	AccessToken string
	OAID        string
	OAName      string

	mu           sync.Mutex
	lastVerifier string
	lastSecret   string
}

// NewZalo starts a fake Zalo API
func NewZalo(t testing.TB) *Zalo {
	t.Helper()
	z := &Zalo{
		AppID:       "zalo-app",
		AppSecret:   "zalo-secret",
		AccessToken: "ZALO_ACCESS",
		OAID:        "2491302944280861639",
		OAName:      "Acme OA",
	}
	z.Server = httptest.NewServer(http.HandlerFunc(z.serve))
	t.Cleanup(z.Close)
	return z
}

// Settings returns integration settings matching the fake app
func (z *Zalo) Settings(publicBaseURL string) *models.IntegrationSetting {
	return &models.IntegrationSetting{
		ID:            "zalo-settings",
		Provider:      "zalo",
		AppID:         z.AppID,
		AppSecret:     z.AppSecret,
		PublicBaseURL: publicBaseURL,
	}
}

// LastVerifier returns the code_verifier of the last token request
func (z *Zalo) LastVerifier() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.lastVerifier
}

// LastSecret returns the secret_key header of the last token request
func (z *Zalo) LastSecret() string {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.lastSecret
}

func (z *Zalo) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var op string
	switch {
	case r.URL.Path == "/v4/oa/access_token" && r.Method == http.MethodPost:
		op = "token_exchange"
		z.mu.Lock()
		z.lastVerifier = r.Form.Get("code_verifier")
		z.lastSecret = r.Header.Get("secret_key")
		z.mu.Unlock()
	case r.URL.Path == "/v2.0/oa/getoa" && r.Method == http.MethodGet:
		op = "getoa"
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": 404, "message": "not found"})
		return
	}

	if f, ok := z.record(op); ok {
		writeFailure(w, f)
		return
	}

	switch op {
	case "token_exchange":
		if r.Header.Get("secret_key") != z.AppSecret || r.Form.Get("app_id") != z.AppID {
			writeJSON(w, http.StatusOK, map[string]any{
				"error": -14002, "error_name": "Invalid app", "error_description": "Invalid secret key",
			})
			return
		}
		if r.Form.Get("code_verifier") == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"error": -14019, "error_name": "Invalid code verifier", "error_description": "code_verifier is required",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  z.AccessToken,
			"refresh_token": "ZALO_REFRESH",
			"expires_in":    "90000",
		})
	case "getoa":
		if r.Header.Get("access_token") != z.AccessToken {
			writeJSON(w, http.StatusOK, map[string]any{"error": -216, "message": "Access token is invalid"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"error":   0,
			"message": "Success",
			"data": map[string]any{
				"oa_id":       z.OAID,
				"name":        z.OAName,
				"avatar":      "https://s160-ava-talk.zadn.vn/acme.jpg",
				"is_verified": true,
				"cate_name":   "Retail",
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
