// Package fshiserver exposes the importer over HTTP, grounded on the
// teacher's server package: a chi router (server/api/api.go's use of
// chi.URLParam is the only prior use of the dependency in the pack;
// this package is the first to call chi.NewRouter itself), bearer-token
// gating adapted from server/token.go and server/tunas auth checks
// (internal/fshiserver/auth), and JSON response shaping adapted from
// server/result.go.
package fshiserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/fshimport"
	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshiserver/auth"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/dekarrin/fshimport/internal/projcfg"
	"github.com/dekarrin/fshimport/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server wraps a chi.Router exposing the importer to network clients.
// The zero value is not usable; construct one with New.
type Server struct {
	router chi.Router

	config      projcfg.Config
	defs        defprovider.Provider
	secret      []byte
	credentials auth.CredentialStore

	// UnauthDelay is how long an endpoint pauses before writing an
	// HTTP-401 or HTTP-500 result, deprioritizing such requests the
	// same way the teacher's API.UnauthDelay does. 401s written by the
	// bearer-token middleware in front of /import are not delayed.
	UnauthDelay time.Duration
}

// New constructs a Server that imports FSH text against config and
// defs, issuing and validating bearer tokens signed with secret.
// credentials maps client IDs to bcrypt-hashed API keys; see
// auth.HashAPIKey.
func New(config projcfg.Config, defs defprovider.Provider, secret []byte, credentials auth.CredentialStore) *Server {
	if defs == nil {
		defs = defprovider.Empty{}
	}

	s := &Server{
		config:      config,
		defs:        defs,
		secret:      secret,
		credentials: credentials,
		UnauthDelay: 500 * time.Millisecond,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/info", s.endpoint(s.epInfo))
	r.Post("/token", s.endpoint(s.epCreateToken))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(secret))
		r.Post("/import", s.endpoint(s.epImport))
	})

	s.router = r
	return s
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// endpointFunc is the signature every route handler implements; it
// returns a result rather than writing to the ResponseWriter directly,
// mirroring the teacher's EndpointFunc/Endpoint split in
// server/endpoints.go.
type endpointFunc func(req *http.Request) result

func (s *Server) endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		res := ep(req)
		if s.UnauthDelay > 0 && (res.status == http.StatusUnauthorized || res.status == http.StatusInternalServerError) {
			time.Sleep(s.UnauthDelay)
		}
		res.writeTo(w, req)
	}
}

// infoResponse is the body of GET /info.
type infoResponse struct {
	Version   string `json:"version"`
	Canonical string `json:"canonical"`
}

func (s *Server) epInfo(req *http.Request) result {
	return ok(infoResponse{Version: version.Current, Canonical: s.config.Canonical})
}

// tokenRequest is the body of POST /token: an API key exchanged for a
// short-lived bearer token.
type tokenRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

// tokenResponse is the body returned on successful authentication.
type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) epCreateToken(req *http.Request) result {
	var body tokenRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("malformed request body", "decode token request: %s", err.Error())
	}

	if body.ClientID == "" || body.APIKey == "" {
		return badRequest("client_id and api_key are required", "missing client_id or api_key")
	}

	hash, registered := s.credentials.KeyHash(body.ClientID)
	if !registered || !auth.VerifyAPIKey(hash, body.APIKey) {
		return unauthorized("incorrect client ID or API key", "failed API key check for client %q", body.ClientID)
	}

	tok, err := auth.IssueToken(s.secret, body.ClientID)
	if err != nil {
		return internalServerError("issue token for client %q: %s", body.ClientID, err.Error())
	}

	return ok(tokenResponse{Token: tok})
}

// importRequestFile is one source unit submitted to POST /import.
type importRequestFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// importRequest is the body of POST /import.
type importRequest struct {
	Files []importRequestFile `json:"files"`
}

// importResponse is the body returned from a successful POST /import:
// the correlation ID assigned to the request, the resulting
// Documents, and every Diagnostic raised while importing them.
type importResponse struct {
	RequestID   string               `json:"request_id"`
	Documents   []*fshast.Document   `json:"documents"`
	Diagnostics []ierrors.Diagnostic `json:"diagnostics"`
	HasErrors   bool                 `json:"has_errors"`
}

func (s *Server) epImport(req *http.Request) result {
	reqID := uuid.New().String()

	defer req.Body.Close()
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return badRequest("could not read request body", "read import request %s: %s", reqID, err.Error())
	}

	var body importRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return badRequest("malformed request body", "decode import request %s: %s", reqID, err.Error())
	}

	if len(body.Files) == 0 {
		return badRequest("at least one file is required", "import request %s had no files", reqID)
	}

	rawInputs := make([]fshimport.RawInput, len(body.Files))
	for i, f := range body.Files {
		path := f.Path
		if path == "" {
			path = fmt.Sprintf("<request %s file %d>", reqID, i)
		}
		rawInputs[i] = fshimport.RawInput{Path: path, Content: f.Content}
	}

	sink := ierrors.NewSink()
	docs := fshimport.Import(rawInputs, s.config, s.defs, sink)

	clientID, _ := auth.ClientID(req.Context())
	log.Printf("import request %s from client %q: %d file(s), %d diagnostic(s)", reqID, clientID, len(rawInputs), len(sink.All()))

	return ok(importResponse{
		RequestID:   reqID,
		Documents:   docs,
		Diagnostics: sink.All(),
		HasErrors:   sink.HasErrors(),
	})
}
