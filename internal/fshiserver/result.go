package fshiserver

import (
	"encoding/json"
	"log"
	"net/http"
)

// result is the outcome of one endpoint function: a status code plus
// the JSON body to write, adapted from the teacher's server/result
// Result type and trimmed to the JSON-only needs of this API (no
// redirects, no plain-text error bodies).
type result struct {
	status    int
	body      interface{}
	isErr     bool
	logFormat string
	logArgs   []interface{}
}

// errorResponse is the JSON shape returned for every non-2xx result.
type errorResponse struct {
	Error string `json:"error"`
}

// ok returns a 200 result carrying body as its JSON payload.
func ok(body interface{}) result {
	return result{status: http.StatusOK, body: body}
}

// created returns a 201 result carrying body as its JSON payload.
func created(body interface{}) result {
	return result{status: http.StatusCreated, body: body}
}

// badRequest returns a 400 result with userMsg shown to the caller and
// the format/args logged server-side only.
func badRequest(userMsg string, logFormat string, logArgs ...interface{}) result {
	return result{
		status:    http.StatusBadRequest,
		body:      errorResponse{Error: userMsg},
		isErr:     true,
		logFormat: logFormat,
		logArgs:   logArgs,
	}
}

// unauthorized returns a 401 result, setting the WWW-Authenticate
// header the same way the teacher's server/result.Unauthorized does.
func unauthorized(userMsg string, logFormat string, logArgs ...interface{}) result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return result{
		status:    http.StatusUnauthorized,
		body:      errorResponse{Error: userMsg},
		isErr:     true,
		logFormat: logFormat,
		logArgs:   logArgs,
	}
}

// internalServerError returns a 500 result; logFormat/logArgs are
// logged but never shown to the caller.
func internalServerError(logFormat string, logArgs ...interface{}) result {
	return result{
		status:    http.StatusInternalServerError,
		body:      errorResponse{Error: "An internal server error occurred"},
		isErr:     true,
		logFormat: logFormat,
		logArgs:   logArgs,
	}
}

func (r result) writeTo(w http.ResponseWriter, req *http.Request) {
	if r.logFormat != "" {
		log.Printf("%s %s: HTTP-%d: "+r.logFormat, append([]interface{}{req.Method, req.URL.Path, r.status}, r.logArgs...)...)
	}
	if r.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="fshi server", charset="utf-8"`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	if r.body != nil {
		if err := json.NewEncoder(w).Encode(r.body); err != nil {
			log.Printf("%s %s: failed to encode response body: %s", req.Method, req.URL.Path, err.Error())
		}
	}
}
