package pipeline

import "net/http"

// Request is the read-only slice of inbound request metadata that stages
// may inspect. It deliberately carries no body and no response writer.
type Request struct {
	Method string
	Path   string
	header http.Header
}

func NewRequest(method, path string, header http.Header) Request {
	return Request{Method: method, Path: path, header: header}
}

// Header returns the first value for the named header, or "".
func (r Request) Header(name string) string {
	if r.header == nil {
		return ""
	}
	return r.header.Get(name)
}

// AbortResult is the terminal outcome a stage attaches when it aborts the
// flow. Status is the HTTP status the boundary should respond with.
type AbortResult struct {
	Status  int
	Code    string
	Message string
}

// RequestContext is the per-request mutable state container threaded
// through a flow. It is owned by exactly one in-flight request and must
// never be shared across requests.
type RequestContext struct {
	req         Request
	state       map[string]any
	aborted     bool
	abortResult *AbortResult
}

func NewRequestContext(req Request) *RequestContext {
	return &RequestContext{
		req:   req,
		state: map[string]any{},
	}
}

// Request returns the inbound request metadata.
func (rc *RequestContext) Request() Request {
	return rc.req
}

// Set stores a cross-stage value. Expected keys are part of each stage's
// contract (e.g. the authentication stage sets "user_id" on success).
func (rc *RequestContext) Set(key string, value any) {
	rc.state[key] = value
}

// Get returns a cross-stage value and whether it was present.
func (rc *RequestContext) Get(key string) (any, bool) {
	v, ok := rc.state[key]
	return v, ok
}

// GetString returns a string-typed state value, or "" when absent or of a
// different type.
func (rc *RequestContext) GetString(key string) string {
	v, ok := rc.state[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Abort signals cooperative short-circuit: no subsequent stage in the
// same flow executes. Mutation performed before the abort stays visible.
func (rc *RequestContext) Abort(result AbortResult) {
	rc.aborted = true
	rc.abortResult = &result
}

// Aborted reports whether a stage has aborted the flow.
func (rc *RequestContext) Aborted() bool {
	return rc.aborted
}

// AbortResult returns the terminal result attached by the aborting stage,
// or nil when the flow was not aborted.
func (rc *RequestContext) AbortResult() *AbortResult {
	return rc.abortResult
}
