// Package handlers – request parameter merging.
//
// The legacy endpoints accept their parameters from the query string, from
// urlencoded/multipart form bodies, and from JSON bodies, all at once. This
// file collapses the three sources into one lookup with a fixed precedence:
// query beats form, form beats JSON. Callers in the field mix sources freely
// (old plugin builds POST a form while newer ones POST JSON with a query
// string), so every endpoint goes through MergeRequest instead of binding.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequestArgs is the merged view of a request's parameters.
type RequestArgs struct {
	values map[string]string
}

// MergeRequest merges query, form, and JSON-body parameters of the request.
// The body is restored on the request afterwards so later reads still work.
func MergeRequest(c *gin.Context) RequestArgs {
	values := make(map[string]string)

	// JSON body first (lowest precedence).
	if strings.Contains(c.ContentType(), "application/json") && c.Request.Body != nil {
		raw, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			var body map[string]any
			if json.Unmarshal(raw, &body) == nil {
				for k, v := range body {
					values[k] = asParamString(v)
				}
			}
		}
	}

	// Form body next. ParseMultipartForm also parses urlencoded bodies and
	// fills PostForm; parse errors just leave the map as-is.
	if c.Request.Method != "GET" && !strings.Contains(c.ContentType(), "application/json") {
		_ = c.Request.ParseMultipartForm(1 << 20)
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				values[k] = vs[0]
			}
		}
	}

	// Query string wins.
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}

	return RequestArgs{values: values}
}

func asParamString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; integral values print without a
		// fraction to match what the query string would carry.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Get returns the merged value for key, or "" when absent.
func (a RequestArgs) Get(key string) string { return a.values[key] }

// Has reports whether the key was present in any source.
func (a RequestArgs) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Default returns the merged value for key, or def when absent or blank.
func (a RequestArgs) Default(key, def string) string {
	if v := strings.TrimSpace(a.values[key]); v != "" {
		return v
	}
	return def
}

// Int parses the merged value for key as an integer, falling back to def on
// absent or malformed values. Legacy callers routinely send junk page ids.
func (a RequestArgs) Int(key string, def int) int {
	v := strings.TrimSpace(a.values[key])
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// First returns the merged value of the first key that is present and
// non-blank. The legacy endpoints accept aliases (city/cty, state/st).
func (a RequestArgs) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(a.values[k]); v != "" {
			return v
		}
	}
	return ""
}
