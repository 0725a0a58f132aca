// Package swaggerkit serves the swag generated OpenAPI document and the
// swagger UI in front of it
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"adscope/internal/platform/config"
	perr "adscope/internal/platform/errors"
	phttp "adscope/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const skeleton = `{"openapi":"3.0.3","info":{"title":"adscope API","version":"0.0.0"},"paths":{}}`

// readDoc returns the generated document, or the skeleton when swag init has
// not been run
var readDoc = func(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil || len(b) == 0 {
		return []byte(skeleton)
	}
	return b
}

// Mount the Swagger UI and JSON spec if enabled. CORE_API_DOCS_FILE points at
// swag's swagger.json
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	file := config.New().Prefix("CORE_API_").MayString("DOCS_FILE", "docs/swagger.json")
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDoc(file))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func serveDoc(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal(readDoc(file), &spec); err != nil {
			phttp.Error(perr.Wrap(err, perr.ErrorCodeJSON, "swagger doc parse")).Write(w, r)
			return
		}
		normalize(spec, "/api/v1")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalize lifts swag's 2.0 output to 3.0.3 (the UI cannot render 3.1), sets
// the server base and documents the error envelope on every operation
func normalize(spec map[string]any, base string) {
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	delete(spec, "swagger")
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "string"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
				"data":        map[string]any{},
			},
			"required": []any{"status_code", "status"},
		}
	}

	defaults := map[string]any{
		"400": errResponse("Bad Request", http.StatusBadRequest, perr.ErrorCodeValidation, "video_id must not be blank"),
		"500": errResponse("Internal Server Error", http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, _ := p.(map[string]any)
		for _, o := range node {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for status, resp := range defaults {
				if _, ok := resps[status]; !ok {
					resps[status] = resp
				}
			}
		}
	}
}

func errResponse(desc string, status int, code perr.ErrorCode, msg string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        code.String(),
					"error":       msg,
				},
			},
		},
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
