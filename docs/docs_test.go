package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocumentCoversRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	want := map[string][]string{
		"/register":       {"post"},
		"/login":          {"post"},
		"/logout":         {"post"},
		"/dashboard":      {"get"},
		"/tasks":          {"get", "post"},
		"/tasks/all":      {"get"},
		"/tasks/{taskId}": {"put", "delete"},
		"/health":         {"get"},
		"/ready":          {"get"},
	}
	for path, methods := range want {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, path)
		}
	}
}
