package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// volatileFields change on every request and are left out of body comparisons at any depth.
var volatileFields = []string{"timestamp", "requestId", "createdAt"}

func newJSONRequest(t testing.TB, method, target string, body io.Reader, headers map[string]string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for name, value := range headers {
		req.Header.Set(name, value)
	}

	return req
}

func assertJSONBody(t testing.TB, body io.Reader, want string) {
	t.Helper()

	var got, expected any
	require.NoError(t, json.NewDecoder(body).Decode(&got), "decoding response body")
	require.NoError(t, json.Unmarshal([]byte(want), &expected), "decoding expected body")

	ignoreVolatile := cmpopts.IgnoreMapEntries(func(key string, _ any) bool {
		return slices.Contains(volatileFields, key)
	})

	if diff := cmp.Diff(expected, got, ignoreVolatile); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}
