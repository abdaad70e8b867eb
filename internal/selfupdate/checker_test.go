package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/hotsquiz/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	server := releaseServer(t, "v1.2.0")
	checker := NewChecker(WithBaseURL(server.URL))

	cases := []struct {
		version string
		want    bool
	}{
		{"v1.1.9", true},
		{"1.1.0", true},
		{"v1.2.0", false},
		{"v1.3.0", false},
		{"(devel)", false},
	}
	for _, tc := range cases {
		t.Run(tc.version, func(t *testing.T) {
			res, err := checker.Check(context.Background(), &CheckInput{Version: tc.version})
			require.NoError(t, err)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
			assert.Equal(t, tc.want, res.UpdateAvailable)
		})
	}
}

func TestCheck_InvalidTag(t *testing.T) {
	server := releaseServer(t, "nightly")
	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a semantic version")
}

func TestCheck_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
