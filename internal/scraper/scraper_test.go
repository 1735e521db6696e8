package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "ukify")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	page, err := New(nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", page)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
	}{
		{"not found", http.StatusNotFound, "text/html"},
		{"not html", http.StatusOK, "application/json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := New(nil).Fetch(context.Background(), srv.URL)
			assert.Error(t, err)
		})
	}
}

func TestMainContent(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		expected string
	}{
		{
			name:     "main element",
			page:     "<html><body><nav>menu</nav><main><p>A.</p></main></body></html>",
			expected: "<p>A.</p>",
		},
		{
			name:     "article element",
			page:     "<body><header>h</header><article><h3>Output:</h3><ul><li>x</li></ul></article></body>",
			expected: "<h3>Output:</h3><ul><li>x</li></ul>",
		},
		{
			name:     "content id",
			page:     `<body><div id="content"><p>B.</p></div><footer>f</footer></body>`,
			expected: "<p>B.</p>",
		},
		{
			name:     "body fallback",
			page:     "<p>C.</p>",
			expected: "<p>C.</p>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MainContent(tc.page)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("HTTP://example.com"))
	assert.False(t, IsURL("page.html"))
	assert.False(t, IsURL("-"))
}
