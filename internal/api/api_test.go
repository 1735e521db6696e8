package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesh254/ukify/internal/dictionary"
)

func dictionaryServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessHTML_RequiresDictionary(t *testing.T) {
	a := NewAPI(nil, 0)

	_, err := a.ProcessHTML("<p>gray.</p>")
	assert.ErrorIs(t, err, ErrNoDictionary)

	_, err = a.ConvertText("gray")
	assert.ErrorIs(t, err, ErrNoDictionary)

	_, _, err = a.Lookup("gray")
	assert.ErrorIs(t, err, ErrNoDictionary)

	_, err = a.Dictionary()
	assert.ErrorIs(t, err, ErrNoDictionary)
}

func TestLoadDictionary_EndToEnd(t *testing.T) {
	srv := dictionaryServer(t, http.StatusOK, `{"gray": "grey"}`)
	a := NewAPI(nil, 16)

	mapping, err := a.LoadDictionary(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, dictionary.TermMapping{{American: "gray", British: "grey"}}, mapping)

	out, err := a.ProcessHTML("<p>The colour should be GRAY.</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>The colour should be grey.</p>", out)

	text, err := a.ConvertText("gray skies")
	require.NoError(t, err)
	assert.Equal(t, "grey skies", text)

	british, ok, err := a.Lookup("Gray")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "grey", british)
}

func TestLoadDictionary_FetchFailureBlocksProcessing(t *testing.T) {
	srv := dictionaryServer(t, http.StatusInternalServerError, "")
	a := NewAPI(nil, 0)

	_, err := a.LoadDictionary(context.Background(), srv.URL)
	var fetchErr *dictionary.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)

	_, err = a.ProcessHTML("<p>gray</p>")
	assert.ErrorIs(t, err, ErrNoDictionary)
}

func TestLoadDictionary_ParseFailureIsDistinct(t *testing.T) {
	srv := dictionaryServer(t, http.StatusOK, `not json`)
	a := NewAPI(nil, 0)

	_, err := a.LoadDictionary(context.Background(), srv.URL)
	var parseErr *dictionary.ParseError
	require.True(t, errors.As(err, &parseErr))

	var fetchErr *dictionary.FetchError
	assert.False(t, errors.As(err, &fetchErr))

	_, err = a.ProcessHTML("<p>gray</p>")
	assert.ErrorIs(t, err, ErrNoDictionary)
}

func TestLoadDictionary_ReloadReplacesRules(t *testing.T) {
	first := dictionaryServer(t, http.StatusOK, `{"gray": "grey"}`)
	second := dictionaryServer(t, http.StatusOK, `{"color": "colour"}`)
	a := NewAPI(nil, 16)

	_, err := a.LoadDictionary(context.Background(), first.URL)
	require.NoError(t, err)
	out, err := a.ConvertText("gray color")
	require.NoError(t, err)
	assert.Equal(t, "grey color", out)

	_, err = a.LoadDictionary(context.Background(), second.URL)
	require.NoError(t, err)
	out, err = a.ConvertText("gray color")
	require.NoError(t, err)
	assert.Equal(t, "gray colour", out)

	dict, err := a.Dictionary()
	require.NoError(t, err)
	assert.Len(t, dict.Rules, 1)
}

func TestLoadDictionary_FailedReloadKeepsPrevious(t *testing.T) {
	good := dictionaryServer(t, http.StatusOK, `{"gray": "grey"}`)
	bad := dictionaryServer(t, http.StatusNotFound, "")
	a := NewAPI(nil, 0)

	_, err := a.LoadDictionary(context.Background(), good.URL)
	require.NoError(t, err)
	_, err = a.LoadDictionary(context.Background(), bad.URL)
	require.Error(t, err)

	out, err := a.ConvertText("gray")
	require.NoError(t, err)
	assert.Equal(t, "grey", out)
}

func TestProcessReport(t *testing.T) {
	a := NewAPI(nil, 0)
	a.Install(&dictionary.Dictionary{Source: "test", Rules: dictionary.Compile(nil)})

	res, err := a.ProcessReport("<h3>Output:</h3><p>A. B.</p><ul><li>Note: x</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "<p>A.</p><p>B.</p><ul><li><strong>Note:</strong> x</li></ul>", res.HTML)
	assert.Equal(t, 1, res.HeadersRemoved)
	assert.Equal(t, 1, res.ItemsBolded)
	assert.Equal(t, 2, res.Sentences)
}

func TestCacheStats(t *testing.T) {
	a := NewAPI(nil, 4)
	assert.Zero(t, a.CacheStats().Misses)

	mapping := dictionary.TermMapping{{American: "gray", British: "grey"}}
	a.Install(&dictionary.Dictionary{Mapping: mapping, Rules: dictionary.Compile(mapping)})

	_, err := a.ProcessHTML("<p>gray.</p><p>gray.</p>")
	require.NoError(t, err)

	stats := a.CacheStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestProcessHTML_Concurrent(t *testing.T) {
	mapping := dictionary.TermMapping{{American: "gray", British: "grey"}}
	a := NewAPI(nil, 8)
	a.Install(&dictionary.Dictionary{Mapping: mapping, Rules: dictionary.Compile(mapping)})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := a.ProcessHTML("<p>gray one. gray two.</p>")
			assert.NoError(t, err)
			assert.Equal(t, "<p>grey one.</p><p>grey two.</p>", out)
		}()
	}
	wg.Wait()
}
