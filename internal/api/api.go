// api.go
package api

import (
	"context"
	"errors"
	"sync"

	"github.com/tesh254/ukify/internal/converter"
	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/logger"
	"github.com/tesh254/ukify/internal/transformer"
)

// ErrNoDictionary is returned when HTML or text is submitted before a
// dictionary has been loaded.
var ErrNoDictionary = errors.New("no dictionary loaded")

// state is everything built from one dictionary load. It is never mutated
// after install.
type state struct {
	dict        *dictionary.Dictionary
	converter   *converter.Converter
	transformer *transformer.Transformer
}

// API is the boundary used by the CLI and the MCP server.
type API struct {
	loader    *dictionary.Loader
	cacheSize int

	mu    sync.RWMutex
	state *state
}

// NewAPI creates a new API instance. cacheSize bounds the per-dictionary
// conversion cache; zero disables it.
func NewAPI(loader *dictionary.Loader, cacheSize int) *API {
	if loader == nil {
		loader = dictionary.NewLoader(nil)
	}
	return &API{
		loader:    loader,
		cacheSize: cacheSize,
	}
}

// LoadDictionary loads the mapping from source and makes it the active
// dictionary. On failure the previously active dictionary, if any, is kept.
func (a *API) LoadDictionary(ctx context.Context, source string) (dictionary.TermMapping, error) {
	dict, err := a.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	a.Install(dict)
	return dict.Mapping, nil
}

// Install makes dict the active dictionary with a fresh conversion cache.
func (a *API) Install(dict *dictionary.Dictionary) {
	conv := converter.New(dict.Rules, converter.WithCache(a.cacheSize))
	s := &state{
		dict:        dict,
		converter:   conv,
		transformer: transformer.New(conv),
	}

	a.mu.Lock()
	a.state = s
	a.mu.Unlock()

	logger.Debug("installed dictionary from %s (%d terms, checksum %.12s)", dict.Source, len(dict.Mapping), dict.Checksum)
}

func (a *API) current() (*state, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state == nil {
		return nil, ErrNoDictionary
	}
	return a.state, nil
}

// Dictionary returns the active dictionary.
func (a *API) Dictionary() (*dictionary.Dictionary, error) {
	s, err := a.current()
	if err != nil {
		return nil, err
	}
	return s.dict, nil
}

// ProcessHTML rewrites an HTML snippet and returns the processed HTML.
func (a *API) ProcessHTML(src string) (string, error) {
	res, err := a.ProcessReport(src)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// ProcessReport rewrites an HTML snippet and reports what changed.
func (a *API) ProcessReport(src string) (*transformer.Result, error) {
	s, err := a.current()
	if err != nil {
		return nil, err
	}
	return s.transformer.Process(src)
}

// ConvertText converts plain text with the active dictionary.
func (a *API) ConvertText(text string) (string, error) {
	s, err := a.current()
	if err != nil {
		return "", err
	}
	return s.converter.ConvertText(text), nil
}

// Lookup returns the British term for an American term.
func (a *API) Lookup(term string) (string, bool, error) {
	s, err := a.current()
	if err != nil {
		return "", false, err
	}
	british, ok := s.dict.Mapping.Lookup(term)
	return british, ok, nil
}

// CacheStats returns the conversion cache counters of the active dictionary.
func (a *API) CacheStats() converter.Stats {
	s, err := a.current()
	if err != nil {
		return converter.Stats{}
	}
	return s.converter.Stats()
}
