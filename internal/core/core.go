package core

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tesh254/ukify/internal/api"
	"github.com/tesh254/ukify/internal/version"
)

// Core exposes the API as an MCP server.
type Core struct {
	api    *api.API
	server *mcp.Server
}

type ProcessHTMLArgs struct {
	HTML string `json:"html" jsonschema:"the HTML snippet to rewrite"`
}

type ProcessHTMLOutput struct {
	HTML           string `json:"html"`
	Paragraphs     int    `json:"paragraphs"`
	Sentences      int    `json:"sentences"`
	HeadersRemoved int    `json:"headers_removed"`
	ItemsBolded    int    `json:"items_bolded"`
}

type ConvertTextArgs struct {
	Text string `json:"text" jsonschema:"plain text to convert to British English"`
}

type ConvertTextOutput struct {
	Text string `json:"text"`
}

type LookupTermArgs struct {
	Term string `json:"term" jsonschema:"an American English term"`
}

type LookupTermOutput struct {
	Term    string `json:"term"`
	British string `json:"british,omitempty"`
	Found   bool   `json:"found"`
}

// New creates the MCP server and registers its tools.
func New(internalAPI *api.API) *Core {
	c := &Core{
		api:    internalAPI,
		server: mcp.NewServer(&mcp.Implementation{Name: "ukify", Version: version.GetVersion()}, nil),
	}
	c.registerTools()
	return c
}

func (c *Core) registerTools() {
	mcp.AddTool(c.server, &mcp.Tool{
		Name:        "process_html",
		Description: "Convert American English to British English in an HTML snippet, split paragraphs into one per sentence, drop prompt headers and bold list labels.",
	}, c.handleProcessHTML)

	mcp.AddTool(c.server, &mcp.Tool{
		Name:        "convert_text",
		Description: "Convert American English vocabulary in plain text to British English.",
	}, c.handleConvertText)

	mcp.AddTool(c.server, &mcp.Tool{
		Name:        "lookup_term",
		Description: "Look up the British English equivalent of an American English term.",
	}, c.handleLookupTerm)
}

func (c *Core) handleProcessHTML(_ context.Context, _ *mcp.CallToolRequest, args ProcessHTMLArgs) (*mcp.CallToolResult, ProcessHTMLOutput, error) {
	res, err := c.api.ProcessReport(args.HTML)
	if err != nil {
		return nil, ProcessHTMLOutput{}, err
	}
	return nil, ProcessHTMLOutput{
		HTML:           res.HTML,
		Paragraphs:     res.Paragraphs,
		Sentences:      res.Sentences,
		HeadersRemoved: res.HeadersRemoved,
		ItemsBolded:    res.ItemsBolded,
	}, nil
}

func (c *Core) handleConvertText(_ context.Context, _ *mcp.CallToolRequest, args ConvertTextArgs) (*mcp.CallToolResult, ConvertTextOutput, error) {
	text, err := c.api.ConvertText(args.Text)
	if err != nil {
		return nil, ConvertTextOutput{}, err
	}
	return nil, ConvertTextOutput{Text: text}, nil
}

func (c *Core) handleLookupTerm(_ context.Context, _ *mcp.CallToolRequest, args LookupTermArgs) (*mcp.CallToolResult, LookupTermOutput, error) {
	british, ok, err := c.api.Lookup(args.Term)
	if err != nil {
		return nil, LookupTermOutput{}, err
	}
	return nil, LookupTermOutput{Term: args.Term, British: british, Found: ok}, nil
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled.
func (c *Core) ServeStdio(ctx context.Context) error {
	log.Printf("Starting ukify MCP server with stdio transport")
	t := &mcp.LoggingTransport{Transport: &mcp.StdioTransport{}, Writer: os.Stderr}
	return c.server.Run(ctx, t)
}

// ServeHTTP runs the streamable HTTP transport on addr until ctx is cancelled.
func (c *Core) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           loggingHandler(c.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("ukify MCP handler listening at %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the streamable HTTP handler without access logging.
func (c *Core) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return c.server
	}, nil)
}
