package mcp

import (
	"context"
	"encoding/json"

	"github.com/darvasboard/darvas-portal/internal/config"
	"github.com/darvasboard/darvas-portal/internal/darvas"
	"github.com/darvasboard/darvas-portal/internal/view"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TickerReportTool returns the mcp.Tool definition for get_ticker_report.
func TickerReportTool() mcp.Tool {
	return mcp.NewTool("get_ticker_report",
		mcp.WithDescription("Get the weekly trading report for a stock ticker: last full trading week OHLC, GTT buy and target prices, 52-week high/low with dates, and company fundamentals. Returns markdown."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Ticker symbol (e.g. 'AAPL', 'GOOG'). Case-insensitive.")),
	)
}

// TickerReportToolHandler runs the report pipeline and formats the result as markdown.
func TickerReportToolHandler(service *darvas.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol := r.GetString("symbol", "")
		if symbol == "" {
			return errorResult("symbol is required"), nil
		}

		report, err := service.TickerReport(ctx, symbol)
		if err != nil {
			return errorResult("Error fetching data for ticker '" + symbol + "': " + err.Error()), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(formatTickerReport(view.Build(report)))},
		}, nil
	}
}

// versionInfo holds version fields for the portal.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// VersionTool returns the mcp.Tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the darvas-portal version and status. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns the portal version info as JSON.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(map[string]versionInfo{
			"darvas_portal": {
				Version: config.GetVersion(),
				Build:   config.GetBuild(),
				Commit:  config.GetGitCommit(),
			},
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(out))},
		}, nil
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
