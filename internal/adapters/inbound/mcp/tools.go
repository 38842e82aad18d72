package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/config"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/report"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/rules"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/scopefile"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/vcs"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/review"
	"github.com/scopecheck/scopecheck/internal/logging"
)

// registerTools registers all scopecheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. scopecheck_scope
	s.AddTool(
		mcplib.NewTool("scopecheck_scope",
			mcplib.WithDescription("Returns the changed files and the subset the analyzer would check, as JSON. Read-only."),
			mcplib.WithString("ref", mcplib.Description("Compare HEAD against this ref instead of the working tree")),
			mcplib.WithString("changed", mcplib.Description("Comma-separated changed file paths; skips git when given")),
		),
		handleScope(projectPath),
	)

	// 2. scopecheck_findings
	s.AddTool(
		mcplib.NewTool("scopecheck_findings",
			mcplib.WithDescription("Returns the findings of the last analyzer report as JSON"),
			mcplib.WithString("report", mcplib.Description("Report JSON path (default from configuration)")),
			mcplib.WithBoolean("unreviewed_only", mcplib.Description("Only return findings nobody has reviewed")),
		),
		handleFindings(projectPath),
	)

	// 3. scopecheck_review_preview
	s.AddTool(
		mcplib.NewTool("scopecheck_review_preview",
			mcplib.WithDescription("Returns the markdown review that CI would post for the last report"),
			mcplib.WithString("commit", mcplib.Description("Commit used in permalinks (default HEAD)")),
			mcplib.WithString("report", mcplib.Description("Report JSON path (default from configuration)")),
		),
		handleReviewPreview(projectPath),
	)
}

func openProject(projectPath string, requireRepo bool) (*application.Project, error) {
	return application.OpenProject(gitinfo.New(), config.New(), projectPath, "", requireRepo)
}

func handleScope(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ref := request.GetString("ref", "")
		changed := request.GetString("changed", "")

		p, err := openProject(projectPath, changed == "")
		if err != nil {
			return errorResult(fmt.Sprintf("opening project: %v", err)), nil
		}

		var resolver domain.ChangeResolver = vcs.NewGit(p.Root)
		if changed != "" {
			resolver = vcs.NewFileList(changed)
		}
		svc := application.NewScopeService(resolver, rules.New(), scopefile.New(), logging.Discard())

		sr, err := svc.Resolve(ctx, ref, p.Config, p.Layout)
		if domain.IsTerminal(err) {
			return textResult(err.Error()), nil
		}
		if err != nil {
			return errorResult(fmt.Sprintf("resolving scope failed: %v", err)), nil
		}
		return jsonResult(sr)
	}
}

func loadFindings(projectPath, reportPath string) (*application.Project, []domain.Finding, error) {
	p, err := openProject(projectPath, false)
	if err != nil {
		return nil, nil, err
	}
	if reportPath == "" {
		reportPath = p.Layout.ReportJSON
	}
	svc := application.NewReviewService(report.New(), nil, nil, logging.Discard())
	findings, err := svc.Evaluate(reportPath)
	if err != nil {
		return nil, nil, err
	}
	return p, findings, nil
}

func handleFindings(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, findings, err := loadFindings(projectPath, request.GetString("report", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("loading report failed: %v", err)), nil
		}
		if request.GetBool("unreviewed_only", false) {
			findings = domain.Unreviewed(findings)
		}
		if findings == nil {
			findings = []domain.Finding{}
		}
		return jsonResult(findings)
	}
}

func handleReviewPreview(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		p, findings, err := loadFindings(projectPath, request.GetString("report", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("loading report failed: %v", err)), nil
		}
		if len(domain.Unreviewed(findings)) == 0 {
			return textResult("Nothing to post: no unreviewed findings."), nil
		}

		linker, err := application.ResolveLinker(gitinfo.New(), p.Config, p.Root, request.GetString("commit", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("resolving permalinks failed: %v", err)), nil
		}
		body, err := review.BuildBody(findings, linker)
		if err != nil {
			return errorResult(fmt.Sprintf("building review failed: %v", err)), nil
		}
		return textResult(body), nil
	}
}

// jsonResult marshals v to indented JSON and wraps it in a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
