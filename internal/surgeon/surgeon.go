package surgeon

import (
	"context"
	"fmt"
	"log"

	"github.com/bugsurgeon/gh-surgeon/internal/analysis"
	"github.com/bugsurgeon/gh-surgeon/internal/config"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
	"github.com/bugsurgeon/gh-surgeon/internal/llm"
	"github.com/bugsurgeon/gh-surgeon/internal/prompt"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

// Surgeon runs the debugging analysis: it gathers the source files a bug
// report mentions, asks the model for a structured diagnosis, and falls back
// to an iterative tool loop when the report names no files.
type Surgeon struct {
	cfg      *config.Config
	provider llm.Provider
	reader   ContentReader
}

// New creates a Surgeon. The reader may be nil, in which case no file
// context is gathered and the tool loop answers every lookup with an error.
func New(cfg *config.Config, provider llm.Provider, reader ContentReader) *Surgeon {
	return &Surgeon{cfg: cfg, provider: provider, reader: reader}
}

// Analyze produces a structured diagnosis for a bug report. Prior similar
// incidents, when given, are appended to the prompt as extra context.
func (s *Surgeon) Analyze(ctx context.Context, report *models.BugReport, similar []models.SimilarIncident) (*models.Analysis, error) {
	files := s.gatherFiles(ctx, report)
	extra := history.PromptSection(similar)

	if len(files) > 0 {
		return s.analyzeDirect(ctx, report, files, extra)
	}
	return s.analyzeReact(ctx, report, extra)
}

// gatherFiles fetches the files the report mentions, skipping any that
// cannot be read.
func (s *Surgeon) gatherFiles(ctx context.Context, report *models.BugReport) []models.FileContext {
	if s.reader == nil {
		return nil
	}

	var files []models.FileContext
	for _, path := range ExtractFilePaths(report.Text) {
		content, err := s.reader.FetchFile(ctx, path)
		if err != nil {
			log.Printf("warning: could not read %s: %v", path, err)
			continue
		}
		files = append(files, models.FileContext{
			Path:    path,
			Content: clipContent(content, s.cfg.React.MaxFileBytes),
		})
	}
	return files
}

func (s *Surgeon) analyzeDirect(ctx context.Context, report *models.BugReport, files []models.FileContext, extra string) (*models.Analysis, error) {
	userPrompt := prompt.Build(report.Text, files)
	if extra != "" {
		userPrompt += "\n" + extra
	}

	resp, err := s.provider.CompleteWithSystem(ctx, prompt.System(), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	return analysis.Parse(resp), nil
}

// analyzeReact runs the iterative loop: the model may ask for files via
// TOOL_REQUEST blocks, and each answer is fed back as a user message. The
// loop ends when the model stops asking, or after the configured number of
// iterations, in which case the last response is parsed as-is.
func (s *Surgeon) analyzeReact(ctx context.Context, report *models.BugReport, extra string) (*models.Analysis, error) {
	first := prompt.BuildReact(report.Text)
	if extra != "" {
		first += "\n" + extra
	}
	messages := []llm.Message{{Role: llm.RoleUser, Content: first}}

	requested := make(map[string]bool)
	var lastResp string

	for iter := 0; iter < s.cfg.React.MaxIterations; iter++ {
		resp, err := s.provider.Chat(ctx, prompt.System(), messages)
		if err != nil {
			return nil, fmt.Errorf("analysis request failed: %w", err)
		}
		lastResp = resp

		requests := ParseToolRequests(resp)
		if len(requests) == 0 {
			return analysis.Parse(resp), nil
		}

		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: resp})

		served := false
		for _, req := range requests {
			if req.Tool != "read_file" || requested[req.FilePath] {
				continue
			}
			requested[req.FilePath] = true
			messages = append(messages, llm.Message{
				Role:    llm.RoleUser,
				Content: prompt.FileContent(req.FilePath, s.serveFile(ctx, req)),
			})
			served = true
		}

		// Nothing new to hand over: tell the model to conclude.
		if !served {
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt.FinalInstruction()})
		}
	}

	log.Printf("warning: analysis did not converge after %d iterations", s.cfg.React.MaxIterations)
	return analysis.Parse(lastResp), nil
}

func (s *Surgeon) serveFile(ctx context.Context, req ToolRequest) string {
	if s.reader == nil {
		return "Error reading file: no repository context available"
	}

	content, err := s.reader.FetchFile(ctx, req.FilePath)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}

	content = sliceLines(content, req.StartLine, req.EndLine)
	return clipContent(content, s.cfg.React.MaxFileBytes)
}
