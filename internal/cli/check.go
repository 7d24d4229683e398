package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
	"github.com/bnema/sitealert/internal/logging"
)

// Check loads a page once and reports whether it would raise an alert.
func (a *App) Check(ctx context.Context, opts SourceOptions) (usecase.CheckPageOutput, error) {
	src, err := NewSource(opts)
	if err != nil {
		return usecase.CheckPageOutput{}, err
	}
	ctx = logging.WithPage(logging.WithComponent(ctx, "check"), src.Location())

	adapter := htmlpage.NewAdapter(src, a.Config.PageOptions())
	if _, _, err := adapter.Refresh(ctx); err != nil {
		return usecase.CheckPageOutput{}, fmt.Errorf("load page: %w", err)
	}

	return usecase.NewCheckPageUseCase(a.Config.RuleSet()).Execute(ctx, adapter), nil
}

// MatchResult is the verdict for one `match` argument.
type MatchResult struct {
	Input  string
	Code   entity.SiteCode
	Found  bool
	Urgent bool
}

// Match checks site codes or location strings against the configured rules.
// Arguments are upper-cased first so that "stl5" is accepted on the command line.
func (a *App) Match(inputs []string) []MatchResult {
	rules := a.Config.RuleSet()
	results := make([]MatchResult, 0, len(inputs))
	for _, in := range inputs {
		res := MatchResult{Input: in}
		res.Code, res.Found = entity.ExtractSiteCode(strings.ToUpper(strings.TrimSpace(in)))
		if res.Found {
			res.Urgent = rules.IsUrgent(res.Code)
		}
		results = append(results, res)
	}
	return results
}
