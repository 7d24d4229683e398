package usecase

import (
	"context"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/logging"
)

// CheckPageOutput is a one-shot evaluation of a page.
type CheckPageOutput struct {
	Unassigned  bool
	Location    string
	HasLocation bool
	SiteCode    entity.SiteCode
	HasSiteCode bool
	Urgent      bool

	// Page-wide diagnostics, filled when the page implements port.PageInspector.
	Identity           string
	PageCodes          []entity.SiteCode
	UrgentElsewhere    entity.SiteCode
	HasUrgentElsewhere bool
}

// CheckPageUseCase evaluates a page once, without detection state or
// notifications. It answers "would this page raise an alert right now".
type CheckPageUseCase struct {
	rules *entity.RuleSet
}

// NewCheckPageUseCase creates a new CheckPageUseCase.
func NewCheckPageUseCase(rules *entity.RuleSet) *CheckPageUseCase {
	if rules == nil {
		rules = entity.NewRuleSet(nil, nil)
	}
	return &CheckPageUseCase{rules: rules}
}

// Execute evaluates page.
func (uc *CheckPageUseCase) Execute(ctx context.Context, page port.PageAdapter) CheckPageOutput {
	log := logging.FromContext(ctx)

	var out CheckPageOutput
	if inspector, ok := page.(port.PageInspector); ok {
		uc.inspect(ctx, inspector, &out)
	}

	out.Unassigned = page.IsUnassigned(ctx)
	if !out.Unassigned {
		log.Debug().Msg("check: work order is assigned")
		return out
	}

	out.Location, out.HasLocation = page.LocationText(ctx)
	if !out.HasLocation {
		log.Debug().Msg("check: no location text")
		return out
	}

	out.SiteCode, out.HasSiteCode = entity.ExtractSiteCode(out.Location)
	if out.HasSiteCode {
		out.Urgent = uc.rules.IsUrgent(out.SiteCode)
	}

	log.Debug().
		Str("location", out.Location).
		Str("site", out.SiteCode.String()).
		Bool("urgent", out.Urgent).
		Msg("check complete")
	return out
}

// inspect scans the whole page for site codes so that `check` can point out
// an urgent code sitting outside the location field.
func (uc *CheckPageUseCase) inspect(ctx context.Context, page port.PageInspector, out *CheckPageOutput) {
	log := logging.FromContext(ctx)

	identity, err := page.Identity()
	if err != nil {
		log.Debug().Err(err).Msg("check: page has no identity")
		return
	}
	out.Identity = identity

	text, err := page.BodyText()
	if err != nil {
		log.Debug().Err(err).Msg("check: page has no body text")
		return
	}
	out.PageCodes = entity.ScanSiteCodes(text)
	out.UrgentElsewhere, out.HasUrgentElsewhere = uc.rules.FirstUrgent(text)
}
