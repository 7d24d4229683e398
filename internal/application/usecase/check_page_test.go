package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/domain/entity"
)

func TestCheckPageUseCase_Execute(t *testing.T) {
	tests := []struct {
		name       string
		unassigned bool
		location   string
		want       usecase.CheckPageOutput
	}{
		{
			name: "assigned",
			want: usecase.CheckPageOutput{},
		},
		{
			name:       "no location",
			unassigned: true,
			want:       usecase.CheckPageOutput{Unassigned: true},
		},
		{
			name:       "urgent prefix",
			unassigned: true,
			location:   "MCO3 - X1",
			want: usecase.CheckPageOutput{
				Unassigned: true, Location: "MCO3 - X1", HasLocation: true,
				SiteCode: "MCO3", HasSiteCode: true, Urgent: true,
			},
		},
		{
			name:       "not urgent",
			unassigned: true,
			location:   "RDU1 - PS552",
			want: usecase.CheckPageOutput{
				Unassigned: true, Location: "RDU1 - PS552", HasLocation: true,
				SiteCode: "RDU1", HasSiteCode: true,
			},
		},
		{
			name:       "no site code",
			unassigned: true,
			location:   "lowercase text",
			want: usecase.CheckPageOutput{
				Unassigned: true, Location: "lowercase text", HasLocation: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.setUnassigned(tt.unassigned)
			if tt.location != "" {
				page.setLocation(tt.location)
			}

			got := usecase.NewCheckPageUseCase(urgentRules()).Execute(testContext(), page)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckPageUseCase_NilRules(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	page.setLocation("STL5 - Dock 4")

	got := usecase.NewCheckPageUseCase(nil).Execute(testContext(), page)
	assert.Equal(t, entity.SiteCode("STL5"), got.SiteCode)
	assert.False(t, got.Urgent)
}

// inspectedPage adds whole-page diagnostics to fakePage.
type inspectedPage struct {
	*fakePage
	identity string
	body     string
	err      error
}

func (p *inspectedPage) Identity() (string, error) { return p.identity, p.err }
func (p *inspectedPage) BodyText() (string, error) { return p.body, p.err }

func TestCheckPageUseCase_ReportsUrgentCodeOutsideLocation(t *testing.T) {
	page := &inspectedPage{
		fakePage: newFakePage(),
		identity: "https://aap.example.com/wo/42",
		body:     "Unassigned\nYard Location\nRDU1 - PS552\nTransfer to STL5 requested\nRDU1",
	}
	page.setUnassigned(true)
	page.setLocation("RDU1 - PS552")

	got := usecase.NewCheckPageUseCase(urgentRules()).Execute(testContext(), page)

	assert.False(t, got.Urgent)
	assert.Equal(t, "https://aap.example.com/wo/42", got.Identity)
	assert.Equal(t, []entity.SiteCode{"RDU1", "STL5"}, got.PageCodes)
	assert.True(t, got.HasUrgentElsewhere)
	assert.Equal(t, entity.SiteCode("STL5"), got.UrgentElsewhere)
}

func TestCheckPageUseCase_InspectsAssignedPages(t *testing.T) {
	page := &inspectedPage{fakePage: newFakePage(), identity: "WO 42", body: "ACME Repairs\nMCO3 - X1"}

	got := usecase.NewCheckPageUseCase(urgentRules()).Execute(testContext(), page)

	assert.False(t, got.Unassigned)
	assert.Equal(t, []entity.SiteCode{"MCO3"}, got.PageCodes)
	assert.Equal(t, entity.SiteCode("MCO3"), got.UrgentElsewhere)
}

func TestCheckPageUseCase_InspectorError(t *testing.T) {
	page := &inspectedPage{fakePage: newFakePage(), err: errors.New("no document loaded")}
	page.setUnassigned(true)
	page.setLocation("STL5 - Dock 4")

	got := usecase.NewCheckPageUseCase(urgentRules()).Execute(testContext(), page)

	assert.True(t, got.Urgent)
	assert.Empty(t, got.Identity)
	assert.Empty(t, got.PageCodes)
	assert.False(t, got.HasUrgentElsewhere)
}
