package services

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// Content page slugs.
const (
	PageHome        = "home"
	PageTokenomics  = "tokenomics"
	PageTiers       = "tiers"
	PagePurplePaper = "purple-paper"
	PageLogos       = "logos"
)

// Allocations of the total supply, in percent.
var tokenAllocations = []business.ContentItem{
	{Label: "Staking rewards", Share: 35, Detail: "Emitted to lockers over time"},
	{Label: "Liquidity", Share: 25, Detail: "Paired on PulseX at launch"},
	{Label: "Community & ecosystem", Share: 15, Detail: "Grants, campaigns and integrations"},
	{Label: "Treasury", Share: 10, Detail: "Multisig controlled"},
	{Label: "Team", Share: 10, Detail: "12 month cliff, 24 month linear vest"},
	{Label: "Marketing", Share: 5, Detail: "Listings and partnerships"},
}

// StakingTiers are ordered by minimum stake.
var StakingTiers = []business.StakingTier{
	{Name: "Prelude", MinimumStake: 1_000, LockDays: 30, Multiplier: 1.0},
	{Name: "Sonata", MinimumStake: 10_000, LockDays: 90, Multiplier: 1.25},
	{Name: "Symphony", MinimumStake: 100_000, LockDays: 180, Multiplier: 1.5},
	{Name: "Magnum Opus", MinimumStake: 1_000_000, LockDays: 365, Multiplier: 2.0},
}

// ContentService serves the static informational pages.
type ContentService struct {
	pages map[string]*business.ContentPage
}

// NewContentService builds the page set.
func NewContentService() *ContentService {
	pages := []*business.ContentPage{
		homePage(),
		tokenomicsPage(),
		tiersPage(),
		purplePaperPage(),
		logosPage(),
	}
	s := &ContentService{pages: make(map[string]*business.ContentPage, len(pages))}
	for _, p := range pages {
		s.pages[p.Slug] = p
	}
	return s
}

// Page returns a copy of the page with the given slug.
func (s *ContentService) Page(slug string) (*business.ContentPage, error) {
	p, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	out := *p
	out.Sections = make([]business.ContentSection, len(p.Sections))
	for i, sec := range p.Sections {
		sec.Items = append([]business.ContentItem(nil), sec.Items...)
		out.Sections[i] = sec
	}
	return &out, nil
}

// Slugs lists the available pages.
func (s *ContentService) Slugs() []string {
	out := make([]string, 0, len(s.pages))
	for slug := range s.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

func homePage() *business.ContentPage {
	return &business.ContentPage{
		Slug:    PageHome,
		Title:   constants.TokenName,
		Summary: "A community token on PulseChain that rewards long-term holders who lock their stake.",
		Sections: []business.ContentSection{
			{
				Heading: "Features",
				Items: []business.ContentItem{
					{Label: "Time-locked staking", Detail: "Longer locks earn a higher reward multiplier"},
					{Label: "Transparent supply", Detail: "Fixed supply with on-chain allocations"},
					{Label: "Wallet dashboard", Detail: "Balances, stakes and locks in one view"},
				},
			},
			{
				Heading: "Token",
				Items: []business.ContentItem{
					{Label: "Symbol", Value: constants.TokenSymbol},
					{Label: "Decimals", Value: fmt.Sprint(constants.TokenDecimals)},
					{Label: "Network", Value: "PulseChain"},
				},
			},
		},
	}
}

func tokenomicsPage() *business.ContentPage {
	supply := float64(constants.FallbackTotalSupply)
	items := make([]business.ContentItem, len(tokenAllocations))
	for i, a := range tokenAllocations {
		a.Value = humanize.Commaf(supply*a.Share/100) + " " + constants.TokenSymbol
		items[i] = a
	}
	return &business.ContentPage{
		Slug:    PageTokenomics,
		Title:   "Tokenomics",
		Summary: fmt.Sprintf("Total supply of %s %s.", humanize.Comma(constants.FallbackTotalSupply), constants.TokenSymbol),
		Sections: []business.ContentSection{
			{Heading: "Allocation", Items: items},
		},
	}
}

func tiersPage() *business.ContentPage {
	items := make([]business.ContentItem, len(StakingTiers))
	for i, t := range StakingTiers {
		items[i] = business.ContentItem{
			Label:  t.Name,
			Value:  humanize.Commaf(t.MinimumStake) + " " + constants.TokenSymbol,
			Detail: fmt.Sprintf("%d day lock, %.2gx rewards", t.LockDays, t.Multiplier),
		}
	}
	return &business.ContentPage{
		Slug:    PageTiers,
		Title:   "Staking tiers",
		Summary: "Lock more for longer to move up a tier.",
		Sections: []business.ContentSection{
			{Heading: "Tiers", Items: items},
		},
	}
}

func purplePaperPage() *business.ContentPage {
	return &business.ContentPage{
		Slug:    PagePurplePaper,
		Title:   "Purple paper",
		Summary: "How OPUS staking works.",
		Sections: []business.ContentSection{
			{Heading: "Abstract", Body: "OPUS is a fixed-supply ERC-20 token. Holders lock tokens in the staking contract for a chosen period and accrue rewards from the staking allocation."},
			{Heading: "Locks", Body: "Each lock records an amount, a start time and an end time. Tokens cannot be withdrawn before the end time. An account may hold many locks."},
			{Heading: "Rewards", Body: "Rewards accrue per lock in proportion to amount, duration and tier multiplier, and are tracked through a reward debt on each position."},
			{Heading: "Statistics", Body: "Supply, holder and staking figures are read from the block explorer, the subgraph or the chain, in that order of preference."},
		},
	}
}

func logosPage() *business.ContentPage {
	return &business.ContentPage{
		Slug:    PageLogos,
		Title:   "Logo concepts",
		Summary: "Working concepts for the OPUS mark.",
		Sections: []business.ContentSection{
			{
				Heading: "Concepts",
				Items: []business.ContentItem{
					{Label: "Stave", Detail: "Five purple lines resolving into an O"},
					{Label: "Seal", Detail: "Circular wax seal with an embossed monogram"},
					{Label: "Crescendo", Detail: "Widening wedge rising left to right"},
				},
			},
		},
	}
}
