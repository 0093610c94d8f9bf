// Package catalog holds the static product catalog consumed by the
// recommendation engine. The catalog is read-only configuration data:
// it is shared across all recommendation calls and never mutated by an
// analysis. Reloading (e.g. swapping in a different slice) is a
// between-calls operation owned by the caller.
package catalog

import "finsight/internal/models"

// Category separates investment products from insurance products.
type Category string

const (
	CategoryInvestment Category = "investment"
	CategoryInsurance  Category = "insurance"
)

// RiskBand grades a product's risk from very_low to high.
type RiskBand string

const (
	RiskBandVeryLow      RiskBand = "very_low"
	RiskBandLow          RiskBand = "low"
	RiskBandModerate     RiskBand = "moderate"
	RiskBandModerateHigh RiskBand = "moderate_high"
	RiskBandHigh         RiskBand = "high"
)

// Index returns the ordinal position of the band for distance comparisons.
func (b RiskBand) Index() int {
	switch b {
	case RiskBandVeryLow:
		return 0
	case RiskBandLow:
		return 1
	case RiskBandModerate:
		return 2
	case RiskBandModerateHigh:
		return 3
	case RiskBandHigh:
		return 4
	}
	return 2
}

// ReturnBand grades a product's expected return.
type ReturnBand string

const (
	ReturnBandLow    ReturnBand = "low"
	ReturnBandMedium ReturnBand = "medium"
	ReturnBandHigh   ReturnBand = "high"
)

// Product is a single catalog entry. MinInvestment is in cents.
type Product struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Category           Category               `json:"category"`
	Type               string                 `json:"type"`
	RiskBand           RiskBand               `json:"risk_band"`
	MinExperience      models.ExperienceLevel `json:"min_experience"`
	ExpectedReturnBand ReturnBand             `json:"expected_return_band"`
	ExpenseRatio       float64                `json:"expense_ratio"`
	MinInvestment      int64                  `json:"min_investment"`
	Liquidity          string                 `json:"liquidity"`
	GoalLabels         []string               `json:"goal_labels,omitempty"`
	Description        string                 `json:"description"`
}

// Default returns the built-in product catalog.
func Default() []Product {
	return defaultProducts
}

// Investments returns only the investment entries of the given catalog.
func Investments(products []Product) []Product {
	return filterCategory(products, CategoryInvestment)
}

// Insurance returns only the insurance entries of the given catalog.
func Insurance(products []Product) []Product {
	return filterCategory(products, CategoryInsurance)
}

func filterCategory(products []Product, category Category) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

var defaultProducts = []Product{
	{
		ID:                 "bond-total-market",
		Name:               "Total Bond Market ETF",
		Category:           CategoryInvestment,
		Type:               "Bond ETF",
		RiskBand:           RiskBandLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		ExpenseRatio:       0.03,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Broad exposure to U.S. investment-grade bonds",
	},
	{
		ID:                 "hy-savings",
		Name:               "High-Yield Savings Account",
		Category:           CategoryInvestment,
		Type:               "Cash Equivalent",
		RiskBand:           RiskBandVeryLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		ExpenseRatio:       0,
		MinInvestment:      100,
		Liquidity:          "Very High",
		GoalLabels:         []string{"Emergency Fund"},
		Description:        "FDIC insured savings with competitive interest rates",
	},
	{
		ID:                 "tips",
		Name:               "Treasury Inflation-Protected Securities",
		Category:           CategoryInvestment,
		Type:               "Government Bond",
		RiskBand:           RiskBandLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		ExpenseRatio:       0,
		MinInvestment:      10000,
		Liquidity:          "High",
		Description:        "Government bonds that adjust for inflation",
	},
	{
		ID:                 "target-retirement",
		Name:               "Target Retirement Fund",
		Category:           CategoryInvestment,
		Type:               "Target Date Fund",
		RiskBand:           RiskBandModerate,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandMedium,
		ExpenseRatio:       0.15,
		MinInvestment:      100000,
		Liquidity:          "High",
		GoalLabels:         []string{"Retirement Planning"},
		Description:        "Age-appropriate asset allocation that adjusts over time",
	},
	{
		ID:                 "total-stock-market",
		Name:               "Total Stock Market ETF",
		Category:           CategoryInvestment,
		Type:               "Stock ETF",
		RiskBand:           RiskBandModerateHigh,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandMedium,
		ExpenseRatio:       0.03,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Complete exposure to the U.S. stock market",
	},
	{
		ID:                 "sp500-index",
		Name:               "Core S&P 500 ETF",
		Category:           CategoryInvestment,
		Type:               "Stock ETF",
		RiskBand:           RiskBandModerateHigh,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandMedium,
		ExpenseRatio:       0.03,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Tracks the S&P 500 index",
	},
	{
		ID:                 "balanced-conservative",
		Name:               "Conservative Balanced Fund",
		Category:           CategoryInvestment,
		Type:               "Mixed Portfolio",
		RiskBand:           RiskBandLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		ExpenseRatio:       0.12,
		MinInvestment:      50000,
		Liquidity:          "High",
		GoalLabels:         []string{"Home Purchase"},
		Description:        "Capital preservation mix of bonds with a modest stock sleeve",
	},
	{
		ID:                 "growth-large-cap",
		Name:               "Large-Cap Growth ETF",
		Category:           CategoryInvestment,
		Type:               "Growth Stock ETF",
		RiskBand:           RiskBandHigh,
		MinExperience:      models.ExperienceIntermediate,
		ExpectedReturnBand: ReturnBandHigh,
		ExpenseRatio:       0.04,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Large-cap growth stocks with high growth potential",
	},
	{
		ID:                 "small-cap",
		Name:               "Small-Cap ETF",
		Category:           CategoryInvestment,
		Type:               "Small-Cap ETF",
		RiskBand:           RiskBandHigh,
		MinExperience:      models.ExperienceIntermediate,
		ExpectedReturnBand: ReturnBandHigh,
		ExpenseRatio:       0.05,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Small-capitalization U.S. stocks",
	},
	{
		ID:                 "emerging-markets",
		Name:               "Emerging Markets ETF",
		Category:           CategoryInvestment,
		Type:               "International ETF",
		RiskBand:           RiskBandHigh,
		MinExperience:      models.ExperienceAdvanced,
		ExpectedReturnBand: ReturnBandHigh,
		ExpenseRatio:       0.10,
		MinInvestment:      100,
		Liquidity:          "High",
		Description:        "Exposure to emerging market economies",
	},
	{
		ID:                 "term-life",
		Name:               "Term Life Insurance",
		Category:           CategoryInsurance,
		Type:               "Term Life",
		RiskBand:           RiskBandVeryLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		Liquidity:          "N/A",
		Description:        "Temporary coverage with lower premiums, typically 10-30 year terms",
	},
	{
		ID:                 "whole-life",
		Name:               "Whole Life Insurance",
		Category:           CategoryInsurance,
		Type:               "Permanent Life",
		RiskBand:           RiskBandLow,
		MinExperience:      models.ExperienceIntermediate,
		ExpectedReturnBand: ReturnBandLow,
		Liquidity:          "Low",
		Description:        "Permanent coverage with a cash value component",
	},
	{
		ID:                 "disability-short",
		Name:               "Short-Term Disability Insurance",
		Category:           CategoryInsurance,
		Type:               "Disability",
		RiskBand:           RiskBandVeryLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		Liquidity:          "N/A",
		Description:        "Covers temporary inability to work, typically 3-12 months",
	},
	{
		ID:                 "disability-long",
		Name:               "Long-Term Disability Insurance",
		Category:           CategoryInsurance,
		Type:               "Disability",
		RiskBand:           RiskBandVeryLow,
		MinExperience:      models.ExperienceBeginner,
		ExpectedReturnBand: ReturnBandLow,
		Liquidity:          "N/A",
		Description:        "Covers extended inability to work until retirement age",
	},
}
