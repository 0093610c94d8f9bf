package analytics

import (
	"errors"
	"reflect"
	"testing"

	"finsight/internal/catalog"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
)

func TestRecommend_InvalidType(t *testing.T) {
	a := DefaultAssumptions()
	_, err := Recommend(baselineProfile(), "astrology", catalog.Default(), nil, a)
	if !errors.Is(err, apperrors.ErrInvalidRecommendationType) {
		t.Fatalf("expected ErrInvalidRecommendationType, got %v", err)
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	a := DefaultAssumptions()
	set, err := Recommend(baselineProfile(), RecommendInvestment, nil, nil, a)
	if err != nil {
		t.Fatalf("empty catalog should not error, got %v", err)
	}
	if len(set.Investments) != 0 {
		t.Errorf("expected no recommendations, got %d", len(set.Investments))
	}
	if len(set.Diagnostics) == 0 {
		t.Error("expected a diagnostic about the empty catalog")
	}
}

func TestRecommend_ExperienceCap(t *testing.T) {
	a := DefaultAssumptions()
	beginner := baselineProfile()
	beginner.InvestmentExperience = models.ExperienceBeginner

	set, err := Recommend(beginner, RecommendInvestment, catalog.Default(), nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Investments) == 0 {
		t.Fatal("expected recommendations for a beginner")
	}
	for _, rec := range set.Investments {
		if experienceIndex(rec.Product.MinExperience) > experienceIndex(beginner.InvestmentExperience) {
			t.Errorf("%s requires %s experience, above the profile's level", rec.Product.Name, rec.Product.MinExperience)
		}
	}
}

func TestRecommend_ContentScoring(t *testing.T) {
	a := DefaultAssumptions()

	t.Run("conservative profile leads with low-risk products", func(t *testing.T) {
		p := baselineProfile()
		p.Age = 55
		p.RiskTolerance = models.RiskToleranceConservative

		set, err := Recommend(p, RecommendInvestment, catalog.Default(), nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		top := set.Investments[0].Product
		if top.RiskBand.Index() > catalog.RiskBandModerate.Index() {
			t.Errorf("top pick %s has risk band %s, too high for the profile", top.Name, top.RiskBand)
		}
	})

	t.Run("young aggressive profile leads with growth products", func(t *testing.T) {
		p := baselineProfile()
		p.Age = 25
		p.RiskTolerance = models.RiskToleranceAggressive
		p.InvestmentExperience = models.ExperienceAdvanced

		set, err := Recommend(p, RecommendInvestment, catalog.Default(), nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		top := set.Investments[0].Product
		if top.RiskBand.Index() < catalog.RiskBandModerateHigh.Index() {
			t.Errorf("top pick %s has risk band %s, too tame for the profile", top.Name, top.RiskBand)
		}
	})

	t.Run("scores stay within bounds and ranked", func(t *testing.T) {
		set, err := Recommend(baselineProfile(), RecommendInvestment, catalog.Default(), nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(set.Investments) > a.Recommend.TopN {
			t.Errorf("got %d recommendations, want at most %d", len(set.Investments), a.Recommend.TopN)
		}
		prev := 1.1
		for _, rec := range set.Investments {
			if rec.Score < 0 || rec.Score > 1 {
				t.Errorf("%s score %v out of [0,1]", rec.Product.Name, rec.Score)
			}
			if rec.Score > prev {
				t.Error("recommendations are not ranked by score")
			}
			prev = rec.Score
		}
	})
}

func TestRecommend_CollaborativePath(t *testing.T) {
	a := DefaultAssumptions()
	profile := baselineProfile()
	peers := peerProfiles()

	set, err := Recommend(profile, RecommendInvestment, catalog.Default(), peers, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Segment == nil {
		t.Fatal("expected a segment assignment with enough peers")
	}

	// Determinism: the same peers and profile always give the same set.
	again, err := Recommend(profile, RecommendInvestment, catalog.Default(), peers, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(set, again) {
		t.Error("identical inputs should produce identical recommendation sets")
	}

	// Too few peers skips collaborative filtering entirely.
	sparse, err := Recommend(profile, RecommendInvestment, catalog.Default(), peers[:2], a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sparse.Segment != nil {
		t.Error("expected no segment with too few peers")
	}
}

func TestRecommend_Insurance(t *testing.T) {
	a := DefaultAssumptions()

	p := baselineProfile()
	p.Age = 32
	set, err := Recommend(p, RecommendInsurance, catalog.Default(), nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Insurance) == 0 {
		t.Fatal("expected insurance recommendations")
	}
	if set.Investments != nil {
		t.Error("insurance-only request should not include investments")
	}
	// A young earner's top pick is term life over permanent coverage.
	if set.Insurance[0].Product.Type != "Term Life" && set.Insurance[0].Product.Type != "Disability" {
		t.Errorf("unexpected top insurance pick %s", set.Insurance[0].Product.Name)
	}
}

func TestRecommend_Comprehensive(t *testing.T) {
	a := DefaultAssumptions()
	set, err := Recommend(baselineProfile(), RecommendComprehensive, catalog.Default(), nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Investments) == 0 || len(set.Insurance) == 0 {
		t.Error("comprehensive set should include both categories")
	}
	if set.Portfolio == nil {
		t.Fatal("expected portfolio suggestions")
	}
	alloc := set.Portfolio.AssetAllocation
	if alloc["stocks"]+alloc["bonds"]+alloc["cash"] != 100 {
		t.Errorf("asset allocation should sum to 100, got %v", alloc)
	}
	if len(set.NextSteps) == 0 {
		t.Error("expected next steps")
	}
}
