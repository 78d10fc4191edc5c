package model

import (
	"regexp"

	"github.com/rotisserie/eris"
)

// BrandTarget is a named brand with two independent matchers: BrandKW
// identifies ownership of a row, ProdKW identifies the relevant product
// line within the brand. Matching is case-insensitive.
type BrandTarget struct {
	Name    string
	brandRE *regexp.Regexp
	prodRE  *regexp.Regexp
}

// NewBrandTarget compiles a brand target from keyword patterns.
func NewBrandTarget(name, brandKW, prodKW string) (BrandTarget, error) {
	brandRE, err := compileFold(brandKW)
	if err != nil {
		return BrandTarget{}, eris.Wrapf(err, "model: brand pattern for %s", name)
	}
	prodRE, err := compileFold(prodKW)
	if err != nil {
		return BrandTarget{}, eris.Wrapf(err, "model: product pattern for %s", name)
	}
	return BrandTarget{Name: name, brandRE: brandRE, prodRE: prodRE}, nil
}

// MatchBrand reports whether s matches the brand keyword. An empty
// string never matches.
func (t BrandTarget) MatchBrand(s string) bool {
	return s != "" && t.brandRE != nil && t.brandRE.MatchString(s)
}

// MatchProduct reports whether s matches the product-line keyword.
func (t BrandTarget) MatchProduct(s string) bool {
	return s != "" && t.prodRE != nil && t.prodRE.MatchString(s)
}

// AttributePattern is a named keyword matcher over free text. A text
// may match zero or more patterns; keywords within one pattern are
// alternates (logical OR in the regex).
type AttributePattern struct {
	Name string
	re   *regexp.Regexp
}

// NewAttributePattern compiles an attribute pattern.
func NewAttributePattern(name, pattern string) (AttributePattern, error) {
	re, err := compileFold(pattern)
	if err != nil {
		return AttributePattern{}, eris.Wrapf(err, "model: attribute pattern %s", name)
	}
	return AttributePattern{Name: name, re: re}, nil
}

// Match reports whether s contains the pattern. Empty text never
// matches but still counts toward prevalence denominators.
func (p AttributePattern) Match(s string) bool {
	return s != "" && p.re != nil && p.re.MatchString(s)
}

// PatternSet is an ordered list of attribute patterns. Insertion order
// is the stable tie-break when ranking by lift.
type PatternSet []AttributePattern

// HeroProduct identifies the analysis target product: the brand keyword
// must match the row's brand and every product keyword must match the
// goods name independently.
type HeroProduct struct {
	Name    string
	brandRE *regexp.Regexp
	prodREs []*regexp.Regexp
}

// NewHeroProduct compiles a hero product matcher.
func NewHeroProduct(name, brandKW string, productKWs []string) (HeroProduct, error) {
	brandRE, err := compileFold(brandKW)
	if err != nil {
		return HeroProduct{}, eris.Wrapf(err, "model: hero brand pattern %s", name)
	}
	h := HeroProduct{Name: name, brandRE: brandRE}
	for _, kw := range productKWs {
		re, err := compileFold(kw)
		if err != nil {
			return HeroProduct{}, eris.Wrapf(err, "model: hero product pattern %q", kw)
		}
		h.prodREs = append(h.prodREs, re)
	}
	return h, nil
}

// Match reports whether the row belongs to the hero product subset.
func (h HeroProduct) Match(brand, goods string) bool {
	if brand == "" || h.brandRE == nil || !h.brandRE.MatchString(brand) {
		return false
	}
	for _, re := range h.prodREs {
		if goods == "" || !re.MatchString(goods) {
			return false
		}
	}
	return true
}

// MatchBrand reports whether s matches the hero brand keyword alone.
func (h HeroProduct) MatchBrand(s string) bool {
	return s != "" && h.brandRE != nil && h.brandRE.MatchString(s)
}

// Tag is a named lifestyle category with plain-substring keywords.
// Keyword matching is case-folded, not regex.
type Tag struct {
	Name     string
	Keywords []string
}

// TagDictionary is an ordered list of lifestyle tags.
type TagDictionary []Tag

// Consolidation folds a target brand's product line into one canonical
// label for top-product rankings.
type Consolidation struct {
	Label   string
	brandRE *regexp.Regexp
	goodsRE *regexp.Regexp
}

// NewConsolidation compiles a product-line consolidation rule.
func NewConsolidation(label, brandKW, goodsKW string) (Consolidation, error) {
	brandRE, err := compileFold(brandKW)
	if err != nil {
		return Consolidation{}, eris.Wrapf(err, "model: consolidation brand pattern %s", label)
	}
	goodsRE, err := compileFold(goodsKW)
	if err != nil {
		return Consolidation{}, eris.Wrapf(err, "model: consolidation goods pattern %s", label)
	}
	return Consolidation{Label: label, brandRE: brandRE, goodsRE: goodsRE}, nil
}

// Match reports whether the row falls under this consolidation rule.
func (c Consolidation) Match(brand, goods string) bool {
	return brand != "" && goods != "" &&
		c.brandRE.MatchString(brand) && c.goodsRE.MatchString(goods)
}

// compileFold compiles a pattern with Unicode case-insensitive matching.
func compileFold(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}
