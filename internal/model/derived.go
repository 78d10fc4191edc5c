package model

import "time"

// LiftRecord compares an attribute's prevalence between two cohorts.
// Ratio is LoyalRate/ChurnRate; when ChurnRate is 0 the ratio is
// clamped to 0 and Defined is false so callers can distinguish "no
// effect" from "no data in the denominator cohort".
type LiftRecord struct {
	Name      string  `json:"name"`
	LoyalRate float64 `json:"loyal_rate"`
	ChurnRate float64 `json:"churn_rate"`
	Ratio     float64 `json:"ratio"`
	Gap       float64 `json:"gap"`
	Defined   bool    `json:"defined"`
}

// CohortSet partitions user IDs by interaction count within a brand
// scope. One/Two/ThreePlus are mutually exclusive; TwoPlus is the union
// of Two and ThreePlus. All slices are sorted for determinism.
type CohortSet struct {
	Brand     string   `json:"brand"`
	One       []string `json:"one"`
	Two       []string `json:"two"`
	TwoPlus   []string `json:"two_plus"`
	ThreePlus []string `json:"three_plus"`
}

// Empty reports whether no user interacted with the brand at all.
func (c CohortSet) Empty() bool {
	return len(c.One) == 0 && len(c.TwoPlus) == 0
}

// JourneyEdge links an event to the brands a user interacted with
// immediately before and after it in time order. PrevBrand/NextBrand
// are empty at the ends of a user's history.
type JourneyEdge struct {
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Brand     string    `json:"brand"`
	GoodsName string    `json:"goods_name"`
	PrevBrand string    `json:"prev_brand,omitempty"`
	PrevGoods string    `json:"prev_goods,omitempty"`
	NextBrand string    `json:"next_brand,omitempty"`
	NextGoods string    `json:"next_goods,omitempty"`
}

// FlowCount is one adjacent brand with its switch frequency.
type FlowCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// ProductCount is one product name with its purchase frequency.
type ProductCount struct {
	GoodsName string `json:"goods_name"`
	Count     int    `json:"count"`
}

// BasketBucket names a purchase-frequency group.
type BasketBucket string

const (
	BucketOne       BasketBucket = "one"        // exactly one purchase: churned/trial
	BucketTwo       BasketBucket = "two"        // exactly two: repeat
	BucketThreePlus BasketBucket = "three_plus" // three or more: loyal
)

// BasketRanking ranks the other-brand items one frequency bucket buys.
type BasketRanking struct {
	Bucket BasketBucket   `json:"bucket"`
	Users  int            `json:"users"`
	Items  []ProductCount `json:"items"`
}

// TagLift is one lifestyle tag's loyal-vs-churn comparison. Rates are
// percentages in [0, 100].
type TagLift struct {
	Name      string  `json:"name"`
	LoyalRate float64 `json:"loyal_rate"`
	ChurnRate float64 `json:"churn_rate"`
	Lift      float64 `json:"lift"`
	Gap       float64 `json:"gap"`
	Defined   bool    `json:"defined"`
}

// AhaResult is the lifestyle cross-tabulation output: per-tag lift
// ranked descending plus the counts behind it and a generated
// recommendation driven by the top tag.
type AhaResult struct {
	Tags           []TagLift `json:"tags"`
	LoyalUsers     int       `json:"loyal_users"`
	ChurnUsers     int       `json:"churn_users"`
	CrossBuyers    int       `json:"cross_buyers"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// ShareRow is one brand's share of the target market in one month.
type ShareRow struct {
	Month string  `json:"month"` // YYYY-MM
	Brand string  `json:"brand"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // percent of the month's target-market events
}

// VoiceRow compares one complaint keyword's prevalence between churned
// and loyal reviewers. Rates are percentages.
type VoiceRow struct {
	Keyword   string  `json:"keyword"`
	ChurnRate float64 `json:"churn_rate"`
	LoyalRate float64 `json:"loyal_rate"`
	Gap       float64 `json:"gap"`
}

// SkinType is a normalized skin classification parsed from the
// free-text skin_info field.
type SkinType string

const (
	SkinDry         SkinType = "dry"
	SkinOily        SkinType = "oily"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
	SkinOther       SkinType = "other"
)

// SkinRow is one brand's share of reviewers with a given skin type.
type SkinRow struct {
	Brand string   `json:"brand"`
	Skin  SkinType `json:"skin"`
	Pct   float64  `json:"pct"`
}

// AttributeProfile holds one brand's attribute prevalence among repeat
// purchasers, as percentages, in pattern-dictionary order.
type AttributeProfile struct {
	Brand string             `json:"brand"`
	Rates map[string]float64 `json:"rates"`
}
