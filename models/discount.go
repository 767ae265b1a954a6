package models

// Discount is keyed by its uppercase code. UsageCount only ever goes up;
// cancelled orders do not give a redemption back.
type Discount struct {
	Code       string `bson:"_id" json:"code"`
	Percent    int    `bson:"percent" json:"percent"`
	UsageCount int    `bson:"usageCount" json:"usageCount"`
}
