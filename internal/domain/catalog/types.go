package catalog

// RateType distinguishes how a reward rate is denominated. Rates of
// different types still compete on their raw numeric value; the type is
// carried through so callers can render the difference.
type RateType string

const (
	RatePercent          RateType = "percent"
	RatePointsMultiplier RateType = "points_multiplier"
)

// RewardRate is the reward a card pays for one spend category.
type RewardRate struct {
	Rate      float64  `yaml:"rate"`
	Type      RateType `yaml:"type"`
	Notes     string   `yaml:"notes"`
	Merchants []string `yaml:"merchants"`
}

// Partnership is a named merchant-specific bonus distinct from the
// card's general category rates.
type Partnership struct {
	RewardRate float64  `yaml:"reward_rate"`
	Benefits   []string `yaml:"benefits"`
	Merchants  []string `yaml:"merchants"`
}

// CardProfile is the reference data for one card product. Profiles are
// immutable once loaded into a Catalog.
type CardProfile struct {
	CardName     string                 `yaml:"card_name"`
	Issuer       string                 `yaml:"issuer"`
	Network      string                 `yaml:"network"`
	CardTypes    []string               `yaml:"card_types"`
	RewardRates  map[string]RewardRate  `yaml:"reward_rates"`
	Partnerships map[string]Partnership `yaml:"partnerships"`
	Fees         string                 `yaml:"fees"`
	Suitability  string                 `yaml:"suitability"`
}
