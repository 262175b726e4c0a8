package models

// InfluencerProfile is one creator on the campaign roster.
type InfluencerProfile struct {
	Name                  string  `json:"name" yaml:"name" mapstructure:"name"`
	FollowerCount         int64   `json:"follower_count" yaml:"follower_count" mapstructure:"follower_count"`
	EngagementRatePercent float64 `json:"engagement_rate" yaml:"engagement_rate" mapstructure:"engagement_rate"`
	AverageViews          int64   `json:"average_views" yaml:"average_views" mapstructure:"average_views"`
	CostPerVideo          float64 `json:"cost_per_video" yaml:"cost_per_video" mapstructure:"cost_per_video"`
}

// OwnedChannelProfile is the historical performance of the brand's own channels.
type OwnedChannelProfile struct {
	AverageReach             float64 `json:"average_reach" yaml:"average_reach"`
	AverageEngagementPercent float64 `json:"average_engagement" yaml:"average_engagement"`
}

// StrategyFigures are the raw numbers behind the formatted outputs.
type StrategyFigures struct {
	InvestmentWeightingFactor     float64  `json:"investment_weighting_factor" yaml:"investment_weighting_factor"`
	TotalPotentialReach           int64    `json:"total_potential_reach" yaml:"total_potential_reach"`
	TotalProjectedEngagedAudience float64  `json:"total_projected_engaged_audience" yaml:"total_projected_engaged_audience"`
	AverageCPV                    *float64 `json:"average_cpv" yaml:"average_cpv"`
	CPVInfluencers                int      `json:"cpv_influencers" yaml:"cpv_influencers"`
	OwnedChannelAverageReach      float64  `json:"owned_channel_average_reach" yaml:"owned_channel_average_reach"`
	OwnedChannelEngagementPercent float64  `json:"owned_channel_engagement_percent" yaml:"owned_channel_engagement_percent"`
}

// LabeledValue is one display row of the calculated outputs.
type LabeledValue struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// PrioritizedMetric annotates a selected metric with its category and priority.
type PrioritizedMetric struct {
	Metric   string   `json:"metric" yaml:"metric"`
	Category Category `json:"category" yaml:"category"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// ConsiderationKind is the severity of an advisory note.
type ConsiderationKind string

const (
	ConsiderationWarning ConsiderationKind = "Warning"
	ConsiderationInfo    ConsiderationKind = "Info"
)

// Consideration is one advisory note in a strategy profile.
type Consideration struct {
	Rule string            `json:"rule" yaml:"rule"`
	Kind ConsiderationKind `json:"type" yaml:"type"`
	Text string            `json:"text" yaml:"text"`
}

// StrategyProfile is the output of the strategy step.
type StrategyProfile struct {
	Figures                 StrategyFigures     `json:"figures" yaml:"figures"`
	CalculatedOutputs       []LabeledValue      `json:"calculated_outputs" yaml:"calculated_outputs"`
	PrioritizedMetrics      []PrioritizedMetric `json:"prioritized_metrics" yaml:"prioritized_metrics"`
	StrategicConsiderations []Consideration     `json:"strategic_considerations" yaml:"strategic_considerations"`
}
