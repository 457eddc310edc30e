package pet

// CareQuality is a smoothed history of how well the pet has been kept.
type CareQuality struct {
	FeedingScore     float64 `json:"feedingScore"`
	HappinessScore   float64 `json:"happinessScore"`
	HealthScore      float64 `json:"healthScore"`
	InteractionCount int     `json:"interactionCount"`
}

// Update folds the current vitals into the moving averages.
func (c CareQuality) Update(s Stats) CareQuality {
	c.FeedingScore = ema(c.FeedingScore, MaxStat-s.Hunger)
	c.HappinessScore = ema(c.HappinessScore, s.Happiness)
	c.HealthScore = ema(c.HealthScore, s.Health)
	return c
}

// RecordInteraction counts one owner action. Passive ticks never call this.
func (c CareQuality) RecordInteraction() CareQuality {
	c.InteractionCount++
	return c
}

// OverallAverage returns the mean of the three scores.
func (c CareQuality) OverallAverage() float64 {
	return (c.FeedingScore + c.HappinessScore + c.HealthScore) / 3
}

func ema(score, sample float64) float64 {
	return clamp(score*(1-CareSmoothing) + sample*CareSmoothing)
}
