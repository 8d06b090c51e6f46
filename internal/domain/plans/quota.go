package plans

// Plan labels resolved from the Stripe billing interval during sync.
const (
	PlanMonthly  = "Monthly Plan"
	PlanYearly   = "Yearly Plan"
	PlanLifetime = "Lifetime"
)

// MonthlyReportLimit is the per-period report quota for subscribers.
// Lifetime accounts are unlimited and never hit this path.
const MonthlyReportLimit = 30

// LabelForInterval maps a Stripe recurring interval to the internal plan
// label. Anything that is not yearly is treated as monthly.
func LabelForInterval(interval string) string {
	if interval == "year" {
		return PlanYearly
	}
	return PlanMonthly
}

// Unlimited reports whether a plan label bypasses the monthly quota.
func Unlimited(plan string) bool {
	return plan == PlanLifetime
}
