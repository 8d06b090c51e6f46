package plans

// Addon is a one-time report pack sold through Stripe checkout (mode=payment).
// The key and report quantity travel in the session metadata and are read back
// by the reconciler, so the catalog here only drives checkout creation.
type Addon struct {
	Key           string
	Name          string
	ReportCredits int
	PriceEUR      float64
	StripePriceID string
}

var addonCatalog = map[string]Addon{
	"reports_5": {
		Key:           "reports_5",
		Name:          "5 Report Pack",
		ReportCredits: 5,
		PriceEUR:      39,
	},
	"reports_10": {
		Key:           "reports_10",
		Name:          "10 Report Pack",
		ReportCredits: 10,
		PriceEUR:      69,
	},
	"reports_25": {
		Key:           "reports_25",
		Name:          "25 Report Pack",
		ReportCredits: 25,
		PriceEUR:      149,
	},
}

func AddonByKey(key string) (Addon, bool) {
	a, ok := addonCatalog[key]
	return a, ok
}

func Addons() []Addon {
	out := make([]Addon, 0, len(addonCatalog))
	for _, a := range addonCatalog {
		out = append(out, a)
	}
	return out
}
