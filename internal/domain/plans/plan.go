package plans

// Plan is one row of the fixed plan catalog. The same table backs the public
// pricing endpoint and checkout-session creation, so the price quoted to the
// browser is the price the customer is charged.
type Plan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	UnitAmount    int64  `json:"unitAmount"` // cents
	Currency      string `json:"currency"`
	Interval      string `json:"interval,omitempty"` // month|year, empty for one-time
	IntervalCount int64  `json:"intervalCount,omitempty"`
	Mode          string `json:"mode"` // subscription|payment
	TrialEligible bool   `json:"trialEligible"`
	IncludesVSA   bool   `json:"includesVSA"`
}

// Recurring reports whether the plan bills on an interval.
func (p Plan) Recurring() bool {
	return p.Mode == ModeSubscription
}

const (
	ModeSubscription = "subscription"
	ModePayment      = "payment"
)

// All is the closed plan set, ordered as the pricing page displays it.
var All = []Plan{
	{
		ID:            "3-months",
		Name:          "Wyckoff Pro - 3 Months",
		Description:   "Access to Wyckoff Structure + VSA Tom Williams for 3 months",
		UnitAmount:    23700, // $237 total ($79/month x 3)
		Currency:      "usd",
		Interval:      "month",
		IntervalCount: 3,
		Mode:          ModeSubscription,
		TrialEligible: true,
		IncludesVSA:   true,
	},
	{
		ID:            "6-months",
		Name:          "Wyckoff Pro - 6 Months",
		Description:   "Access to Wyckoff Structure + VSA Tom Williams for 6 months (Save 18%)",
		UnitAmount:    39000, // $390 total ($65/month x 6)
		Currency:      "usd",
		Interval:      "month",
		IntervalCount: 6,
		Mode:          ModeSubscription,
		TrialEligible: true,
		IncludesVSA:   true,
	},
	{
		ID:            "12-months",
		Name:          "Wyckoff Pro - 12 Months",
		Description:   "Access to Wyckoff Structure + VSA Tom Williams for 12 months (Save 38%)",
		UnitAmount:    58800, // $588 total ($49/month x 12)
		Currency:      "usd",
		Interval:      "year",
		IntervalCount: 1,
		Mode:          ModeSubscription,
		TrialEligible: true,
		IncludesVSA:   true,
	},
	{
		ID:          "lifetime",
		Name:        "Wyckoff Pro - Lifetime",
		Description: "Lifetime access to Wyckoff Structure + VSA Tom Williams",
		UnitAmount:  99700, // $997 one-time
		Currency:    "usd",
		Mode:        ModePayment,
		IncludesVSA: true,
	},
}

// ByID resolves a plan id against the catalog.
func ByID(id string) (Plan, bool) {
	for _, p := range All {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// IDs returns the catalog's plan ids, used to register the binding validator.
func IDs() []string {
	ids := make([]string, 0, len(All))
	for _, p := range All {
		ids = append(ids, p.ID)
	}
	return ids
}
