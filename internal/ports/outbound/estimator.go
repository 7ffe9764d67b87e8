package outbound

import "context"

// ItemDescription is the structured item view sent to the external estimator.
// Date fields are ISO dates; empty string means absent.
type ItemDescription struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	PurchaseDate   string   `json:"purchase_date,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	OpenedDate     string   `json:"opened_date,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Today          string   `json:"today"`
}

// RuleContext is the optional known-rule context passed alongside an item.
type RuleContext struct {
	SealedShelfLifeDays *int   `json:"sealed_shelf_life_days,omitempty"`
	OpenedShelfLifeDays *int   `json:"opened_shelf_life_days,omitempty"`
	StorageLocation     string `json:"storage_location,omitempty"`
	Freezable           *bool  `json:"freezable,omitempty"`
	StorageTips         string `json:"storage_tips,omitempty"`
}

// FreshnessEstimate is the structured reply from the external estimator.
type FreshnessEstimate struct {
	ItemID                  string  `json:"item_id,omitempty"`
	FreshnessStatus         string  `json:"freshness_status"`
	EffectiveExpirationDate string  `json:"effective_expiration_date"`
	Confidence              float64 `json:"confidence"`
	Reasoning               string  `json:"reasoning"`
	StorageTips             string  `json:"storage_tips"`
}

// FreshnessEstimator is the external AI collaborator. Implementations must
// tolerate the model wrapping its answer in prose or markdown fencing and
// fail closed when no structured payload can be extracted. Any returned error
// is recovered by the orchestrator; it never aborts a scan.
type FreshnessEstimator interface {
	// IsConfigured reports whether the estimator has credentials and may be
	// called at all.
	IsConfigured() bool
	EstimateFreshness(ctx context.Context, item ItemDescription, rule *RuleContext) (*FreshnessEstimate, error)
	EstimateFreshnessBatch(ctx context.Context, items []ItemDescription) ([]FreshnessEstimate, error)
}
