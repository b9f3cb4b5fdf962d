package populate

import (
	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"
)

// Status is the terminal state of one unit of work.
type Status string

const (
	StatusCreated Status = "created"
	StatusExisted Status = "existed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Reason explains a skipped or failed unit, or a degraded success.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonExists            Reason = "exists"
	ReasonInvalidProduct    Reason = "invalid_product"
	ReasonLookupFailed      Reason = "lookup_failed"
	ReasonRelatedFailed     Reason = "related_failed"
	ReasonCreateFailed      Reason = "create_failed"
	ReasonDescriptionFailed Reason = "description_failed"
	ReasonImageFailed       Reason = "image_failed"
)

// RelatedOutcome is the result of ensuring one related entity.
type RelatedOutcome struct {
	Kind   models.Kind `json:"kind"`
	Name   string      `json:"name"`
	Status Status      `json:"status"`
	Reason Reason      `json:"reason,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// RelatedReport summarizes a related-entity pass over a batch.
type RelatedReport struct {
	Created  int              `json:"created"`
	Existing int              `json:"existing"`
	Failed   int              `json:"failed"`
	Failures []RelatedOutcome `json:"failures,omitempty"`
}

func (r *RelatedReport) add(o RelatedOutcome) {
	switch o.Status {
	case StatusCreated:
		r.Created++
	case StatusExisted:
		r.Existing++
	case StatusFailed:
		r.Failed++
		r.Failures = append(r.Failures, o)
	}
}

// GameOutcome is the result of materializing one product.
type GameOutcome struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	GameID uint   `json:"game_id,omitempty"`
	Status Status `json:"status"`
	Reason Reason `json:"reason,omitempty"` // skipped and failed only
	// Warnings lists what a created game was stored without.
	Warnings      []Reason `json:"warnings,omitempty"`
	Images        int      `json:"images"`
	ImageFailures int      `json:"image_failures"`
	Error         string   `json:"error,omitempty"`
}

func (o *GameOutcome) warn(r Reason) {
	for _, w := range o.Warnings {
		if w == r {
			return
		}
	}
	o.Warnings = append(o.Warnings, r)
}

// Totals counts game outcomes by status.
type Totals struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Report is the structured result of a populate run.
type Report struct {
	Fetched  int           `json:"fetched"`
	Selected int           `json:"selected"`
	Related  RelatedReport `json:"related"`
	Games    []GameOutcome `json:"games"`
	Totals   Totals        `json:"totals"`

	// Upstream is the unfiltered catalog response.
	Upstream *catalog.Page `json:"-"`
}

func (r *Report) tally() {
	r.Totals = Totals{}
	for _, g := range r.Games {
		switch g.Status {
		case StatusCreated:
			r.Totals.Created++
		case StatusSkipped:
			r.Totals.Skipped++
		case StatusFailed:
			r.Totals.Failed++
		}
	}
}
