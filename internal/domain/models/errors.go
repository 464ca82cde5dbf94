package models

import "errors"

// Pipeline and serving error taxonomy. Empty source data is not in this
// list on purpose: pipeline stages log it and return empty results so the
// caller can retry or skip.
var (
	// ErrEmptyDataset signals that no usable rows survived filtering.
	// Fatal to the pipeline run that raised it.
	ErrEmptyDataset = errors.New("no usable rows after filtering")

	// ErrContractNotFitted signals that a single-sample transform was
	// attempted before the feature contract was fitted.
	ErrContractNotFitted = errors.New("feature contract not fitted")

	// ErrModelNotLoaded signals that the serving layer has no trained
	// model available; surfaced to callers as service-unavailable.
	ErrModelNotLoaded = errors.New("model not loaded")
)
