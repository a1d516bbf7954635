package model

import "golang.org/x/xerrors"

/*
Error taxonomy for the whole pipeline. Every error is a configuration
or data-quality problem surfaced directly to the caller; nothing is
retriable. Callers discriminate with xerrors.Is.
*/
var (
	// ErrInvalidSpec marks a specification referencing an unknown
	// column or a non-binary outcome.
	ErrInvalidSpec = xerrors.New("invalid model specification")

	// ErrInsufficientData marks a degenerate fit: a constant design
	// column or a singular/non-converging system on the given rows.
	ErrInsufficientData = xerrors.New("insufficient data for fit")

	// ErrNoCandidates marks a comparison or selection over an empty
	// spec set.
	ErrNoCandidates = xerrors.New("no candidate specifications")
)
