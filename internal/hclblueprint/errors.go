package hclblueprint

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/saltoio/salto-core/internal/parser"
)

func diagToError(d *hcl.Diagnostic) parser.Error {
	var rng hcl.Range
	if d.Subject != nil {
		rng = *d.Subject
	}
	return parser.Error{Subject: rng, Detail: d.Summary + ": " + d.Detail}
}

func diagsToErrors(diags hcl.Diagnostics) []parser.Error {
	if len(diags) == 0 {
		return nil
	}
	errs := make([]parser.Error, 0, len(diags))
	for _, d := range diags {
		errs = append(errs, diagToError(d))
	}
	return errs
}
