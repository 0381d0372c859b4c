// Package validator walks a merged, resolved element set and reports
// structural and reference problems as classified ValidationError values.
// It never mutates the elements it visits.
package validator
