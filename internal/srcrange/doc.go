// Package srcrange defines the location types shared by the parser,
// merger, validator, and workspace. A SourceRange is a thin alias over
// hcl.Range so that every component already speaks the position vocabulary
// the wider HCL ecosystem uses, without this module depending on any
// particular grammar.
package srcrange
