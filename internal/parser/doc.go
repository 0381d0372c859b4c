// Package parser declares the interface the Workspace Coordinator consumes
// to turn a blueprint's raw text into elements. The blueprint text grammar
// itself is an external collaborator out of scope for this module; this
// package only fixes the contract a real parser implementation must
// satisfy.
package parser
