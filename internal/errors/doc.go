// Package errors provides coded, categorised errors for hyperoop.
//
// Every failure the library surfaces carries a short code (e.g. "E001") that
// maps to a registered message and explanation. Callers can match codes with
// HasCode and render a terminal-friendly report with Format.
//
// # Error Categories
//
//   - patch: the reconciliation engine received trees it cannot reconcile
//   - markup: pre-rendered markup could not be parsed
//   - snapshot: the snapshot store failed or has no such snapshot
//   - config: hyperoop.json could not be loaded or is invalid
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("old node is an element, new node is text").
//	    WithSuggestion("Return the same node kind from the view for this slot")
//
//	fmt.Println(err.Format())
package errors
