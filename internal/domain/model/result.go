// Package model contains domain models passed between layers.
package model

// CalculationResult is the record produced by a successful calculation.
// It is built per request and never stored.
type CalculationResult struct {
	Num1   float64 `json:"num1"`
	Num2   float64 `json:"num2"`
	Result float64 `json:"result"`
}
