package api

import "github.com/ArthurEly/finn-old/internal/threshold"

// DeriveResponse is the full derived view of one operator description.
type DeriveResponse struct {
	ID       string            `json:"id"`
	Object   string            `json:"object"`
	Operator threshold.Attrs   `json:"operator"`
	Derived  threshold.Derived `json:"derived"`
}

type ResponseError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
