package model

import "github.com/jsphweid/ams/diag"

type Diagnostic struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
}

func NewDiagnostics(list diag.List) []Diagnostic {
	res := make([]Diagnostic, 0, len(list))
	for _, e := range list {
		res = append(res, Diagnostic{
			Kind:    string(e.Kind),
			Line:    e.Line,
			Source:  e.Source,
			Message: e.Message,
		})
	}
	return res
}

type CheckResponse struct {
	Ok       bool         `json:"ok"`
	Segments int          `json:"segments"`
	Errors   []Diagnostic `json:"errors"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error  string       `json:"detail"`
	Errors []Diagnostic `json:"errors,omitempty"`
}
