package domain

import "time"

type TargetID string

// HeaderCheck requires a response header to carry an exact value.
// Header names are matched case-insensitively, values exactly.
type HeaderCheck struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Target is one URL under watch. Built once at load time and never
// mutated afterwards.
type Target struct {
	ID           TargetID     `json:"id"`
	URL          string       `json:"url"`
	Header       *HeaderCheck `json:"header,omitempty"`
	BodyContains string       `json:"body_contains,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
