package planner

import (
	"encoding/json"
	"fmt"
)

// Encode serializes the plan payload in the persisted shape:
//
//	{"plan":[{"day":1,"title":"...","match":0.5}, ...],"candidates":[{"title":"...","score":0.5}, ...]}
//
// WeekStart is intentionally not part of the payload; it lives in its own
// column next to it.
func (p *Plan) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses a stored payload back into a Plan and checks the shape
// invariants: exactly 7 entries with strictly increasing day numbers and
// match scores in [0,1]. Payloads written by Generate always pass; anything
// else was corrupted upstream.
func Decode(payload []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode plan payload: %w", err)
	}
	if len(p.Days) != DaysPerWeek {
		return nil, fmt.Errorf("decode plan payload: expected %d days, got %d", DaysPerWeek, len(p.Days))
	}
	for i, e := range p.Days {
		if e.Day != i+1 {
			return nil, fmt.Errorf("decode plan payload: day %d out of order at position %d", e.Day, i)
		}
		if e.Match < 0 || e.Match > 1 {
			return nil, fmt.Errorf("decode plan payload: match %g out of range on day %d", e.Match, e.Day)
		}
	}
	if p.Candidates == nil {
		p.Candidates = make([]Candidate, 0)
	}
	return &p, nil
}
