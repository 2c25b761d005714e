// SPDX-License-Identifier: MIT

package openapi_server

type FloodFillRequest struct {
	Origin    *int64 `json:"origin"`
	TimeLimit *int   `json:"timeLimit,omitempty"` // seconds, defaults to one hour
}

type NodeCost struct {
	Node uint32 `json:"node"`
	Cost int    `json:"cost"`
}

type FloodFillResult struct {
	Origin    uint32     `json:"origin"`
	TimeLimit int        `json:"timeLimit"`
	Reached   int        `json:"reached"`
	Costs     []NodeCost `json:"costs"`
}

// AssertFloodFillRequestRequired checks if the required fields are not zero-ed
func AssertFloodFillRequestRequired(obj FloodFillRequest) error {
	if obj.Origin == nil {
		return &RequiredError{Field: "origin"}
	}
	if *obj.Origin < 0 {
		return &ParsingError{Err: errNegativeOrigin}
	}
	return nil
}
