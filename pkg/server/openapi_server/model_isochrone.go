// SPDX-License-Identifier: MIT

package openapi_server

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type IsochroneRequest struct {
	Point     *Point `json:"point"`
	TimeLimit *int   `json:"timeLimit,omitempty"`
}

// AssertPointRequired checks if the required fields are not zero-ed
func AssertPointRequired(obj Point) error {
	if obj.Lat < -90 || obj.Lat > 90 || obj.Lon < -180 || obj.Lon > 180 {
		return &ParsingError{Err: errInvalidPoint}
	}
	return nil
}

func AssertIsochroneRequestRequired(obj IsochroneRequest) error {
	elements := map[string]interface{}{
		"point": obj.Point,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return AssertPointRequired(*obj.Point)
}
