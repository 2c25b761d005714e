// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	GetGraph(http.ResponseWriter, *http.Request)
	GetNode(http.ResponseWriter, *http.Request)
	ComputeFloodFill(http.ResponseWriter, *http.Request)
	ComputeIsochrone(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	GetGraph(context.Context) (ImplResponse, error)
	GetNode(context.Context, int64) (ImplResponse, error)
	ComputeFloodFill(context.Context, FloodFillRequest) (ImplResponse, error)
	ComputeIsochrone(context.Context, IsochroneRequest) (ImplResponse, error)
}
