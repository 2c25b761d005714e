package openapi_server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"GetGraph",
			strings.ToUpper("Get"),
			"/graph",
			c.GetGraph,
		},
		{
			"GetNode",
			strings.ToUpper("Get"),
			"/nodes/{nodeId}",
			c.GetNode,
		},
		{
			"ComputeFloodFill",
			strings.ToUpper("Post"),
			"/floodfill",
			c.ComputeFloodFill,
		},
		{
			"ComputeIsochrone",
			strings.ToUpper("Post"),
			"/isochrone",
			c.ComputeIsochrone,
		},
	}
}

// GetGraph - Describe the loaded graph
func (c *DefaultApiController) GetGraph(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetGraph(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCorsHeaders(w, "GET")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetNode - Get a node and its outgoing edges
func (c *DefaultApiController) GetNode(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	nodeIdParam, err := strconv.ParseInt(params["nodeId"], 10, 64)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.GetNode(r.Context(), nodeIdParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	setCorsHeaders(w, "GET")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeFloodFill - Compute the travel time to every node reachable within the time limit
func (c *DefaultApiController) ComputeFloodFill(w http.ResponseWriter, r *http.Request) {
	floodFillRequestParam := FloodFillRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&floodFillRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertFloodFillRequestRequired(floodFillRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeFloodFill(r.Context(), floodFillRequestParam)
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCorsHeaders(w, "POST")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeIsochrone - Compute the reachable area around a position as GeoJSON
func (c *DefaultApiController) ComputeIsochrone(w http.ResponseWriter, r *http.Request) {
	isochroneRequestParam := IsochroneRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&isochroneRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertIsochroneRequestRequired(isochroneRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeIsochrone(r.Context(), isochroneRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	setCorsHeaders(w, "POST")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func setCorsHeaders(w http.ResponseWriter, method string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
