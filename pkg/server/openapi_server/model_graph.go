package openapi_server

type GraphInfo struct {
	Nodes       int  `json:"nodes"`
	Edges       int  `json:"edges"`
	MaxEdgeCost int  `json:"maxEdgeCost"`
	Coordinates bool `json:"coordinates"`
}

type Node struct {
	Id    uint32     `json:"id"`
	Point *Point     `json:"point,omitempty"`
	Edges []NodeCost `json:"edges"`
}
