package engine

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Network is a node-link graph with precomputed layout positions.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a positioned provider. Degree is its number of connections.
type Node struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Degree float64 `json:"degree"`
}

// Edge links two node ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NPIs are often exported as JSON numbers; ids accept both forms.

func (n *Node) UnmarshalJSON(data []byte) error {
	res, err := parseObject(data, "node")
	if err != nil {
		return err
	}
	*n = Node{
		ID:     idString(res.Get("id")),
		X:      res.Get("x").Float(),
		Y:      res.Get("y").Float(),
		Degree: res.Get("degree").Float(),
	}
	return nil
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	res, err := parseObject(data, "edge")
	if err != nil {
		return err
	}
	*e = Edge{Source: idString(res.Get("source")), Target: idString(res.Get("target"))}
	return nil
}

// NetworkFromJSON decodes {nodes, edges}; path selects a nested object.
func NetworkFromJSON(data []byte, path string) (Network, error) {
	var net Network
	if path != "" {
		if !gjson.ValidBytes(data) {
			return net, fmt.Errorf("invalid JSON document")
		}
		res := gjson.GetBytes(data, path)
		if !res.Exists() {
			return net, fmt.Errorf("path %q not found", path)
		}
		data = []byte(res.Raw)
	}
	if err := json.Unmarshal(data, &net); err != nil {
		return net, fmt.Errorf("decode network: %w", err)
	}
	return net, nil
}

func parseObject(data []byte, what string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid JSON %s", what)
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return gjson.Result{}, fmt.Errorf("%s must be a JSON object", what)
	}
	return res, nil
}

func idString(r gjson.Result) string {
	if r.Type == gjson.Number {
		return valueFromResult(r).String()
	}
	return r.String()
}
