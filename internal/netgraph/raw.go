package netgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RawGraph is a graph as supplied by an external producer. Nodes and Links
// stay nil when the source did not carry an array for them.
type RawGraph struct {
	Nodes []RawNode `json:"nodes"`
	Links []RawLink `json:"links"`
}

// RawNode is a loosely shaped node. Elements that are not objects decode to
// the zero value and are ignored by NormalizeGraph.
type RawNode struct {
	ID     string   `json:"id"`
	Radius *float64 `json:"radius,omitempty"`
	Group  *string  `json:"group,omitempty"`
}

// RawLink is a loosely shaped link. Value and Strength hold whatever the
// producer sent (number or numeric string); nil means absent.
type RawLink struct {
	Source   Endpoint `json:"source"`
	Target   Endpoint `json:"target"`
	Value    any      `json:"value,omitempty"`
	Strength any      `json:"strength,omitempty"`
	Type     any      `json:"type,omitempty"`
}

// DecodeRawGraph parses JSON into a RawGraph. A JSON null yields nil.
func DecodeRawGraph(data []byte) (*RawGraph, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var g RawGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return &g, nil
}

func (g *RawGraph) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*g = RawGraph{}
	if raw, ok := fields["nodes"]; ok && jsonKind(raw) == '[' {
		g.Nodes = []RawNode{}
		if err := json.Unmarshal(raw, &g.Nodes); err != nil {
			return fmt.Errorf("nodes: %w", err)
		}
	}
	if raw, ok := fields["links"]; ok && jsonKind(raw) == '[' {
		g.Links = []RawLink{}
		if err := json.Unmarshal(raw, &g.Links); err != nil {
			return fmt.Errorf("links: %w", err)
		}
	}
	return nil
}

func (n *RawNode) UnmarshalJSON(b []byte) error {
	*n = RawNode{}
	if jsonKind(b) != '{' {
		return nil
	}
	var aux struct {
		ID     Identifier  `json:"id"`
		Radius any         `json:"radius"`
		Group  *Identifier `json:"group"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	n.ID = string(aux.ID)
	if r, ok := Coerce(aux.Radius); ok {
		n.Radius = &r
	}
	if aux.Group != nil {
		n.Group = strPtr(string(*aux.Group))
	}
	return nil
}

func (l *RawLink) UnmarshalJSON(b []byte) error {
	*l = RawLink{}
	if jsonKind(b) != '{' {
		return nil
	}
	type plain RawLink
	var aux plain
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	*l = RawLink(aux)
	return nil
}

// Identifier is a node id that may arrive as a JSON string or number.
// Any other JSON value decodes to the empty identifier.
type Identifier string

func (id *Identifier) UnmarshalJSON(b []byte) error {
	*id = ""
	switch jsonKind(b) {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Identifier(s)
	case '0':
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*id = Identifier(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}

// EndpointKind tags which form a link endpoint was given in.
type EndpointKind int

const (
	EndpointNone EndpointKind = iota
	// EndpointID is a bare identifier: "A".
	EndpointID
	// EndpointObject is an object carrying an id: {"id": "A"}.
	EndpointObject
)

// Endpoint is one end of a RawLink: either a bare identifier or an object
// with an id field.
type Endpoint struct {
	Kind EndpointKind
	ID   string
}

// IDEndpoint returns a bare-identifier endpoint.
func IDEndpoint(id string) Endpoint { return Endpoint{Kind: EndpointID, ID: id} }

// ObjectEndpoint returns an object endpoint carrying id.
func ObjectEndpoint(id string) Endpoint { return Endpoint{Kind: EndpointObject, ID: id} }

// Resolve narrows the endpoint to a node id; "" when nothing usable was given.
func (e Endpoint) Resolve() string {
	switch e.Kind {
	case EndpointID, EndpointObject:
		return e.ID
	default:
		return ""
	}
}

func (e Endpoint) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EndpointID:
		return json.Marshal(e.ID)
	case EndpointObject:
		return json.Marshal(struct {
			ID string `json:"id"`
		}{e.ID})
	default:
		return []byte("null"), nil
	}
}

func (e *Endpoint) UnmarshalJSON(b []byte) error {
	*e = Endpoint{}
	switch jsonKind(b) {
	case '"', '0':
		var id Identifier
		if err := id.UnmarshalJSON(b); err != nil {
			return err
		}
		*e = IDEndpoint(string(id))
	case '{':
		var obj struct {
			ID Identifier `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*e = ObjectEndpoint(string(obj.ID))
	}
	return nil
}

// jsonKind classifies a JSON value by its first byte; numbers report '0'.
func jsonKind(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	switch c := b[0]; {
	case c == '-' || (c >= '0' && c <= '9'):
		return '0'
	default:
		return c
	}
}
