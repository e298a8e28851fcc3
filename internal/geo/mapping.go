package geo

import (
	"encoding/json"
	"fmt"

	"github.com/juju/mgo/v3/bson"
	"gopkg.in/yaml.v3"
)

// Provider is implemented by values that can describe themselves as a
// geo-interface mapping.
type Provider interface {
	GeoInterface() Mapping
}

// Mapping is the geo-interface representation of a geometry. It mirrors the
// GeoJSON geometry object: Coordinates holds a nested numeric tree for simple
// kinds, Geometries holds the members of a GeometryCollection.
// A nil Coordinates means the member is absent or null.
type Mapping struct {
	Type        string
	Coordinates any
	Geometries  []Provider
}

// GeoInterface returns m itself, so a bare Mapping is accepted as a Provider.
func (m Mapping) GeoInterface() Mapping {
	return m
}

func (m Mapping) isCollection() bool {
	k, err := ParseKind(m.Type)
	return err == nil && k.IsCollection()
}

func (m Mapping) members() []Mapping {
	out := make([]Mapping, 0, len(m.Geometries))
	for _, g := range m.Geometries {
		if g == nil {
			continue
		}
		out = append(out, g.GeoInterface())
	}
	return out
}

func providers(ms []Mapping) []Provider {
	if ms == nil {
		return nil
	}
	out := make([]Provider, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

type jsonMapping struct {
	Type        string     `json:"type"`
	Coordinates any        `json:"coordinates,omitempty"`
	Geometries  *[]Mapping `json:"geometries,omitempty"`
}

// MarshalJSON encodes m as a GeoJSON geometry object.
func (m Mapping) MarshalJSON() ([]byte, error) {
	out := jsonMapping{Type: m.Type}
	if m.isCollection() {
		members := m.members()
		out.Geometries = &members
	} else {
		out.Coordinates = m.Coordinates
		if out.Coordinates == nil {
			out.Coordinates = []any{}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a GeoJSON geometry object.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var in jsonMapping
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Mapping{Type: in.Type, Coordinates: in.Coordinates}
	if in.Geometries != nil {
		m.Geometries = providers(*in.Geometries)
	}
	return nil
}

type yamlMapping struct {
	Type        string    `yaml:"type"`
	Coordinates any       `yaml:"coordinates,omitempty"`
	Geometries  []Mapping `yaml:"geometries,omitempty"`
}

// MarshalYAML encodes m with the same keys as the JSON form.
func (m Mapping) MarshalYAML() (interface{}, error) {
	if m.isCollection() {
		return struct {
			Type       string    `yaml:"type"`
			Geometries []Mapping `yaml:"geometries"`
		}{m.Type, m.members()}, nil
	}
	coords := m.Coordinates
	if coords == nil {
		coords = []any{}
	}
	return struct {
		Type        string `yaml:"type"`
		Coordinates any    `yaml:"coordinates"`
	}{m.Type, coords}, nil
}

// UnmarshalYAML decodes a geometry node.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	var in yamlMapping
	if err := value.Decode(&in); err != nil {
		return err
	}
	*m = Mapping{Type: in.Type, Coordinates: in.Coordinates, Geometries: providers(in.Geometries)}
	return nil
}

// GetBSON lays m out as the sub-document MongoDB expects for GeoJSON fields.
func (m Mapping) GetBSON() (interface{}, error) {
	if m.isCollection() {
		return bson.D{
			{Name: "type", Value: m.Type},
			{Name: "geometries", Value: m.members()},
		}, nil
	}
	coords := m.Coordinates
	if coords == nil {
		coords = []any{}
	}
	return bson.D{
		{Name: "type", Value: m.Type},
		{Name: "coordinates", Value: coords},
	}, nil
}

// SetBSON decodes a GeoJSON sub-document.
func (m *Mapping) SetBSON(raw bson.Raw) error {
	var in struct {
		Type        string      `bson:"type"`
		Coordinates interface{} `bson:"coordinates,omitempty"`
		Geometries  []Mapping   `bson:"geometries,omitempty"`
	}
	if err := raw.Unmarshal(&in); err != nil {
		return err
	}
	*m = Mapping{Type: in.Type, Coordinates: in.Coordinates, Geometries: providers(in.Geometries)}
	return nil
}

// FromMap converts a loosely typed dictionary, as produced by decoding JSON,
// YAML or BSON into interface values, into a Mapping.
func FromMap(d map[string]any) (Mapping, error) {
	t, ok := d["type"].(string)
	if !ok {
		return Mapping{}, fmt.Errorf("geo interface: type must be a string, got %T", d["type"])
	}
	m := Mapping{Type: t, Coordinates: d["coordinates"]}
	raw, ok := d["geometries"]
	if !ok || raw == nil {
		return m, nil
	}
	s, ok := asSequence(raw)
	if !ok {
		return Mapping{}, fmt.Errorf("geo interface: geometries must be a sequence, got %T", raw)
	}
	m.Geometries = make([]Provider, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		p, err := resolve(s.At(i))
		if err != nil {
			return Mapping{}, fmt.Errorf("geometries[%d]: %w", i, err)
		}
		m.Geometries = append(m.Geometries, p)
	}
	return m, nil
}

// resolve turns v into a Provider, accepting dictionaries as mappings.
func resolve(v any) (Provider, error) {
	switch t := v.(type) {
	case Provider:
		return t, nil
	case map[string]any:
		return FromMap(t)
	case bson.M:
		return FromMap(t)
	}
	return nil, fmt.Errorf("%w: %T", ErrMissingCapability, v)
}

// MappingOf returns the geo-interface mapping of v. v must implement Provider.
func MappingOf(v any) (Mapping, error) {
	p, ok := v.(Provider)
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %T", ErrMissingCapability, v)
	}
	return p.GeoInterface(), nil
}
