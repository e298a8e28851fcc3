package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"gopkg.in/yaml.v3"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   *Mapping               `json:"geometry" yaml:"geometry"`
}

// Document is a decoded GeoJSON text: a bare geometry, a Feature or a
// FeatureCollection.
type Document struct {
	Type       string
	Geometry   *Mapping
	Collection *FeatureCollection
}

// ParseDocumentJSON decodes a GeoJSON document.
func ParseDocumentJSON(data []byte) (Document, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Document{}, err
	}
	doc := Document{Type: head.Type}
	switch strings.ToLower(head.Type) {
	case "":
		return Document{}, fmt.Errorf("invalid geojson: missing type")
	case "feature":
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return Document{}, err
		}
		doc.Geometry = f.Geometry
	case "featurecollection":
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return Document{}, err
		}
		doc.Collection = &fc
	default:
		var m Mapping
		if err := json.Unmarshal(data, &m); err != nil {
			return Document{}, err
		}
		doc.Geometry = &m
	}
	return doc, nil
}

// ParseDocumentYAML decodes the YAML form of a GeoJSON document.
func ParseDocumentYAML(data []byte) (Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Document{}, err
	}
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return Document{}, err
	}
	doc := Document{Type: head.Type}
	switch strings.ToLower(head.Type) {
	case "":
		return Document{}, fmt.Errorf("invalid geojson: missing type")
	case "feature":
		var f Feature
		if err := node.Decode(&f); err != nil {
			return Document{}, err
		}
		doc.Geometry = f.Geometry
	case "featurecollection":
		var fc FeatureCollection
		if err := node.Decode(&fc); err != nil {
			return Document{}, err
		}
		doc.Collection = &fc
	default:
		var m Mapping
		if err := node.Decode(&m); err != nil {
			return Document{}, err
		}
		doc.Geometry = &m
	}
	return doc, nil
}

// Shape resolves the document into a single geometry. Feature collections
// become a GeometryCollection of their feature geometries; features without
// geometry contribute an empty GeometryCollection.
func (d Document) Shape() (geom.T, error) {
	if d.Collection != nil {
		gc := geom.NewGeometryCollection()
		for i, f := range d.Collection.Features {
			g, err := featureShape(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			}
			if err := gc.Push(g); err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			}
		}
		return gc, nil
	}
	return featureShape(d.Geometry)
}

func featureShape(m *Mapping) (geom.T, error) {
	if m == nil {
		return Empty(GeometryCollection), nil
	}
	return Shape(*m)
}
