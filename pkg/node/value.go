// Package node defines the typed port values, node definitions, and
// the registry of operator types executed by the graph evaluator.
package node

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/loft"
	"github.com/chazu/turnery/pkg/section"
	"github.com/chazu/turnery/pkg/shape"
)

// Kind enumerates the port value kinds. Every port declares exactly
// one kind and execution functions match on the concrete value type
// rather than trusting duck-typed data.
type Kind int

const (
	KindNumber Kind = iota
	KindBoolean
	KindString
	KindShapeKind
	KindPattern
	KindGeometry
	KindCrossSections
	KindPoint2D
	KindPoint2DList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindShapeKind:
		return "shapeKind"
	case KindPattern:
		return "pattern"
	case KindGeometry:
		return "geometry"
	case KindCrossSections:
		return "crossSectionSet"
	case KindPoint2D:
		return "point2D"
	case KindPoint2DList:
		return "point2DList"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the tagged union over port value kinds. One concrete type
// implements it per Kind.
type Value interface {
	Kind() Kind
}

// Number is a real-valued port value.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// Boolean is a flag port value.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }

// String is a text port value (easing names, labels).
type String string

func (String) Kind() Kind { return KindString }

// ShapeKind selects a primitive outline generator.
type ShapeKind shape.Kind

func (ShapeKind) Kind() Kind { return KindShapeKind }

// Pattern is an ordered sequence of shape instances.
type Pattern []shape.Instance

func (Pattern) Kind() Kind { return KindPattern }

// Geometry carries a triangle mesh.
type Geometry struct {
	Mesh *loft.Mesh `json:"mesh"`
}

func (Geometry) Kind() Kind { return KindGeometry }

// CrossSections is an ordered cross-section sequence.
type CrossSections []section.CrossSection

func (CrossSections) Kind() Kind { return KindCrossSections }

// Point2D is a single working-plane coordinate.
type Point2D v2.Vec

func (Point2D) Kind() Kind { return KindPoint2D }

// Point2DList is an ordered point sequence (a polygon outline).
type Point2DList v2.VecSet

func (Point2DList) Kind() Kind { return KindPoint2DList }

// EmptyGeometry returns a Geometry value holding an empty mesh, the
// graceful degradation for missing geometry inputs.
func EmptyGeometry() Geometry {
	return Geometry{Mesh: &loft.Mesh{}}
}

// ---------------------------------------------------------------------------
// Typed extraction
// ---------------------------------------------------------------------------

// AsNumber extracts a float64, or an error naming the port.
func AsNumber(v Value, port string) (float64, error) {
	if n, ok := v.(Number); ok {
		return float64(n), nil
	}
	return 0, typeError(port, KindNumber, v)
}

// AsBoolean extracts a bool.
func AsBoolean(v Value, port string) (bool, error) {
	if b, ok := v.(Boolean); ok {
		return bool(b), nil
	}
	return false, typeError(port, KindBoolean, v)
}

// AsString extracts a string.
func AsString(v Value, port string) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", typeError(port, KindString, v)
}

// AsShapeKind extracts a shape kind.
func AsShapeKind(v Value, port string) (shape.Kind, error) {
	if k, ok := v.(ShapeKind); ok {
		return shape.Kind(k), nil
	}
	return 0, typeError(port, KindShapeKind, v)
}

// AsPattern extracts a pattern.
func AsPattern(v Value, port string) ([]shape.Instance, error) {
	if p, ok := v.(Pattern); ok {
		return []shape.Instance(p), nil
	}
	return nil, typeError(port, KindPattern, v)
}

// AsSections extracts a cross-section sequence.
func AsSections(v Value, port string) ([]section.CrossSection, error) {
	if s, ok := v.(CrossSections); ok {
		return []section.CrossSection(s), nil
	}
	return nil, typeError(port, KindCrossSections, v)
}

// AsGeometry extracts a mesh. A nil value degrades to an empty mesh.
func AsGeometry(v Value, port string) (*loft.Mesh, error) {
	if v == nil {
		return &loft.Mesh{}, nil
	}
	if g, ok := v.(Geometry); ok {
		if g.Mesh == nil {
			return &loft.Mesh{}, nil
		}
		return g.Mesh, nil
	}
	return nil, typeError(port, KindGeometry, v)
}

func typeError(port string, want Kind, got Value) error {
	if got == nil {
		return fmt.Errorf("port %q: expected %s, got nothing", port, want)
	}
	return fmt.Errorf("port %q: expected %s, got %s", port, want, got.Kind())
}
