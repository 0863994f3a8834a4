package node

import (
	"fmt"
	"sync"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/ease"
	"github.com/chazu/turnery/pkg/loft"
	"github.com/chazu/turnery/pkg/section"
	"github.com/chazu/turnery/pkg/shape"
)

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry of built-in operator types. The
// registry is constructed once and shared; it is immutable after
// construction.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = NewRegistry()
		defs := []*Definition{
			numberDef(),
			booleanDef(),
			shapeDef(),
			patternDef(),
			outlinesDef(),
			sectionsDef(),
			holesDef(),
			loftDef(),
			spineDef(),
		}
		for _, def := range defs {
			if err := builtin.Register(def); err != nil {
				panic(fmt.Sprintf("node: builtin registration: %v", err))
			}
		}
	})
	return builtin
}

// ---------------------------------------------------------------------------
// Value sources
// ---------------------------------------------------------------------------

func numberDef() *Definition {
	return &Definition{
		Type:     "number",
		Name:     "Number",
		Category: "values",
		Inputs: []Port{
			{ID: "value", Name: "Value", Kind: KindNumber, Default: Number(0)},
		},
		Outputs: []Port{
			{ID: "value", Name: "Value", Kind: KindNumber},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			n, err := AsNumber(in["value"], "value")
			if err != nil {
				return nil, err
			}
			return map[string]Value{"value": Number(n)}, nil
		},
	}
}

func booleanDef() *Definition {
	return &Definition{
		Type:     "boolean",
		Name:     "Boolean",
		Category: "values",
		Inputs: []Port{
			{ID: "value", Name: "Value", Kind: KindBoolean, Default: Boolean(false)},
		},
		Outputs: []Port{
			{ID: "value", Name: "Value", Kind: KindBoolean},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			b, err := AsBoolean(in["value"], "value")
			if err != nil {
				return nil, err
			}
			return map[string]Value{"value": Boolean(b)}, nil
		},
	}
}

func shapeDef() *Definition {
	return &Definition{
		Type:     "shape",
		Name:     "Shape Kind",
		Category: "values",
		Inputs: []Port{
			{ID: "kind", Name: "Kind", Kind: KindShapeKind, Default: ShapeKind(shape.Circle)},
		},
		Outputs: []Port{
			{ID: "kind", Name: "Kind", Kind: KindShapeKind},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			k, err := AsShapeKind(in["kind"], "kind")
			if err != nil {
				return nil, err
			}
			return map[string]Value{"kind": ShapeKind(k)}, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Pattern and sections
// ---------------------------------------------------------------------------

func patternDef() *Definition {
	return &Definition{
		Type:     "pattern",
		Name:     "Pattern",
		Category: "generators",
		Inputs: []Port{
			{ID: "shape", Name: "Shape", Kind: KindShapeKind, Default: ShapeKind(shape.Circle)},
			{ID: "steps", Name: "Steps", Kind: KindNumber, Default: Number(8)},
			{ID: "size", Name: "Size", Kind: KindNumber, Default: Number(10)},
			{ID: "scale-start", Name: "Scale Start", Kind: KindNumber, Default: Number(1)},
			{ID: "scale-factor", Name: "Scale Factor", Kind: KindNumber, Default: Number(0.95)},
			{ID: "rotation-start", Name: "Rotation Start", Kind: KindNumber, Default: Number(0)},
			{ID: "rotation-step", Name: "Rotation Step", Kind: KindNumber, Default: Number(0)},
			{ID: "drift-x", Name: "Drift X", Kind: KindNumber, Default: Number(0)},
			{ID: "drift-y", Name: "Drift Y", Kind: KindNumber, Default: Number(0)},
			{ID: "spiral-step", Name: "Spiral Step", Kind: KindNumber, Default: Number(0)},
			{ID: "star-points", Name: "Star Points", Kind: KindNumber, Default: Number(5)},
			{ID: "cross-thickness", Name: "Cross Thickness", Kind: KindNumber, Default: Number(0.4)},
		},
		Outputs: []Port{
			{ID: "pattern", Name: "Pattern", Kind: KindPattern},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			kind, err := AsShapeKind(in["shape"], "shape")
			if err != nil {
				return nil, err
			}
			nums, err := numbers(in,
				"steps", "size", "scale-start", "scale-factor", "rotation-start",
				"rotation-step", "drift-x", "drift-y", "spiral-step",
				"star-points", "cross-thickness")
			if err != nil {
				return nil, err
			}
			instances := shape.Generate(shape.Spec{
				Kind:             kind,
				Steps:            int(nums["steps"]),
				Size:             nums["size"],
				ScaleStart:       nums["scale-start"],
				ScaleFactor:      nums["scale-factor"],
				RotationStartDeg: nums["rotation-start"],
				RotationStepDeg:  nums["rotation-step"],
				DriftX:           nums["drift-x"],
				DriftY:           nums["drift-y"],
				SpiralStepDeg:    nums["spiral-step"],
				Params: shape.Params{
					StarPoints:     int(nums["star-points"]),
					CrossThickness: nums["cross-thickness"],
				},
			})
			return map[string]Value{"pattern": Pattern(instances)}, nil
		},
	}
}

func outlinesDef() *Definition {
	return &Definition{
		Type:     "outlines",
		Name:     "Outlines",
		Category: "transforms",
		Inputs: []Port{
			{ID: "pattern", Name: "Pattern", Kind: KindPattern},
			{ID: "remove-every", Name: "Remove Every", Kind: KindNumber, Default: Number(0)},
		},
		Outputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			instances, err := AsPattern(in["pattern"], "pattern")
			if err != nil {
				return nil, err
			}
			removeEvery, err := AsNumber(in["remove-every"], "remove-every")
			if err != nil {
				return nil, err
			}
			var removed func(int) bool
			if n := int(removeEvery); n > 0 {
				removed = func(i int) bool { return (i+1)%n == 0 }
			}
			sources := section.FromInstances(instances, removed)
			out := make(CrossSections, len(sources))
			for i, src := range sources {
				out[i] = section.CrossSection{Outer: src}
			}
			return map[string]Value{"sections": out}, nil
		},
	}
}

func sectionsDef() *Definition {
	return &Definition{
		Type:     "sections",
		Name:     "Cross Sections",
		Category: "transforms",
		Inputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
			{ID: "sorted", Name: "Sort By Area", Kind: KindBoolean, Default: Boolean(true)},
			{ID: "normalize", Name: "Normalize Vertices", Kind: KindBoolean, Default: Boolean(true)},
			{ID: "easing", Name: "Easing", Kind: KindString, Default: String("linear")},
		},
		Outputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
		},
		Execute: func(in map[string]Value, ctx *Context) (map[string]Value, error) {
			raw, err := AsSections(in["sections"], "sections")
			if err != nil {
				return nil, err
			}
			sorted, err := AsBoolean(in["sorted"], "sorted")
			if err != nil {
				return nil, err
			}
			normalize, err := AsBoolean(in["normalize"], "normalize")
			if err != nil {
				return nil, err
			}
			easingName, err := AsString(in["easing"], "easing")
			if err != nil {
				return nil, err
			}
			easing, ok := ease.ByName(easingName)
			if !ok {
				ctx.Warn(fmt.Sprintf("unknown easing %q, using linear", easingName))
				easing = ease.Linear
			}
			sources := make([]v2.VecSet, len(raw))
			for i, s := range raw {
				sources[i] = s.Outer
			}
			built := section.Build(sources, section.Options{
				Sorted:    sorted,
				Easing:    easing,
				Normalize: normalize,
			})
			return map[string]Value{"sections": CrossSections(built)}, nil
		},
	}
}

func holesDef() *Definition {
	return &Definition{
		Type:     "holes",
		Name:     "Holes",
		Category: "transforms",
		Inputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
			{ID: "every", Name: "Every", Kind: KindNumber, Default: Number(2)},
			{ID: "scale", Name: "Scale", Kind: KindNumber, Default: Number(0)},
		},
		Outputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			sections, err := AsSections(in["sections"], "sections")
			if err != nil {
				return nil, err
			}
			every, err := AsNumber(in["every"], "every")
			if err != nil {
				return nil, err
			}
			scale, err := AsNumber(in["scale"], "scale")
			if err != nil {
				return nil, err
			}
			var pattern section.Pattern
			if n := int(every); n > 0 {
				pattern = func(i int) bool { return i%n == 0 }
			}
			var holeShape section.Shape
			if scale > 0 {
				holeShape = section.ScaledShape(scale)
			}
			holed := section.InsertHoles(sections, pattern, holeShape)
			return map[string]Value{"sections": CrossSections(holed)}, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

func loftDef() *Definition {
	return &Definition{
		Type:     "loft",
		Name:     "Loft",
		Category: "geometry",
		Inputs: []Port{
			{ID: "sections", Name: "Sections", Kind: KindCrossSections},
			{ID: "height", Name: "Height", Kind: KindNumber, Default: Number(100)},
			{ID: "twist", Name: "Twist", Kind: KindNumber, Default: Number(0)},
			{ID: "taper", Name: "Taper", Kind: KindNumber, Default: Number(0)},
			{ID: "smooth", Name: "Smooth", Kind: KindBoolean, Default: Boolean(false)},
		},
		Outputs: []Port{
			{ID: "geometry", Name: "Geometry", Kind: KindGeometry},
		},
		Execute: func(in map[string]Value, ctx *Context) (map[string]Value, error) {
			// Missing sections degrade gracefully to an empty mesh.
			if in["sections"] == nil {
				return map[string]Value{"geometry": EmptyGeometry()}, nil
			}
			sections, err := AsSections(in["sections"], "sections")
			if err != nil {
				return nil, err
			}
			nums, err := numbers(in, "height", "twist", "taper")
			if err != nil {
				return nil, err
			}
			smooth, err := AsBoolean(in["smooth"], "smooth")
			if err != nil {
				return nil, err
			}
			mesh, warnings := loft.Loft(sections, loft.Options{
				Height:   nums["height"],
				TwistDeg: nums["twist"],
				Taper:    nums["taper"],
				Smooth:   smooth,
				Logger:   ctx.Logger,
			})
			for _, w := range warnings {
				ctx.Warn(w.Message)
			}
			return map[string]Value{"geometry": Geometry{Mesh: mesh}}, nil
		},
	}
}

func spineDef() *Definition {
	return &Definition{
		Type:     "spine",
		Name:     "Spine",
		Category: "generators",
		Inputs: []Port{
			{ID: "steps", Name: "Steps", Kind: KindNumber, Default: Number(12)},
			{ID: "radius-start", Name: "Radius Start", Kind: KindNumber, Default: Number(10)},
			{ID: "radius-end", Name: "Radius End", Kind: KindNumber, Default: Number(2)},
			{ID: "height", Name: "Height", Kind: KindNumber, Default: Number(100)},
			{ID: "spiral-step", Name: "Spiral Step", Kind: KindNumber, Default: Number(0)},
			{ID: "drift-x", Name: "Drift X", Kind: KindNumber, Default: Number(0)},
			{ID: "drift-y", Name: "Drift Y", Kind: KindNumber, Default: Number(0)},
			{ID: "segment-length", Name: "Segment Length", Kind: KindNumber, Default: Number(0)},
			{ID: "variation", Name: "Variation", Kind: KindNumber, Default: Number(0)},
			{ID: "remove-every", Name: "Remove Every", Kind: KindNumber, Default: Number(0)},
			{ID: "seed", Name: "Seed", Kind: KindNumber, Default: Number(0)},
			{ID: "segments", Name: "Ring Segments", Kind: KindNumber, Default: Number(16)},
			{ID: "smooth", Name: "Smooth", Kind: KindBoolean, Default: Boolean(false)},
		},
		Outputs: []Port{
			{ID: "geometry", Name: "Geometry", Kind: KindGeometry},
		},
		Execute: func(in map[string]Value, _ *Context) (map[string]Value, error) {
			nums, err := numbers(in,
				"steps", "radius-start", "radius-end", "height", "spiral-step",
				"drift-x", "drift-y", "segment-length", "variation",
				"remove-every", "seed", "segments")
			if err != nil {
				return nil, err
			}
			smooth, err := AsBoolean(in["smooth"], "smooth")
			if err != nil {
				return nil, err
			}
			points := loft.GenerateSpine(loft.SpineSpec{
				Steps:         int(nums["steps"]),
				RadiusStart:   nums["radius-start"],
				RadiusEnd:     nums["radius-end"],
				Height:        nums["height"],
				SpiralStepDeg: nums["spiral-step"],
				DriftX:        nums["drift-x"],
				DriftY:        nums["drift-y"],
				SegmentLength: nums["segment-length"],
				Variation:     nums["variation"],
				RemoveEvery:   int(nums["remove-every"]),
				Seed:          int64(nums["seed"]),
			})
			mesh := loft.LoftSpine(points, int(nums["segments"]), smooth)
			return map[string]Value{"geometry": Geometry{Mesh: mesh}}, nil
		},
	}
}

// numbers extracts several numeric inputs at once.
func numbers(in map[string]Value, ports ...string) (map[string]float64, error) {
	out := make(map[string]float64, len(ports))
	for _, port := range ports {
		n, err := AsNumber(in[port], port)
		if err != nil {
			return nil, err
		}
		out[port] = n
	}
	return out, nil
}
