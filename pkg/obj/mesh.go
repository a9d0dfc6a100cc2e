package obj

import "github.com/Faultbox/objmesh/pkg/math"

// BuildModel resolves face corners into a flat vertex buffer. Each corner
// produces its own vertex, so Triangles is always 0, 1, 2, ... and no vertex
// is shared between faces. A corner without a texture coordinate gets the
// zero vector. Any index outside the parsed records fails with *IndexError.
func (o *OBJ) BuildModel() (*Model, error) {
	m := &Model{
		Name:        o.Name,
		MaterialLib: o.MaterialLib,
		Material:    o.Material,
		Group:       o.Group,
		Smooth:      o.Smoothing != nil && *o.Smoothing,
		Vertices:    make([]Vertex, 0, 3*len(o.Faces)),
		Triangles:   make([]uint32, 0, 3*len(o.Faces)),
	}

	for fi := range o.Faces {
		face := &o.Faces[fi]
		for ci, corner := range face.Corners {
			position, err := resolve(o.Positions, corner.Vertex, AttributePosition, face, fi, ci)
			if err != nil {
				return nil, err
			}

			texCoord := math.Zero()
			if corner.HasTexCoord() {
				if texCoord, err = resolve(o.TexCoords, corner.TexCoord, AttributeTexCoord, face, fi, ci); err != nil {
					return nil, err
				}
			}

			m.Vertices = append(m.Vertices, Vertex{Position: position, TexCoord: texCoord})
			m.Triangles = append(m.Triangles, uint32(len(m.Vertices)-1))
		}
	}

	return m, nil
}

// resolve looks up a 1-based index.
func resolve(records []math.Vec3, idx int, attr Attribute, face *Face, fi, ci int) (math.Vec3, error) {
	if idx < 1 || idx > len(records) {
		return math.Vec3{}, &IndexError{
			Face:      fi,
			Corner:    ci,
			Line:      face.Line,
			Attribute: attr,
			Index:     idx,
			Len:       len(records),
		}
	}
	return records[idx-1], nil
}
