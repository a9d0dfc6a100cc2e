// Package obj parses Wavefront OBJ geometry text into flat triangle meshes.
package obj

import "github.com/Faultbox/objmesh/pkg/math"

// DefaultObjectName is used when the source has no "o" record.
const DefaultObjectName = "Object"

// NoIndex marks an absent texture coordinate or normal slot in a face corner.
const NoIndex = -1

// FaceCorner is one vertex reference of a face. Indices are 1-based as
// written in the source.
type FaceCorner struct {
	Vertex   int
	TexCoord int // NoIndex if the slot is empty
	Normal   int // NoIndex if not written; never used by assembly
}

// HasTexCoord reports whether the corner references a texture coordinate.
func (fc FaceCorner) HasTexCoord() bool {
	return fc.TexCoord != NoIndex
}

// Face is a triangulated face record.
type Face struct {
	Corners [3]FaceCorner
	Offset  int // byte offset of the record in the source
	Line    int // 1-based source line
}

// OBJ holds the records of every section in the order they were parsed.
// Indices in Faces are not validated until BuildModel.
type OBJ struct {
	MaterialLib string
	Name        string
	Positions   []math.Vec3
	TexCoords   []math.Vec3
	Normals     []math.Vec3
	Material    string
	Group       string
	Smoothing   *bool // nil if no "s" record
	Faces       []Face
}

// Stats holds record counts of a parsed source.
type Stats struct {
	Positions int
	TexCoords int
	Normals   int
	Faces     int
}

// Stats returns the record counts.
func (o *OBJ) Stats() Stats {
	return Stats{
		Positions: len(o.Positions),
		TexCoords: len(o.TexCoords),
		Normals:   len(o.Normals),
		Faces:     len(o.Faces),
	}
}

// Vertex is one element of the output vertex buffer.
type Vertex struct {
	Position math.Vec3 `yaml:"position"`
	TexCoord math.Vec3 `yaml:"texcoord"`
}

// Model is an assembled triangle mesh. Every three consecutive entries of
// Triangles form one triangle.
type Model struct {
	Name        string   `yaml:"name"`
	MaterialLib string   `yaml:"mtllib,omitempty"`
	Material    string   `yaml:"usemtl,omitempty"`
	Group       string   `yaml:"group,omitempty"`
	Smooth      bool     `yaml:"smooth"`
	Vertices    []Vertex `yaml:"vertices"`
	Triangles   []uint32 `yaml:"triangles,flow"`
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// Returns zero vectors for an empty model.
func (m *Model) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Zero(), math.Zero()
	}

	min = m.Vertices[0].Position
	max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return min, max
}
