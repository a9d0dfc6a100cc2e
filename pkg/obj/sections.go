package obj

import (
	"github.com/Faultbox/objmesh/pkg/math"
)

// Record keywords.
const (
	keywordMaterialLib = "mtllib"
	keywordObject      = "o"
	keywordVertex      = "v"
	keywordTexCoord    = "vt"
	keywordNormal      = "vn"
	keywordUseMaterial = "usemtl"
	keywordGroup       = "g"
	keywordSmoothing   = "s"
	keywordFace        = "f"
)

var componentNames = [3]string{"x", "y", "z"}

// tag matches a record keyword after optional indentation. The keyword must
// end at a word boundary, so "v" never matches "vt" or "vn". Once it has
// matched, a missing space before the arguments is an error in section.
func tag(c cursor, keyword string, section Section) (cursor, bool, error) {
	start := c
	c = optSpaces(c)
	if !c.hasPrefix(keyword) || !atWordEnd(c.advance(len(keyword))) {
		return start, false, nil
	}
	c = c.advance(len(keyword))
	next, ok := spaces(c)
	if !ok {
		return start, false, c.errorf(section, ErrSyntax, "expected space after %q, got %q", keyword, c.word())
	}
	return next, true, nil
}

// namedRecord parses `keyword spaces identifier lineEnd`, preceded by any
// ignorable lines. If the keyword does not match, the original cursor is
// returned with found == false.
func namedRecord(c cursor, keyword string, section Section) (next cursor, name string, found bool, err error) {
	start := c
	c, ok, err := tag(skipIgnorable(c), keyword, section)
	if err != nil || !ok {
		return start, "", false, err
	}

	c, name, ok = identifier(c)
	if !ok {
		return start, "", false, c.errorf(section, ErrSyntax, "expected name after %q, got %q", keyword, c.word())
	}
	c, ok = lineEnd(c)
	if !ok {
		return start, "", false, c.errorf(section, ErrSyntax, "unexpected %q after %s %s", c.word(), keyword, name)
	}
	return c, name, true, nil
}

func materialLib(c cursor) (cursor, string, bool, error) {
	return namedRecord(c, keywordMaterialLib, SectionMaterialLib)
}

func objectName(c cursor) (cursor, string, bool, error) {
	return namedRecord(c, keywordObject, SectionObjectName)
}

func useMaterial(c cursor) (cursor, string, bool, error) {
	return namedRecord(c, keywordUseMaterial, SectionUseMaterial)
}

func group(c cursor) (cursor, string, bool, error) {
	return namedRecord(c, keywordGroup, SectionGroup)
}

// components parses n space-separated floats.
func components(c cursor, section Section, n int) (cursor, [3]float32, error) {
	var out [3]float32
	for i := 0; i < n; i++ {
		if i > 0 {
			var ok bool
			if c, ok = spaces(c); !ok {
				return c, out, c.errorf(section, ErrSyntax, "expected space before %s component, got %q", componentNames[i], c.word())
			}
		}
		var ok bool
		if c, out[i], ok = float(c); !ok {
			return c, out, c.errorf(section, ErrSyntax, "invalid %s component %q", componentNames[i], c.word())
		}
	}
	return c, out, nil
}

// vectorRecord parses `keyword spaces float{required} [spaces float]{optional} lineEnd`.
// Components not present in the source stay zero.
func vectorRecord(c cursor, keyword string, section Section, required, optional int) (cursor, math.Vec3, bool, error) {
	start := c
	c, ok, err := tag(c, keyword, section)
	if err != nil || !ok {
		return start, math.Vec3{}, false, err
	}

	c, xyz, err := components(c, section, required)
	if err != nil {
		return start, math.Vec3{}, false, err
	}
	for i := required; i < required+optional; i++ {
		next, ok := spaces(c)
		if !ok {
			break
		}
		next, v, ok := float(next)
		if !ok {
			break
		}
		xyz[i] = v
		c = next
	}

	c, ok = lineEnd(c)
	if !ok {
		return start, math.Vec3{}, false, c.errorf(section, ErrSyntax, "unexpected %q after %s record", c.word(), keyword)
	}
	return c, math.NewVec3(xyz[0], xyz[1], xyz[2]), true, nil
}

// vectorList parses zero or more vector records, skipping ignorable lines
// between them. The returned cursor points just past the last record.
func vectorList(c cursor, parse func(cursor) (cursor, math.Vec3, bool, error)) (cursor, []math.Vec3, error) {
	var out []math.Vec3
	for {
		next, v, found, err := parse(skipIgnorable(c))
		if err != nil {
			return c, nil, err
		}
		if !found {
			return c, out, nil
		}
		out = append(out, v)
		c = next
	}
}

func vertex(c cursor) (cursor, math.Vec3, bool, error) {
	return vectorRecord(c, keywordVertex, SectionVertices, 3, 0)
}

// texCoord accepts an optional third component; it is parsed and dropped.
func texCoord(c cursor) (cursor, math.Vec3, bool, error) {
	next, v, found, err := vectorRecord(c, keywordTexCoord, SectionTexCoords, 2, 1)
	v.Z = 0
	return next, v, found, err
}

func normal(c cursor) (cursor, math.Vec3, bool, error) {
	return vectorRecord(c, keywordNormal, SectionNormals, 3, 0)
}

func vertexList(c cursor) (cursor, []math.Vec3, error) {
	return vectorList(c, vertex)
}

func texCoordList(c cursor) (cursor, []math.Vec3, error) {
	return vectorList(c, texCoord)
}

func normalList(c cursor) (cursor, []math.Vec3, error) {
	return vectorList(c, normal)
}

// smoothing parses `s on|off|1|0`.
func smoothing(c cursor) (cursor, bool, bool, error) {
	start := c
	c, ok, err := tag(skipIgnorable(c), keywordSmoothing, SectionSmoothing)
	if err != nil || !ok {
		return start, false, false, err
	}

	c, word, _ := identifier(c)
	var value bool
	switch word {
	case "on", "1":
		value = true
	case "off", "0":
		value = false
	default:
		return start, false, false, c.errorf(SectionSmoothing, ErrSyntax, "invalid smoothing value %q, expected on, off, 1 or 0", word)
	}

	c, ok = lineEnd(c)
	if !ok {
		return start, false, false, c.errorf(SectionSmoothing, ErrSyntax, "unexpected %q after s %s", c.word(), word)
	}
	return c, value, true, nil
}

// faceCorner parses `v`, `v//n` or `v/t/n`.
func faceCorner(c cursor) (cursor, FaceCorner, error) {
	corner := FaceCorner{TexCoord: NoIndex, Normal: NoIndex}

	c, v, ok := index(c)
	if !ok {
		return c, corner, c.errorf(SectionFaces, ErrSyntax, "invalid vertex index %q", c.word())
	}
	corner.Vertex = v
	if c.peek() != '/' {
		return c, corner, nil
	}

	c = c.advance(1)
	if next, t, ok := index(c); ok {
		corner.TexCoord = t
		c = next
	}
	if c.peek() != '/' {
		return c, corner, c.errorf(SectionFaces, ErrSyntax, "expected '/' before normal index, got %q", c.word())
	}

	c = c.advance(1)
	c, n, ok := index(c)
	if !ok {
		return c, corner, c.errorf(SectionFaces, ErrSyntax, "invalid normal index %q", c.word())
	}
	corner.Normal = n
	return c, corner, nil
}

// face parses `f corner corner corner lineEnd`. Corners are separated by a
// single space.
func face(c cursor) (cursor, Face, bool, error) {
	start := c
	c, ok, err := tag(c, keywordFace, SectionFaces)
	if err != nil || !ok {
		return start, Face{}, false, err
	}

	// Line is filled in by faceList.
	f := Face{Offset: optSpaces(start).pos}
	for i := range f.Corners {
		if i > 0 {
			if c, ok = space(c); !ok {
				return start, Face{}, false, c.errorf(SectionFaces, ErrSyntax, "face has %d corners, expected 3", i)
			}
		}
		if c, f.Corners[i], err = faceCorner(c); err != nil {
			return start, Face{}, false, err
		}
	}

	if next, ok := lineEnd(c); ok {
		return next, f, true, nil
	}
	if extra, ok := spaces(c); ok && isDigit(extra.peek()) {
		return start, Face{}, false, extra.errorf(SectionFaces, ErrUnsupportedFace, "face has more than 3 corners")
	}
	return start, Face{}, false, c.errorf(SectionFaces, ErrSyntax, "unexpected %q after face", c.word())
}

func faceList(c cursor) (cursor, []Face, error) {
	var out []Face
	lines := newLineCounter(c.input)
	for {
		next, f, found, err := face(skipIgnorable(c))
		if err != nil {
			return c, nil, err
		}
		if !found {
			return c, out, nil
		}
		f.Line = lines.lineAt(f.Offset)
		out = append(out, f)
		c = next
	}
}
