package obj

// ParseOBJ parses OBJ text into its section records. Records must appear in
// this order, each optionally preceded by blank or comment lines:
//
//	mtllib, o, v*, vt*, vn*, usemtl, g, s, f*
//
// Every record except the lists may appear at most once. The group record
// may also follow the smoothing record. Face indices are not resolved; use
// BuildModel for that.
func ParseOBJ(data []byte) (*OBJ, error) {
	return parse(string(data))
}

// ParseModel parses OBJ text and assembles it into a triangle mesh.
func ParseModel(data []byte) (*Model, error) {
	return ParseModelString(string(data))
}

// ParseModelString is ParseModel for text already held as a string.
func ParseModelString(s string) (*Model, error) {
	o, err := parse(s)
	if err != nil {
		return nil, err
	}
	return o.BuildModel()
}

func parse(input string) (*OBJ, error) {
	o := &OBJ{Name: DefaultObjectName}
	c := skipIgnorable(cursor{input: input})

	var (
		found bool
		err   error
	)

	if c, o.MaterialLib, _, err = materialLib(c); err != nil {
		return nil, err
	}

	var name string
	if c, name, found, err = objectName(c); err != nil {
		return nil, err
	}
	if found {
		o.Name = name
	}

	if c, o.Positions, err = vertexList(c); err != nil {
		return nil, err
	}
	if c, o.TexCoords, err = texCoordList(c); err != nil {
		return nil, err
	}
	if c, o.Normals, err = normalList(c); err != nil {
		return nil, err
	}

	if c, o.Material, _, err = useMaterial(c); err != nil {
		return nil, err
	}

	var groupFound bool
	if c, o.Group, groupFound, err = group(c); err != nil {
		return nil, err
	}

	var smooth bool
	if c, smooth, found, err = smoothing(c); err != nil {
		return nil, err
	}
	if found {
		o.Smoothing = &smooth
	}

	if !groupFound {
		if c, o.Group, _, err = group(c); err != nil {
			return nil, err
		}
	}

	if c, o.Faces, err = faceList(c); err != nil {
		return nil, err
	}

	c = skipIgnorable(c)
	if !c.eof() {
		return nil, c.errorf(SectionFaces, ErrSyntax, "unexpected %q, expected a face record or end of input", c.word())
	}

	return o, nil
}
