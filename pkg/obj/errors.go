package obj

import (
	"errors"
	"fmt"
)

// OBJ parse errors.
var (
	ErrSyntax          = errors.New("obj: syntax error")
	ErrUnsupportedFace = errors.New("obj: only triangular faces are supported")
	ErrIndexOutOfRange = errors.New("obj: face index out of range")
)

// Section identifies a grammar section of an OBJ source.
type Section int

// Sections in the order the parser consumes them.
const (
	SectionLeadingComments Section = iota
	SectionMaterialLib
	SectionObjectName
	SectionVertices
	SectionTexCoords
	SectionNormals
	SectionUseMaterial
	SectionGroup
	SectionSmoothing
	SectionFaces
)

// String returns a human-readable section name.
func (s Section) String() string {
	switch s {
	case SectionLeadingComments:
		return "leading comments"
	case SectionMaterialLib:
		return "material library"
	case SectionObjectName:
		return "object name"
	case SectionVertices:
		return "vertex list"
	case SectionTexCoords:
		return "texture coordinate list"
	case SectionNormals:
		return "normal list"
	case SectionUseMaterial:
		return "material use"
	case SectionGroup:
		return "polygon group"
	case SectionSmoothing:
		return "smoothing flag"
	case SectionFaces:
		return "face list"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseError reports a grammar mismatch inside a section.
type ParseError struct {
	Section Section
	Offset  int // byte offset into the source
	Line    int // 1-based
	Column  int // 1-based, in bytes
	Msg     string
	Err     error // ErrSyntax or ErrUnsupportedFace
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s at line %d, column %d: %s", e.Err, e.Section, e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Attribute names the vertex attribute a face corner index refers to.
type Attribute string

// Face corner attributes resolved during assembly.
const (
	AttributePosition Attribute = "position"
	AttributeTexCoord Attribute = "texture coordinate"
)

// IndexError reports a face corner that references a missing record.
type IndexError struct {
	Face      int // 0-based face number
	Corner    int // 0-based corner within the face
	Line      int // source line of the face record
	Attribute Attribute
	Index     int // 1-based index as written
	Len       int // number of records available
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: face %d (line %d) corner %d: %s index %d not in [1, %d]",
		ErrIndexOutOfRange, e.Face+1, e.Line, e.Corner+1, e.Attribute, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// errorf builds a ParseError at the cursor position.
func (c cursor) errorf(section Section, err error, format string, args ...any) *ParseError {
	line, column := c.location()
	return &ParseError{
		Section: section,
		Offset:  c.pos,
		Line:    line,
		Column:  column,
		Msg:     fmt.Sprintf(format, args...),
		Err:     err,
	}
}
