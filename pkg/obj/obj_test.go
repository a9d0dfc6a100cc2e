package obj

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/objmesh/pkg/math"
)

func loadTestFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return data
}

func TestParseOBJ_Cube(t *testing.T) {
	o, err := ParseOBJ(loadTestFile(t, "cube_uv.obj"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if o.MaterialLib != "cube_uv.mtl" {
		t.Errorf("expected mtllib 'cube_uv.mtl', got %q", o.MaterialLib)
	}
	if o.Name != "Cube" {
		t.Errorf("expected name 'Cube', got %q", o.Name)
	}
	if o.Material != "Material" {
		t.Errorf("expected usemtl 'Material', got %q", o.Material)
	}
	if o.Smoothing == nil || *o.Smoothing {
		t.Errorf("expected smoothing off, got %v", o.Smoothing)
	}

	want := Stats{Positions: 8, TexCoords: 14, Normals: 6, Faces: 12}
	if got := o.Stats(); got != want {
		t.Errorf("expected stats %+v, got %+v", want, got)
	}
}

func TestParseModel_Cube(t *testing.T) {
	model, err := ParseModel(loadTestFile(t, "cube_uv.obj"))
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}

	if model.Name != "Cube" {
		t.Errorf("expected name 'Cube', got %q", model.Name)
	}
	if len(model.Vertices) != 36 {
		t.Fatalf("expected 36 vertices, got %d", len(model.Vertices))
	}
	if len(model.Triangles) != 36 {
		t.Fatalf("expected 36 triangle indices, got %d", len(model.Triangles))
	}
	if model.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", model.TriangleCount())
	}

	positions := map[int]math.Vec3{
		0:  {X: -1, Y: 1, Z: -1},
		6:  {X: -1, Y: 1, Z: 1},
		35: {X: 1, Y: -1, Z: -1},
	}
	for i, want := range positions {
		if got := model.Vertices[i].Position; got != want {
			t.Errorf("vertex %d: expected position %v, got %v", i, want, got)
		}
	}

	if got, want := model.Vertices[0].TexCoord, (math.Vec3{X: 0.875, Y: 0.5}); got != want {
		t.Errorf("vertex 0: expected texcoord %v, got %v", want, got)
	}

	if !reflect.DeepEqual(model.Triangles[:3], []uint32{0, 1, 2}) {
		t.Errorf("expected first triangle [0 1 2], got %v", model.Triangles[:3])
	}
	for i, idx := range model.Triangles {
		if int(idx) != i {
			t.Fatalf("expected triangles[%d] == %d, got %d", i, i, idx)
		}
	}
}

func TestParseModel_EquivalentSources(t *testing.T) {
	reference, err := ParseModel(loadTestFile(t, "cube_uv.obj"))
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}

	crlf := strings.ReplaceAll(string(loadTestFile(t, "cube_uv.obj")), "\n", "\r\n")

	tests := []struct {
		name  string
		input []byte
		group string
	}{
		{"no comments", loadTestFile(t, "cube_nocomments.obj"), ""},
		{"group before faces", loadTestFile(t, "cube_group.obj"), "Cube_Cube.001"},
		{"interspersed comments", loadTestFile(t, "cube_commented.obj"), ""},
		{"crlf", []byte(crlf), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := ParseModel(tt.input)
			if err != nil {
				t.Fatalf("ParseModel failed: %v", err)
			}
			if !reflect.DeepEqual(model.Vertices, reference.Vertices) {
				t.Error("vertices differ from reference cube")
			}
			if !reflect.DeepEqual(model.Triangles, reference.Triangles) {
				t.Error("triangles differ from reference cube")
			}
			if model.Name != "Cube" {
				t.Errorf("expected name 'Cube', got %q", model.Name)
			}
			if model.Group != tt.group {
				t.Errorf("expected group %q, got %q", tt.group, model.Group)
			}
		})
	}
}

func TestParseModel_DefaultName(t *testing.T) {
	src := strings.Replace(string(loadTestFile(t, "cube_nocomments.obj")), "o Cube\n", "", 1)
	model, err := ParseModelString(src)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if model.Name != DefaultObjectName {
		t.Errorf("expected name %q, got %q", DefaultObjectName, model.Name)
	}
	if len(model.Vertices) != 36 {
		t.Errorf("expected 36 vertices, got %d", len(model.Vertices))
	}
}

func TestParseModel_LeadingIgnorableLines(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	plain, err := ParseModelString(src)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	padded, err := ParseModelString("\n\n# header\n   \n#\r\n" + src)
	if err != nil {
		t.Fatalf("ParseModel with leading lines failed: %v", err)
	}
	if !reflect.DeepEqual(plain, padded) {
		t.Errorf("leading lines changed the model: %+v vs %+v", plain, padded)
	}
}

func TestParseModel_MixedLineEndings(t *testing.T) {
	lf, err := ParseModelString("o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nf 1/1/1 2/2/1 3/3/1\n")
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	mixed, err := ParseModelString("o tri\r\nv 0 0 0\nv 1 0 0\r\nv 0 1 0\nvt 0 0\r\nvt 1 0\nvt 0 1\r\nf 1/1/1 2/2/1 3/3/1\r\n")
	if err != nil {
		t.Fatalf("ParseModel with mixed line endings failed: %v", err)
	}
	if !reflect.DeepEqual(lf, mixed) {
		t.Error("mixed line endings produced a different model")
	}
}

func TestParseModel_IntegerCoordinates(t *testing.T) {
	model, err := ParseModelString("v 1 1 -1\nf 1 1 1\n")
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if got, want := model.Vertices[0].Position, math.NewVec3(1, 1, -1); got != want {
		t.Errorf("expected position %v, got %v", want, got)
	}
}

func TestParseModel_EmptyTexCoordSlot(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0.5 0.5\nvn 0 0 1\nf 1//1 2//1 3//1\n"
	model, err := ParseModelString(src)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	for i, v := range model.Vertices {
		if !v.TexCoord.IsZero() {
			t.Errorf("vertex %d: expected zero texcoord, got %v", i, v.TexCoord)
		}
	}
}

func TestParseModel_SharedPositionsAreNotWelded(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 3 2 4\n"
	model, err := ParseModelString(src)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if len(model.Vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(model.Vertices))
	}
	if model.Vertices[1].Position != model.Vertices[4].Position {
		t.Error("expected vertices 1 and 4 to share a position")
	}
	if !reflect.DeepEqual(model.Triangles, []uint32{0, 1, 2, 3, 4, 5}) {
		t.Errorf("expected identity triangles, got %v", model.Triangles)
	}
}

func TestParseModel_Empty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only comments\n# here"} {
		model, err := ParseModelString(src)
		if err != nil {
			t.Fatalf("ParseModel(%q) failed: %v", src, err)
		}
		if model.Name != DefaultObjectName || len(model.Vertices) != 0 || len(model.Triangles) != 0 {
			t.Errorf("ParseModel(%q): expected empty default model, got %+v", src, model)
		}
	}
}

func TestParseModel_NoTrailingNewline(t *testing.T) {
	model, err := ParseModelString("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3")
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if len(model.Vertices) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(model.Vertices))
	}
}

func TestParseModel_SmoothingVariants(t *testing.T) {
	tests := []struct {
		record string
		want   bool
	}{
		{"s on", true},
		{"s 1", true},
		{"s off", false},
		{"s 0", false},
	}

	for _, tt := range tests {
		model, err := ParseModelString("v 0 0 0\n" + tt.record + "\nf 1 1 1\n")
		if err != nil {
			t.Fatalf("%q: ParseModel failed: %v", tt.record, err)
		}
		if model.Smooth != tt.want {
			t.Errorf("%q: expected smooth=%v, got %v", tt.record, tt.want, model.Smooth)
		}
	}
}

func TestParseModel_GroupAfterSmoothing(t *testing.T) {
	model, err := ParseModelString("v 0 0 0\nusemtl Red\ns 1\ng body\nf 1 1 1\n")
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if model.Group != "body" || model.Material != "Red" || !model.Smooth {
		t.Errorf("unexpected metadata: group=%q material=%q smooth=%v", model.Group, model.Material, model.Smooth)
	}

	if _, err := ParseModelString("v 0 0 0\ng a\ns 1\ng b\nf 1 1 1\n"); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax for a second group, got %v", err)
	}
}

func TestParseModel_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		section Section
		wantErr error
	}{
		{"bad mtllib", "mtllib \n", SectionMaterialLib, ErrSyntax},
		{"bad object name", "o cube sphere\n", SectionObjectName, ErrSyntax},
		{"short vertex", "v 1 2\n", SectionVertices, ErrSyntax},
		{"bad texcoord", "v 1 2 3\nvt 0.5 x\n", SectionTexCoords, ErrSyntax},
		{"short normal", "vn 0 1\n", SectionNormals, ErrSyntax},
		{"bad usemtl", "usemtl !\n", SectionUseMaterial, ErrSyntax},
		{"bad group", "g \n", SectionGroup, ErrSyntax},
		{"bad smoothing", "s maybe\n", SectionSmoothing, ErrSyntax},
		{"object without name", "o\nv 0 0 0\n", SectionObjectName, ErrSyntax},
		{"smoothing without value", "v 0 0 0\nv 1 0 0\nv 0 1 0\ns\nf 1//1 2//1 3//1\n", SectionSmoothing, ErrSyntax},
		{"usemtl without name", "v 0 0 0\nusemtl\r\nf 1 1 1\n", SectionUseMaterial, ErrSyntax},
		{"group without name", "v 0 0 0\ng\nf 1 1 1\n", SectionGroup, ErrSyntax},
		{"vertex without components", "v\n", SectionVertices, ErrSyntax},
		{"face at end of input", "v 0 0 0\nf", SectionFaces, ErrSyntax},
		{"quad face", "v 0 0 0\nf 1 1 1 1\n", SectionFaces, ErrUnsupportedFace},
		{"two corner face", "v 0 0 0\nf 1 1\n", SectionFaces, ErrSyntax},
		{"record after faces", "v 0 0 0\nf 1 1 1\nv 4 5 6\n", SectionFaces, ErrSyntax},
		{"out of order records", "vn 0 0 1\nv 0 0 0\n", SectionFaces, ErrSyntax},
		{"unknown record", "v 0 0 0\nl 1 2\n", SectionFaces, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := ParseModelString(tt.input)
			if err == nil {
				t.Fatalf("expected error, got model %+v", model)
			}
			if model != nil {
				t.Error("expected no model on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Section != tt.section {
				t.Errorf("expected section %s, got %s", tt.section, pe.Section)
			}
		})
	}
}

func TestParseModel_ErrorLocation(t *testing.T) {
	_, err := ParseModelString("v 0 0 0\nv 1 0 oops\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 2 || pe.Column != 7 || pe.Offset != 14 {
		t.Errorf("expected line 2 column 7 offset 14, got line %d column %d offset %d", pe.Line, pe.Column, pe.Offset)
	}
	if !strings.Contains(err.Error(), "vertex list") {
		t.Errorf("expected error message to name the section, got %q", err.Error())
	}
}

func TestParseModel_IndexErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		attribute Attribute
		index     int
		corner    int
	}{
		{"position past end", "v 0 0 0\nf 1 2 1\n", AttributePosition, 2, 1},
		{"zero position", "v 0 0 0\nf 0 1 1\n", AttributePosition, 0, 0},
		{"texcoord past end", "v 0 0 0\nvt 0 0\nf 1/1/1 1/1/1 1/2/1\n", AttributeTexCoord, 2, 2},
		{"zero texcoord", "v 0 0 0\nvt 0 0\nf 1/0/1 1/1/1 1/1/1\n", AttributeTexCoord, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelString(tt.input)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
			}
			if errors.Is(err, ErrSyntax) {
				t.Error("index errors must not be syntax errors")
			}
			var ie *IndexError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *IndexError, got %T", err)
			}
			if ie.Attribute != tt.attribute || ie.Index != tt.index || ie.Corner != tt.corner {
				t.Errorf("unexpected index error %+v", ie)
			}
			if ie.Line != 2 && ie.Line != 3 {
				t.Errorf("expected face line to be recorded, got %d", ie.Line)
			}
		})
	}
}

func TestParseModel_NormalIndexNotResolved(t *testing.T) {
	if _, err := ParseModelString("v 0 0 0\nf 1//9 1//9 1//9\n"); err != nil {
		t.Errorf("normal indices must not be resolved, got %v", err)
	}
}
