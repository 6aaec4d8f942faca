package load

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/formes/backend-go/internal/export"
	"github.com/formes/backend-go/internal/shape"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func sample(t *testing.T) *shape.Group {
	t.Helper()
	g, err := shape.NewSample()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func texts(shapes []shape.Shape) []string {
	var out []string
	for _, s := range shapes {
		out = append(out, s.String())
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	plain := sample(t)

	moved := sample(t)
	moved.Translate(shape.Pt(0.1, -3.7))
	moved.Rotate(shape.Pt(1, 1), math.Pi/7)
	if err := moved.Scale(shape.Pt(-2, 0.5), 1.3); err != nil {
		t.Fatal(err)
	}

	for name, root := range map[string]*shape.Group{"sample": plain, "transformed": moved} {
		t.Run(name, func(t *testing.T) {
			text, err := export.Encode(root)
			if err != nil {
				t.Fatal(err)
			}
			got, err := String(text)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d roots, want 1", len(got))
			}
			diff(t, root.String(), got[0].String())
			diff(t, root.Area(), got[0].Area(), cmpopts.EquateApprox(0, 1e-9))

			again, err := export.Encode(got[0])
			if err != nil {
				t.Fatal(err)
			}
			diff(t, text, again)
		})
	}
}

func TestRoundTripSeveralRoots(t *testing.T) {
	seg, err := shape.NewSegment(shape.Pt(0, 0), shape.Pt(2, 2), shape.Red)
	if err != nil {
		t.Fatal(err)
	}
	empty, err := shape.NewGroup(shape.Blue)
	if err != nil {
		t.Fatal(err)
	}
	poly, err := shape.NewPolygon(nil, shape.Cyan)
	if err != nil {
		t.Fatal(err)
	}
	want := []shape.Shape{seg, empty, sample(t), poly}

	path := filepath.Join(t.TempDir(), "drawing.txt")
	tw, err := export.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := shape.Walk(tw, want); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, texts(want), texts(got))
	for _, s := range got {
		if shape.Owner(s) != nil {
			t.Errorf("root %s has an owner", s)
		}
	}
}

func TestNesting(t *testing.T) {
	got, err := String(strings.Join([]string{
		"Groupe;Debut;green",
		"Segment;red;(0,0);(2,2)",
		"",
		"Groupe;Debut;yellow",
		"Polygone;black;(0,0);(4,0);(0,3)",
		"Groupe;Fin",
		"Cercle;blue;(5,5);2",
		"Groupe;Fin",
	}, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d roots, want 1", len(got))
	}
	root := got[0].(*shape.Group)
	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("got %d children, want 3", len(children))
	}
	inner, ok := children[1].(*shape.Group)
	if !ok {
		t.Fatalf("second child is %T, want *shape.Group", children[1])
	}
	if shape.Owner(inner) != root || inner.Len() != 1 {
		t.Errorf("inner group not attached as expected: %s", inner)
	}
	diff(t, 6+4*math.Pi, root.Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestHandlers(t *testing.T) {
	chain := NewChain()
	tests := []struct {
		line string
		kind Kind
		text string
		err  error
	}{
		{line: "Segment;red;(0,0);(2,2)", kind: KindShape, text: "Segment [(0,0), (2,2)], red"},
		{line: "Cercle;blue;(5,5);2", kind: KindShape, text: "Cercle [C:(5,5), R:2], blue"},
		{line: "Polygone;black;(0,0);(4,0);(0,3)", kind: KindShape},
		{line: "Polygone;black", kind: KindShape},
		{line: "Groupe;Debut;yellow", kind: KindGroupBegin},
		{line: "Groupe;Fin", kind: KindGroupEnd},
		{line: "Segment;red;(0,0)", err: ErrMalformedLine},
		{line: "Segment;red;(0,0);(1,1);(2,2)", err: ErrMalformedLine},
		{line: "Segment;red;(0,0);(2,x)", err: ErrMalformedLine},
		{line: "Segment;red;0,0;(2,2)", err: ErrMalformedLine},
		{line: "Segment;red;(0;0);(2,2)", err: ErrMalformedLine},
		{line: "Cercle;purple;(5,5);2", err: shape.ErrInvalidColor},
		{line: "Cercle;blue;(5,5);0", err: shape.ErrInvalidRadius},
		{line: "Cercle;blue;(5,5);-1", err: ErrMalformedLine},
		{line: "Cercle;blue;(5,5);two", err: ErrMalformedLine},
		{line: "Cercle;red;(0,0);+Inf", err: ErrMalformedLine},
		{line: "Cercle;red;(0,0);NaN", err: ErrMalformedLine},
		{line: "Cercle;red;(Inf,0);1", err: ErrMalformedLine},
		{line: "Polygone;black;(NaN,0);(1,0);(0,1)", err: ErrMalformedLine},
		{line: "Segment;red;(0,-Inf);(1,1)", err: ErrMalformedLine},
		{line: "Polygone", err: ErrMalformedLine},
		{line: "Polygone;red;(1,2", err: ErrMalformedLine},
		{line: "Groupe", err: ErrMalformedLine},
		{line: "Groupe;Debut", err: ErrMalformedLine},
		{line: "Groupe;Fin;red", err: ErrMalformedLine},
		{line: "Groupe;Milieu;red", err: ErrMalformedLine},
		{line: "Triangle;red;(0,0)", err: ErrUnrecognizedLine},
		{line: "segment;red;(0,0);(2,2)", err: ErrUnrecognizedLine},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rec, err := chain.Handle(tt.line)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got error %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if rec.Kind != tt.kind {
				t.Errorf("got kind %v, want %v", rec.Kind, tt.kind)
			}
			if tt.text != "" {
				diff(t, tt.text, rec.Shape.String())
			}
		})
	}
}

func TestInvalidColorIsMalformed(t *testing.T) {
	_, err := NewChain().Handle("Cercle;purple;(5,5);2")
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("got %v, want ErrMalformedLine", err)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		want shape.Point
	}{
		{"(0,0)", shape.Pt(0, 0)},
		{"(-1.5,2.25)", shape.Pt(-1.5, 2.25)},
		{"(1e+21,-3e-07)", shape.Pt(1e21, -3e-7)},
	}
	for _, tt := range tests {
		got, err := ParsePoint(tt.in)
		if err != nil {
			t.Errorf("ParsePoint(%q): %v", tt.in, err)
			continue
		}
		diff(t, tt.want, got)
	}
	for _, bad := range []string{"", "()", "(1,)", "1,2", "(1 2)", "[1,2]", "(NaN,0)", "(0,+Inf)", "(-inf,1)"} {
		if _, err := ParsePoint(bad); err == nil {
			t.Errorf("ParsePoint(%q) succeeded", bad)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
		line string
	}{
		{"malformed", "Segment;red;(0,0);(1,1)\nSegment;red;(0,0)", ErrMalformedLine, "line 2:"},
		{"unrecognized", "\n\nCarre;red;(0,0)", ErrUnrecognizedLine, "line 3:"},
		{"unbalanced", "Groupe;Fin", ErrUnbalancedGroup, "line 1:"},
		{"unterminated", "Groupe;Debut;red\nGroupe;Debut;blue\nGroupe;Fin", ErrUnterminatedGroup, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := String(tt.in)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			if tt.line != "" && !strings.HasPrefix(err.Error(), tt.line) {
				t.Errorf("error %q does not start with %q", err, tt.line)
			}
		})
	}
}

func TestLenient(t *testing.T) {
	in := strings.Join([]string{
		"Segment;red;(0,0);(1,1)",
		"Hexagone;red",
		"Cercle;blue;(0,0);-1",
		"Groupe;Debut;green",
		"Cercle;blue;(0,0);1",
		"Polygone;red;(oops)",
		"Groupe;Fin",
	}, "\n")

	if _, err := String(in); err == nil {
		t.Fatal("strict load accepted bad lines")
	}

	got, err := Loader{Lenient: true}.Load(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []string{
		"Segment [(0,0), (1,1)], red",
		"Groupe green { Cercle [C:(0,0), R:1], blue ; }",
	}, texts(got))

	_, err = Loader{Lenient: true}.Load(strings.NewReader("Groupe;Fin"))
	if !errors.Is(err, ErrUnbalancedGroup) {
		t.Errorf("lenient load of a stray end: got %v, want ErrUnbalancedGroup", err)
	}
}

type upper struct{ next Handler }

func (u upper) Handle(line string) (Record, error) {
	return u.next.Handle(strings.Replace(line, "RED", "red", 1))
}

func TestCustomChain(t *testing.T) {
	got, err := Loader{Chain: upper{next: NewChain()}}.Load(strings.NewReader("Segment;RED;(0,0);(1,1)"))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []string{"Segment [(0,0), (1,1)], red"}, texts(got))
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}
