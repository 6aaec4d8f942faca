package shape

// NewSample builds the demo drawing: a green group holding a segment, two
// circles and a nested yellow group with a triangle.
func NewSample() (*Group, error) {
	root, err := NewGroup(Green)
	if err != nil {
		return nil, err
	}

	seg, err := NewSegment(Pt(0, 0), Pt(2, 2), Red)
	if err != nil {
		return nil, err
	}
	big, err := NewCircle(Pt(5, 5), 2, Blue)
	if err != nil {
		return nil, err
	}
	small, err := NewCircle(Pt(10, 10), 1, Cyan)
	if err != nil {
		return nil, err
	}

	inner, err := NewGroup(Yellow)
	if err != nil {
		return nil, err
	}
	triangle, err := NewPolygon([]Point{Pt(0, 0), Pt(4, 0), Pt(0, 3)}, Black)
	if err != nil {
		return nil, err
	}
	if err := inner.Add(triangle); err != nil {
		return nil, err
	}

	for _, s := range []Shape{seg, big, small, inner} {
		if err := root.Add(s); err != nil {
			return nil, err
		}
	}
	return root, nil
}
