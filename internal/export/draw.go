package export

import (
	"github.com/formes/backend-go/internal/canvas"
	"github.com/formes/backend-go/internal/shape"
)

// Sender forwards one request to a drawing service. Delivery is not
// acknowledged.
type Sender interface {
	Send(request string)
}

// Drawer is a shape.Visitor that sends one draw request per leaf shape.
// Pieces of a group are drawn in the color of the outermost group that
// contains them; groups themselves produce no request.
type Drawer struct {
	sender Sender
	groups []shape.Color
	sent   int
}

var _ shape.Visitor = (*Drawer)(nil)

func NewDrawer(s Sender) *Drawer {
	return &Drawer{sender: s}
}

// Sent returns the number of requests handed to the sender.
func (d *Drawer) Sent() int { return d.sent }

func (d *Drawer) VisitSegment(s *shape.Segment) error {
	return d.draw(canvas.KindSegment, s.Color(), 0, s.P1(), s.P2())
}

func (d *Drawer) VisitCircle(c *shape.Circle) error {
	return d.draw(canvas.KindCircle, c.Color(), c.Radius(), c.Center())
}

func (d *Drawer) VisitPolygon(p *shape.Polygon) error {
	return d.draw(canvas.KindPolygon, p.Color(), 0, p.Vertices()...)
}

func (d *Drawer) VisitGroup(g *shape.Group) error {
	d.groups = append(d.groups, g.Color())
	defer func() { d.groups = d.groups[:len(d.groups)-1] }()
	return shape.Walk(d, g.Children())
}

func (d *Drawer) draw(kind string, own shape.Color, radius float64, pts ...shape.Point) error {
	c := own
	if len(d.groups) > 0 {
		c = d.groups[0]
	}

	p := canvas.DrawPayload{
		Kind:   kind,
		Color:  c.String(),
		Points: make([]canvas.Point, len(pts)),
		Radius: radius,
	}
	for i, pt := range pts {
		p.Points[i] = canvas.Point{X: pt.X, Y: pt.Y}
	}

	req, err := canvas.EncodeDraw(p)
	if err != nil {
		return err
	}
	d.sender.Send(req)
	d.sent++
	return nil
}
