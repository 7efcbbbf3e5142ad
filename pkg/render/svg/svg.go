// Package svg writes an assembled skyline scene as a standalone SVG
// document with CSS-driven window flicker and shooting stars.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChicagoDave/skyline/pkg/geo"
	"github.com/ChicagoDave/skyline/pkg/scene"
)

const styleBlock = `<style>
.city-window-anim{animation-name:city-window-flicker;animation-iteration-count:infinite;animation-timing-function:ease-in-out;animation-direction:alternate}
@keyframes city-window-flicker{0%{opacity:.25}50%{opacity:1}100%{opacity:.6}}
.shooting-star{opacity:0;animation-name:shooting-star;animation-iteration-count:infinite;animation-timing-function:linear}
@keyframes shooting-star{0%{opacity:0;transform:translate(0,0)}2%{opacity:1}8%{opacity:0;transform:translate(-300px,150px)}100%{opacity:0;transform:translate(-300px,150px)}}
</style>`

// Render writes g as an SVG document to w.
func Render(w io.Writer, g *scene.Graph) error {
	if g == nil {
		return fmt.Errorf("rendering svg: nil scene")
	}
	bw := bufio.NewWriter(w)
	c := g.Metadata.Canvas

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="xMidYMax slice">`+"\n",
		num(c.Width), num(c.Height))
	bw.WriteString(styleBlock + "\n")
	writeDefs(bw, g)

	for _, e := range g.Entities {
		writeEntity(bw, e)
	}

	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

// String renders g and returns the document.
func String(g *scene.Graph) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, g); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeDefs(bw *bufio.Writer, g *scene.Graph) {
	starColor, fogColor := "#ffffff", "#0a0a0a"
	for _, e := range g.Entities {
		switch e.Gradient {
		case scene.GradientStarTail:
			starColor = e.Fill
		case scene.GradientFog:
			fogColor = e.Fill
		}
	}

	bw.WriteString("<defs>\n")
	bw.WriteString(`<filter id="winGlow"><feGaussianBlur stdDeviation="0.5" result="coloredBlur"/>` +
		`<feMerge><feMergeNode in="coloredBlur"/><feMergeNode in="SourceGraphic"/></feMerge></filter>` + "\n")
	fmt.Fprintf(bw, `<linearGradient id="%s" x1="0" x2="1" y1="0" y2="0">`+
		`<stop offset="0%%" stop-color="%s" stop-opacity="1"/><stop offset="100%%" stop-color="%s" stop-opacity="0"/></linearGradient>`+"\n",
		scene.GradientStarTail, starColor, starColor)
	fmt.Fprintf(bw, `<linearGradient id="%s" x1="0" x2="0" y1="0" y2="1">`+
		`<stop offset="0%%" stop-color="%s" stop-opacity="0"/><stop offset="100%%" stop-color="%s" stop-opacity="0.9"/></linearGradient>`+"\n",
		scene.GradientFog, fogColor, fogColor)
	bw.WriteString("</defs>\n")
}

func writeEntity(bw *bufio.Writer, e scene.Entity) {
	fill := e.Fill
	if e.Gradient != scene.GradientNone {
		fill = "url(#" + string(e.Gradient) + ")"
	}

	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` id="%s" fill="%s"`, e.ID, fill)
	if e.Glow {
		attrs.WriteString(` filter="url(#winGlow)"`)
	}
	if e.Type == scene.EntityWindow {
		attrs.WriteString(` shape-rendering="crispEdges"`)
	}
	if e.Anim != nil {
		class := "city-window-anim"
		if e.Type == scene.EntityStar {
			class = "shooting-star"
		}
		fmt.Fprintf(&attrs, ` class="%s" style="animation-duration:%ss;animation-delay:%ss"`,
			class, num(e.Anim.Duration), num(e.Anim.Delay))
	}
	if e.Type == scene.EntityFog {
		attrs.WriteString(` pointer-events="none"`)
	}

	switch e.Type {
	case scene.EntitySideFace, scene.EntitySideWindow:
		fmt.Fprintf(bw, `<path d="%s"%s/>`+"\n", pathData(e.Shape), attrs.String())
	default:
		b := e.Shape.Bounds()
		fmt.Fprintf(bw, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
			num(b.X.Lo), num(b.Y.Lo), num(b.X.Length()), num(b.Y.Length()), attrs.String())
	}
}

// pathData returns an SVG path for a closed polygon.
func pathData(p geo.Polygon) string {
	var sb strings.Builder
	for i, v := range p.Vertices {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(num(v.X))
		sb.WriteByte(',')
		sb.WriteString(num(v.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
