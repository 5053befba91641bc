package viz

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// TraceColors cycles over the paths passed to WriteSVG.
var TraceColors = []string{"#00ff88", "#ff6b6b", "#4ecdc4", "#ffe66d"}

// WriteSVG draws each path as a polyline on a dark background. All paths
// share one bounding box plus 10% padding, y pointing up. Paths with fewer
// than two points are skipped.
func WriteSVG(w io.Writer, paths [][]r2.Vec, width, height int) error {
	v, ok := fit(paths...)
	if !ok {
		return fmt.Errorf("svg: no points to draw")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, TraceColors[i%len(TraceColors)])
		for j, p := range path {
			u, s := v.unit(p)
			x, y := u*float64(width), (1-s)*float64(height)
			if j == 0 {
				fmt.Fprintf(bw, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
			}
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
