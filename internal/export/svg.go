package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/algoviz/internal/trace"
)

// Bar fills, matching the terminal palette.
const (
	ColorBackground = "#0a0a0a"
	ColorDefault    = "#2ec4b6"
	ColorComparing  = "#ffd166"
	ColorSwapping   = "#ef476f"
	ColorSorted     = "#06d6a0"
)

func roleColor(r trace.Role) string {
	switch r {
	case trace.RoleComparing:
		return ColorComparing
	case trace.RoleSwapping:
		return ColorSwapping
	case trace.RoleSorted:
		return ColorSorted
	}
	return ColorDefault
}

// SnapshotSVG renders one snapshot as a bar chart. Each bar is 10*scale
// wide and its height is proportional to the largest value in the array.
func SnapshotSVG(s trace.Snapshot, scale float64) string {
	if len(s.Array) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	barW := 10 * scale
	gap := 2 * scale
	maxH := 200 * scale
	width := float64(len(s.Array))*(barW+gap) + gap
	height := maxH + 2*gap

	peak := 1
	for _, v := range s.Array {
		if v > peak {
			peak = v
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, ColorBackground))

	for i, v := range s.Array {
		h := maxH * float64(v) / float64(peak)
		if h < scale {
			h = scale
		}
		x := gap + float64(i)*(barW+gap)
		y := height - gap - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, barW, h, roleColor(s.RoleOf(i))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ProgressSVG draws the number of sorted positions against the snapshot
// index as a single polyline.
func ProgressSVG(tr *trace.Trace, width, height int, strokeColor string) string {
	if tr.Len() < 2 || len(tr.Input) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, ColorBackground, strokeColor))

	last := float64(tr.Len() - 1)
	n := float64(len(tr.Input))
	for i := 0; i < tr.Len(); i++ {
		x := float64(i) / last * float64(width)
		y := float64(height) - float64(len(tr.At(i).Sorted))/n*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
