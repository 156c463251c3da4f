package blend

// Span composites a solid premultiplied source color onto a row of
// premultiplied RGBA destination pixels, weighting the source by the
// per-pixel coverage. len(dst) must be 4*len(coverage).
//
// Pixels with zero coverage are left untouched, which keeps destination-out
// and destination-in local to the painted area.
func Span(dst []byte, coverage []byte, sr, sg, sb, sa byte, fn Func) {
	for i, c := range coverage {
		if c == 0 {
			continue
		}
		r, g, b, a := Scale(sr, sg, sb, sa, c)
		j := i * 4
		dst[j+0], dst[j+1], dst[j+2], dst[j+3] = fn(r, g, b, a, dst[j+0], dst[j+1], dst[j+2], dst[j+3])
	}
}

// SpanOver composites a row of premultiplied source pixels over dst.
// Both slices hold RGBA quadruples; the shorter one bounds the row.
func SpanOver(dst, src []byte) {
	for j := 0; j+3 < len(src) && j+3 < len(dst); j += 4 {
		if src[j+3] == 0 {
			continue
		}
		dst[j+0], dst[j+1], dst[j+2], dst[j+3] = blendSourceOver(src[j+0], src[j+1], src[j+2], src[j+3],
			dst[j+0], dst[j+1], dst[j+2], dst[j+3])
	}
}
