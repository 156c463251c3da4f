package blend

// div255 divides x by 255 using fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// For alpha blending inputs (0-65025 = 255*255) the result is within [0, 255]
// and x*255/255 maps back to x exactly, so full coverage is lossless.
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 using fast approximation.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// Scale multiplies a premultiplied color by an 8-bit coverage value.
func Scale(r, g, b, a, coverage byte) (byte, byte, byte, byte) {
	if coverage == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, coverage), mulDiv255(g, coverage), mulDiv255(b, coverage), mulDiv255(a, coverage)
}
