package onnx

import "math"

// float16Bits converts a float32 to IEEE 754 half-precision bits,
// truncating the mantissa. The board tensor only holds 0 and 1, but the
// conversion handles the general cases anyway.
func float16Bits(f float32) uint16 {
	var bits = math.Float32bits(f)
	var sign = uint16(bits>>16) & 0x8000
	var exp = int32((bits>>23)&0xff) - 127 + 15
	var mant = bits & 0x7fffff

	if exp >= 31 {
		if exp == 143 && mant != 0 {
			return sign | 0x7e00 // NaN
		}
		return sign | 0x7c00 // overflow to infinity
	}
	if exp <= 0 {
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		return sign | uint16(mant>>uint32(14-exp))
	}
	return sign | uint16(exp)<<10 | uint16(mant>>13)
}
