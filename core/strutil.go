package core

// Formatting helpers for log lines. The core package avoids fmt so it stays
// small under TinyGo.

const hexDigits = "0123456789ABCDEF"

// utoa formats n in decimal
func utoa(n uint32) string {
	var buf [10]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return string(buf[pos:])
}

// itoa formats a signed int in decimal
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// hex8 formats a byte as 0xNN
func hex8(b byte) string {
	return string([]byte{'0', 'x', hexDigits[b>>4], hexDigits[b&0x0F]})
}

// hexBytes formats bytes as space-separated 0xNN values
func hexBytes(bs ...byte) string {
	out := make([]byte, 0, len(bs)*5)
	for i, b := range bs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0F])
	}
	return string(out)
}
