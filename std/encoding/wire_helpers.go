package encoding

// EncodeTlv encodes a single TLV element (type, length, value) into one
// contiguous buffer. Used by spec packages that build small fixed fields.
func EncodeTlv(typ uint64, val []byte) []byte {
	t := TLNum(typ)
	buf := make([]byte, t.EncodingLength()+Nat(len(val)).EncodingLength()+len(val))
	p := t.EncodeInto(buf)
	p += Nat(len(val)).EncodeInto(buf[p:])
	copy(buf[p:], val)
	return buf
}

// EncodeNatTlv encodes a TLV whose value is a natural number.
func EncodeNatTlv(typ uint64, v uint64) []byte {
	return EncodeTlv(typ, Nat(v).Bytes())
}

// WrapTlv prepends a TL header for typ around inner, wrapping its total
// length without copying the segments of inner.
func WrapTlv(typ uint64, inner Wire) Wire {
	length := 0
	for _, seg := range inner {
		length += len(seg)
	}
	t := TLNum(typ)
	hdr := make([]byte, t.EncodingLength()+Nat(length).EncodingLength())
	p := t.EncodeInto(hdr)
	Nat(length).EncodeInto(hdr[p:])
	ret := make(Wire, 0, len(inner)+1)
	ret = append(ret, hdr)
	ret = append(ret, inner...)
	return ret
}

// ConcatParts drops empty segments and returns the remainder as a Wire.
func ConcatParts(parts [][]byte) Wire {
	w := make(Wire, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 {
			w = append(w, p)
		}
	}
	return w
}

// ReadNat reads a TLV value of the given length as a natural number.
func (r *WireView) ReadNat(length int) (uint64, error) {
	buf, err := r.ReadBuf(length)
	if err != nil {
		return 0, err
	}
	v, _, err := ParseNat(buf)
	return uint64(v), err
}
