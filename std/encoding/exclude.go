package encoding

// TypeAny is the TLV type of the "Any" marker nested inside an Exclude
// selector's value. It always carries a zero-length value.
const TypeAny TLNum = 0x13

// ExcludeEntry is one element of an Exclude selector's canonically ordered
// entry list: either an explicit Component to exclude, or an Any marker
// that opens an excluded range bounded by its neighboring Component entries.
type ExcludeEntry struct {
	Any       bool
	Component Component
}

// Exclude is the parsed value of an Interest's Exclude selector: a
// canonically ordered sequence of excluded components and Any-bounded
// ranges, as used by the §4.6 "Interest-matches-Data" algorithm.
type Exclude struct {
	Entries []ExcludeEntry
}

// IsExcluded reports whether c is covered by ex, either by explicit
// equality with a listed Component entry or by falling strictly within an
// Any-bounded range in canonical order.
func (ex Exclude) IsExcluded(c Component) bool {
	for _, e := range ex.Entries {
		if !e.Any && e.Component.Equal(c) {
			return true
		}
	}
	for i, e := range ex.Entries {
		if !e.Any {
			continue
		}
		var lo, hi *Component
		if i > 0 && !ex.Entries[i-1].Any {
			lo = &ex.Entries[i-1].Component
		}
		if i+1 < len(ex.Entries) && !ex.Entries[i+1].Any {
			hi = &ex.Entries[i+1].Component
		}
		if lo != nil && c.Compare(*lo) <= 0 {
			continue
		}
		if hi != nil && c.Compare(*hi) >= 0 {
			continue
		}
		return true
	}
	return false
}

// IsCanonical reports whether ex's entries are in the strict canonical
// order required by the wire format: Component entries strictly increase
// by Compare, and two Any markers never appear back to back.
func (ex Exclude) IsCanonical() bool {
	var last *Component
	lastAny := false
	for _, e := range ex.Entries {
		if e.Any {
			if lastAny {
				return false
			}
			lastAny = true
			continue
		}
		if last != nil && e.Component.Compare(*last) <= 0 {
			return false
		}
		c := e.Component
		last = &c
		lastAny = false
	}
	return true
}

// EncodingLength returns the number of bytes EncodeInto will write.
func (ex Exclude) EncodingLength() int {
	l := 0
	for _, e := range ex.Entries {
		if e.Any {
			l += int(TypeAny.EncodingLength()) + int(Nat(0).EncodingLength())
		} else {
			l += int(e.Component.EncodingLength())
		}
	}
	return l
}

// EncodeInto writes ex's entries into buf in wire order, returning the
// number of bytes written. The caller is responsible for ensuring the
// entries are in canonical order.
func (ex Exclude) EncodeInto(buf Buffer) int {
	p := 0
	for _, e := range ex.Entries {
		if e.Any {
			p += TypeAny.EncodeInto(buf[p:])
			p += Nat(0).EncodeInto(buf[p:])
		} else {
			p += e.Component.EncodeInto(buf[p:])
		}
	}
	return p
}

// Bytes encodes ex into a freshly allocated byte slice.
func (ex Exclude) Bytes() []byte {
	buf := make(Buffer, ex.EncodingLength())
	ex.EncodeInto(buf)
	return buf
}

// ReadExclude parses the entries of an Exclude selector's value from r,
// which must be positioned at and bounded to exactly that value, and
// rejects the result if its entries are not in canonical order.
func ReadExclude(r *WireView) (Exclude, error) {
	var ex Exclude
	for !r.IsEOF() {
		typ, err := r.ReadTLNum()
		if err != nil {
			return Exclude{}, err
		}
		length, err := r.ReadTLNum()
		if err != nil {
			return Exclude{}, err
		}
		if int(length) > r.Length()-r.Pos() {
			return Exclude{}, ErrBufferOverflow
		}
		if typ == TypeAny {
			if err := r.Skip(int(length)); err != nil {
				return Exclude{}, err
			}
			ex.Entries = append(ex.Entries, ExcludeEntry{Any: true})
		} else {
			val, err := r.ReadBuf(int(length))
			if err != nil {
				return Exclude{}, err
			}
			ex.Entries = append(ex.Entries, ExcludeEntry{Component: Component{Typ: typ, Val: val}})
		}
	}
	if !ex.IsCanonical() {
		return Exclude{}, ErrFormat{Msg: "Exclude entries are not in canonical order"}
	}
	return ex, nil
}
