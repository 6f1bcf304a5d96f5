package sml

// Decode parses a fully assembled transport payload (already
// unescaped and CRC-verified by the transport package — spec.md
// §4.F) into a File: the ordered sequence of SML_Message entries the
// payload contains. Any transport-level padding has already been
// stripped before the payload reaches here, so every top-level token
// is expected to be a message list.
func Decode(payload []byte) (*File, error) {
	c := newCursor(payload)

	var lists []listToken

	for c.pos < len(c.data) {
		tok, err := c.token()
		if err != nil {
			return nil, err
		}

		list, ok := tok.(listToken)
		if !ok {
			return nil, InvalidMessage{Err: UnexpectedType{Want: "SML message list", Got: tok}}
		}

		lists = append(lists, list)
	}

	return deserializeMessageBundle(lists)
}
