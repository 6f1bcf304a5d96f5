package sml

import (
	"errors"
	"fmt"
	"reflect"
)

// implicitChoiceHandler tries to decode tok onto v, reporting whether
// its specific SML type matched at all (as opposed to matching but
// failing structurally).
type implicitChoiceHandler func(v reflect.Value, tok token) (bool, error)

func parseImplicitChoiceHandlers(values []string) ([]implicitChoiceHandler, error) {
	h := make([]implicitChoiceHandler, 0, len(values))

	for _, v := range values {
		switch v {
		case "bool":
			h = append(h, decodeImplicitChoiceBoolean)
		case "octet_string":
			h = append(h, decodeImplicitChoiceOctetString)
		case "uint8":
			h = append(h, decodeImplicitChoiceUint8)
		case "uint16":
			h = append(h, decodeImplicitChoiceUint16)
		case "uint32":
			h = append(h, decodeImplicitChoiceUint32)
		case "uint64":
			h = append(h, decodeImplicitChoiceUint64)
		case "int8":
			h = append(h, decodeImplicitChoiceInt8)
		case "int16":
			h = append(h, decodeImplicitChoiceInt16)
		case "int32":
			h = append(h, decodeImplicitChoiceInt32)
		case "int64":
			h = append(h, decodeImplicitChoiceInt64)
		default:
			return nil, fmt.Errorf("sml: unsupported implicit choice type %v", v)
		}
	}

	return h, nil
}

func decodeImplicitChoice(v reflect.Value, params fieldParams, tok token) error {
	for _, handler := range params.implicitChoiceAllowList {
		matched, err := handler(v, tok)
		if err != nil {
			return err
		}

		if matched {
			return nil
		}
	}

	if params.optional {
		if os, ok := tok.(octetStringToken); ok && len(os.value) == 0 {
			return nil
		}
	}

	return errors.New("sml: no implicit choice handler matched")
}

func decodeImplicitChoiceBoolean(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(booleanToken)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceOctetString(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(octetStringToken)
	if !ok {
		return false, nil
	}

	cp := make([]byte, len(t.value))
	copy(cp, t.value)
	v.Set(reflect.ValueOf(cp))
	return true, nil
}

func decodeImplicitChoiceUint8(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(unsigned8Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceUint16(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(unsigned16Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceUint32(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(unsigned32Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceUint64(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(unsigned64Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceInt8(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(signed8Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceInt16(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(signed16Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceInt32(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(signed32Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}

func decodeImplicitChoiceInt64(v reflect.Value, tok token) (bool, error) {
	t, ok := tok.(signed64Token)
	if !ok {
		return false, nil
	}

	v.Set(reflect.ValueOf(t.value))
	return true, nil
}
