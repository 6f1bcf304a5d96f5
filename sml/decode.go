package sml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type fieldParams struct {
	optional                bool
	fieldName               string
	choiceHandler           string
	implicitChoiceAllowList []implicitChoiceHandler
}

// choiceHandlerFunc resolves the discriminator of a CHOICE field (the
// first element of its two-element list encoding) to a concrete Go
// value to decode the second element onto.
type choiceHandlerFunc func(domain string, keyToken token) (interface{}, error)

// messageTypeId is the 32-bit SML message type discriminator
// (spec.md §4.F). It SHOULD be transmitted as a uint32 but MAY be
// narrowed to uint8/uint16 when no ambiguity is created, matching the
// teacher's original handling of SML_MessageBody.
func messageTypeId(keyToken token) (uint32, bool) {
	switch t := keyToken.(type) {
	case unsigned32Token:
		return t.value, true
	case unsigned16Token:
		return uint32(t.value), true
	case unsigned8Token:
		return uint32(t.value), true
	default:
		return 0, false
	}
}

func smlMessageChoiceHandler(domain string, keyToken token) (interface{}, error) {
	if domain != "SML_MessageBody" {
		return nil, fmt.Errorf("unsupported choice domain %s", domain)
	}

	valueId, ok := messageTypeId(keyToken)
	if !ok {
		return nil, InvalidMessage{Err: fmt.Errorf("expected uint32 message type id, got %#v", keyToken)}
	}

	switch valueId {
	case 0x100:
		return &OpenRequestMessageBody{}, nil
	case 0x101:
		return &OpenResponseMessageBody{}, nil
	case 0x200:
		return &CloseRequestMessageBody{}, nil
	case 0x201:
		return &CloseResponseMessageBody{}, nil
	case 0x300:
		return &GetProfilePackRequestMessageBody{}, nil
	case 0x301:
		return &GetProfilePackResponseMessageBody{}, nil
	case 0x400:
		return &GetProfileListRequestMessageBody{}, nil
	case 0x401:
		return &GetProfileListResponseMessageBody{}, nil
	case 0x500:
		return &GetProcParameterRequestMessageBody{}, nil
	case 0x501:
		return &GetProcParameterResponseMessageBody{}, nil
	case 0x600:
		return &SetProcParameterRequestMessageBody{}, nil
	case 0x700:
		return &GetListRequestMessageBody{}, nil
	case 0x701:
		return &GetListResponseMessageBody{}, nil
	case 0xFF01:
		return &AttentionResponseMessageBody{}, nil
	}

	return nil, InvalidMessage{Err: UnknownMessageType{TypeId: valueId}}
}

// deserializeMessageBundle turns the parsed top-level list of SML
// messages into a File, enforcing the open/close bracketing spec.md
// §4.F requires.
func deserializeMessageBundle(messageLists []listToken) (*File, error) {
	msgs := make([]*Message, 0, len(messageLists))

	for _, l := range messageLists {
		m := &Message{}

		err := deserializeField(reflect.ValueOf(m).Elem(), fieldParams{}, l, smlMessageChoiceHandler)
		if err != nil {
			var im InvalidMessage
			if !errors.As(err, &im) {
				return nil, err
			}

			return nil, InvalidFile{Err: err}
		}

		msgs = append(msgs, m)
	}

	if len(msgs) < 2 {
		return nil, InvalidFile{Err: errors.New("SML file must contain at least two messages")}
	}

	if _, ok := msgs[0].MessageBody.(*OpenResponseMessageBody); !ok {
		return nil, InvalidFile{Err: errors.New("SML file must begin with a SML_PublicOpen.Res message")}
	}

	if _, ok := msgs[len(msgs)-1].MessageBody.(*CloseResponseMessageBody); !ok {
		return nil, InvalidFile{Err: errors.New("SML file must end with a SML_PublicClose.Res message")}
	}

	for _, m := range msgs[1 : len(msgs)-1] {
		_, isOpen := m.MessageBody.(*OpenResponseMessageBody)
		_, isClose := m.MessageBody.(*CloseResponseMessageBody)

		if isOpen || isClose {
			return nil, InvalidFile{Err: errors.New("SML file must not contain a SML_PublicOpen.Res or SML_PublicClose.Res message in the middle of the file")}
		}
	}

	return &File{Messages: msgs}, nil
}

func deserializeField(v reflect.Value, params fieldParams, tok token, choice choiceHandlerFunc) error {
	switch v.Kind() {
	case reflect.Slice:
		return deserializeSlice(v, params, tok, choice)
	case reflect.Pointer:
		return deserializePointer(v, params, tok, choice)
	case reflect.Struct:
		return deserializeStruct(v, params, tok, choice)
	case reflect.Interface:
		return deserializeInterface(v, params, tok, choice)
	case reflect.Uint8:
		return deserializeUint(v, params, tok, 8)
	case reflect.Uint16:
		return deserializeUint(v, params, tok, 16)
	case reflect.Uint32:
		return deserializeUint(v, params, tok, 32)
	case reflect.Uint64:
		return deserializeUint(v, params, tok, 64)
	case reflect.Int8:
		return deserializeInt(v, params, tok, 8)
	case reflect.Int16:
		return deserializeInt(v, params, tok, 16)
	case reflect.Int32:
		return deserializeInt(v, params, tok, 32)
	case reflect.Int64:
		return deserializeInt(v, params, tok, 64)
	default:
		return fmt.Errorf("sml: unsupported reflection kind %v", v.Kind())
	}
}

// isAbsentMarker reports whether tok is the zero-length octet string
// SML uses on the wire to mark an optional field as absent (spec.md
// §4.C). It is indistinguishable from a genuinely empty octet string,
// which is why the marker is only ever meaningful relative to whether
// the field decoding it is optional.
func isAbsentMarker(tok token) bool {
	os, ok := tok.(octetStringToken)
	return ok && len(os.value) == 0
}

func isAbsentOptional(params fieldParams, tok token) bool {
	return params.optional && isAbsentMarker(tok)
}

func deserializeSlice(v reflect.Value, params fieldParams, tok token, choice choiceHandlerFunc) error {
	elemKind := v.Type().Elem().Kind()

	switch {
	case elemKind == reflect.Uint8:
		bs, err := deserializeOctetString(tok)
		if err != nil {
			return err
		}

		if len(bs) == 0 {
			if !params.optional {
				return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
			}

			return nil
		}

		v.Set(reflect.MakeSlice(v.Type(), len(bs), len(bs)))
		reflect.Copy(v, reflect.ValueOf(bs))

		return nil

	case elemKind == reflect.Slice && v.Type().Elem().Elem().Kind() == reflect.Uint8:
		// [][]byte: a list of octet strings (e.g. a parameter tree
		// path), represented on the wire as an ordinary SML list.
		if isAbsentMarker(tok) {
			if params.optional {
				return nil
			}

			return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
		}

		list, ok := tok.(listToken)
		if !ok {
			return UnexpectedType{Want: "list of octet strings", Got: tok}
		}

		slice := reflect.MakeSlice(v.Type(), 0, len(list.value))
		for _, el := range list.value {
			bs, err := deserializeOctetString(el)
			if err != nil {
				return err
			}

			slice = reflect.Append(slice, reflect.ValueOf(bs))
		}

		v.Set(slice)
		return nil

	case elemKind == reflect.Pointer && v.Type().Elem().Elem().Kind() == reflect.Struct, elemKind == reflect.Interface:
		if isAbsentMarker(tok) {
			if params.optional {
				return nil
			}

			return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
		}

		list, ok := tok.(listToken)
		if !ok {
			return UnexpectedType{Want: "list", Got: tok}
		}

		slice := reflect.MakeSlice(reflect.SliceOf(v.Type().Elem()), 0, len(list.value))

		for _, el := range list.value {
			if elemKind == reflect.Interface {
				var value interface{}

				tmp := reflect.New(v.Type().Elem()).Elem()
				if err := deserializeField(tmp, params, el, choice); err != nil {
					return err
				}

				slice = reflect.Append(slice, tmp)
				_ = value
			} else {
				newVal := reflect.New(v.Type().Elem().Elem())
				if err := deserializeField(newVal.Elem(), fieldParams{}, el, choice); err != nil {
					return err
				}

				slice = reflect.Append(slice, newVal)
			}
		}

		v.Set(slice)
		return nil

	default:
		return fmt.Errorf("sml: unsupported slice element kind %v", elemKind)
	}
}

func deserializePointer(v reflect.Value, params fieldParams, tok token, choice choiceHandlerFunc) error {
	if v.Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("sml: unsupported pointer element kind %v", v.Type().Elem().Kind())
	}

	if isAbsentMarker(tok) {
		if params.optional {
			return nil
		}

		return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
	}

	if v.Type() == reflect.TypeOf((*ProcParValue)(nil)) {
		pv, err := decodeProcParValue(tok, choice)
		if err != nil {
			return err
		}

		v.Set(reflect.ValueOf(pv))
		return nil
	}

	newVal := reflect.New(v.Type().Elem())
	if err := deserializeField(newVal.Elem(), fieldParams{}, tok, choice); err != nil {
		return err
	}

	v.Set(newVal)
	return nil
}

func deserializeStruct(v reflect.Value, params fieldParams, tok token, choice choiceHandlerFunc) error {
	for i := 0; i < v.Type().NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			return errors.New("sml: struct contains unexported fields")
		}
	}

	list, ok := tok.(listToken)
	if !ok {
		if isAbsentMarker(tok) {
			if params.optional {
				return nil
			}

			return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
		}

		return InvalidMessage{Err: errors.New("struct needs to be decoded from a list")}
	}

	if len(list.value) != v.Type().NumField() {
		return InvalidMessage{Err: ListLengthMismatch{Want: v.Type().NumField(), Got: len(list.value)}}
	}

	for i := 0; i < v.Type().NumField(); i++ {
		p, err := parseFieldParams(v.Type().Field(i))
		if err != nil {
			return err
		}

		if err := deserializeField(v.Field(i), p, list.value[i], choice); err != nil {
			return err
		}
	}

	return nil
}

func deserializeInterface(v reflect.Value, params fieldParams, tok token, choice choiceHandlerFunc) error {
	if params.implicitChoiceAllowList != nil {
		return decodeImplicitChoice(v, params, tok)
	}

	if params.choiceHandler == "" {
		v.Set(reflect.ValueOf(tok))
		return nil
	}

	choiceList, ok := tok.(listToken)
	if !ok || len(choiceList.value) != 2 {
		if isAbsentOptional(params, tok) {
			return nil
		}

		return InvalidMessage{Err: errors.New("choice must be decoded from a two-element list")}
	}

	resolved, err := choice(params.choiceHandler, choiceList.value[0])
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(resolved)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.New("sml: choice handler must return a pointer to a struct")
	}

	v.Set(rv)
	return deserializeField(rv.Elem(), params, choiceList.value[1], choice)
}

func deserializeUint(v reflect.Value, params fieldParams, tok token, bits int) error {
	val, ok := unsignedValue(tok)
	if !ok {
		switch {
		case isAbsentMarker(tok) && params.optional:
			val = 0
		case isAbsentMarker(tok):
			return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
		default:
			return InvalidMessage{Err: UnexpectedType{Want: fmt.Sprintf("uint%d", bits), Got: tok}}
		}
	}

	v.SetUint(val)
	return nil
}

func deserializeInt(v reflect.Value, params fieldParams, tok token, bits int) error {
	val, ok := signedValue(tok)
	if !ok {
		switch {
		case isAbsentMarker(tok) && params.optional:
			val = 0
		case isAbsentMarker(tok):
			return InvalidMessage{Err: MissingRequiredField{Field: params.fieldName}}
		default:
			return InvalidMessage{Err: UnexpectedType{Want: fmt.Sprintf("int%d", bits), Got: tok}}
		}
	}

	v.SetInt(val)
	return nil
}

func unsignedValue(tok token) (uint64, bool) {
	switch t := tok.(type) {
	case unsigned8Token:
		return uint64(t.value), true
	case unsigned16Token:
		return uint64(t.value), true
	case unsigned32Token:
		return uint64(t.value), true
	case unsigned64Token:
		return t.value, true
	default:
		return 0, false
	}
}

func signedValue(tok token) (int64, bool) {
	switch t := tok.(type) {
	case signed8Token:
		return int64(t.value), true
	case signed16Token:
		return int64(t.value), true
	case signed32Token:
		return int64(t.value), true
	case signed64Token:
		return t.value, true
	default:
		return 0, false
	}
}

func parseFieldParams(f reflect.StructField) (fieldParams, error) {
	tag, ok := f.Tag.Lookup("sml")
	if !ok {
		return fieldParams{fieldName: f.Name}, nil
	}

	p := fieldParams{fieldName: f.Name}

	for _, part := range strings.Split(tag, ",") {
		kv := strings.Split(part, ":")

		switch kv[0] {
		case "optional":
			p.optional = true
		case "choice":
			if len(kv) != 2 {
				return fieldParams{}, errors.New("sml: choice tag requires a value")
			}

			p.choiceHandler = kv[1]
		case "implicit_choice":
			list, err := parseImplicitChoiceHandlers(kv[1:])
			if err != nil {
				return fieldParams{}, err
			}

			p.implicitChoiceAllowList = list
		default:
			return fieldParams{}, fmt.Errorf("sml: unknown tag value %s", part)
		}
	}

	return p, nil
}

func deserializeOctetString(tok token) ([]byte, error) {
	os, ok := tok.(octetStringToken)
	if !ok {
		return nil, InvalidMessage{Err: UnexpectedType{Want: "octet string", Got: tok}}
	}

	return os.value, nil
}

// decodeProcParValue resolves SML_ProcParValue's CHOICE by hand: its
// "value" arm (code 1) is a bare scalar rather than a list, which
// doesn't fit the generic choiceHandlerFunc contract (that contract
// requires the chosen arm to itself decode as a struct-shaped list,
// true for every message body but not for this one field).
func decodeProcParValue(tok token, choice choiceHandlerFunc) (*ProcParValue, error) {
	list, ok := tok.(listToken)
	if !ok || len(list.value) != 2 {
		return nil, InvalidMessage{Err: errors.New("SML_ProcParValue must be decoded from a two-element list")}
	}

	code, ok := unsignedValue(list.value[0])
	if !ok {
		return nil, InvalidMessage{Err: errors.New("SML_ProcParValue discriminator must be an unsigned integer")}
	}

	pv := &ProcParValue{}

	switch code {
	case 1:
		params := fieldParams{fieldName: "Value", implicitChoiceAllowList: scalarImplicitChoiceHandlers()}

		v := reflect.ValueOf(pv).Elem().FieldByName("Value")
		if err := deserializeField(v, params, list.value[1], choice); err != nil {
			return nil, err
		}
	case 2:
		entries, ok := list.value[1].(listToken)
		if !ok {
			return nil, InvalidMessage{Err: errors.New("SML_ProcParValue periodEntry arm must be a list")}
		}

		periodField := reflect.ValueOf(pv).Elem().FieldByName("PeriodList")
		if err := deserializeSlice(periodField, fieldParams{fieldName: "PeriodList"}, listToken{value: entries.value}, choice); err != nil {
			return nil, err
		}
	case 3:
		pv.TupleEntry = list.value[1]
	case 4:
		pv.Time = list.value[1]
	default:
		return nil, InvalidMessage{Err: fmt.Errorf("unsupported SML_ProcParValue discriminator %d", code)}
	}

	return pv, nil
}

func scalarImplicitChoiceHandlers() []implicitChoiceHandler {
	list, _ := parseImplicitChoiceHandlers([]string{
		"bool", "octet_string",
		"int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64",
	})

	return list
}
