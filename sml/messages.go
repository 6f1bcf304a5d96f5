package sml

import "encoding/json"

// File is a fully decoded SML message bundle: everything that arrived
// between one transport frame's start and end marker (spec.md §4.F).
type File struct {
	Messages []*Message
}

func (f *File) String() string {
	v, _ := json.Marshal(f)
	return string(v)
}

func (f *File) StringPretty() string {
	v, _ := json.MarshalIndent(f, "", "  ")
	return string(v)
}

// Message is one SML_Message envelope: a transaction id, a group and
// abort-on-error flag, the type-dispatched body, and its own CRC.
type Message struct {
	TransactionId []byte
	GroupNo       uint8
	AbortOnError  uint8
	MessageBody   MessageBody `sml:"choice:SML_MessageBody"`
	Crc16         uint16
	EndOfMessage  interface{}
}

// MessageBody is implemented by every concrete SML message body type
// supported by the choice dispatcher in decode.go.
type MessageBody interface {
}

// OpenRequestMessageBody is SML_PublicOpen.Req (type id 0x100).
type OpenRequestMessageBody struct {
	Codepage   []byte `sml:"optional"`
	ClientId   []byte `sml:"optional"`
	ReqFileId  []byte
	ServerId   []byte `sml:"optional"`
	Username   []byte `sml:"optional"`
	Password   []byte `sml:"optional"`
	SmlVersion uint8  `sml:"optional"`
}

// OpenResponseMessageBody is SML_PublicOpen.Res (type id 0x101).
type OpenResponseMessageBody struct {
	Codepage   []byte      `sml:"optional"`
	ClientId   []byte      `sml:"optional"`
	ReqFileId  []byte
	ServerId   []byte
	RefTime    interface{} `sml:"optional"`
	SmlVersion uint8       `sml:"optional"`
}

// CloseRequestMessageBody is SML_PublicClose.Req (type id 0x200).
type CloseRequestMessageBody struct {
	GlobalSignature []byte `sml:"optional"`
}

// CloseResponseMessageBody is SML_PublicClose.Res (type id 0x201).
type CloseResponseMessageBody struct {
	GlobalSignature []byte `sml:"optional"`
}

// GetProfilePackRequestMessageBody is SML_GetProfilePack.Req (type id
// 0x300). Structural support only: the parameter tree path and object
// list are left as raw lists rather than resolved paths, matching
// spec.md's "not every field needs physical interpretation" posture.
type GetProfilePackRequestMessageBody struct {
	ServerId          [][]byte    `sml:"optional"`
	Username          []byte      `sml:"optional"`
	Password          []byte      `sml:"optional"`
	WithRawdata       interface{} `sml:"optional"`
	BeginTime         interface{} `sml:"optional"`
	EndTime           interface{} `sml:"optional"`
	ParameterTreePath [][]byte
	ObjectList        []interface{} `sml:"optional"`
	DasDetails        interface{}   `sml:"optional"`
}

// GetProfilePackResponseMessageBody is SML_GetProfilePack.Res (type id
// 0x301).
type GetProfilePackResponseMessageBody struct {
	ServerId      []byte
	ActTime       interface{}
	RegPeriod     uint32
	ParameterTreePath [][]byte
	HeaderList    []interface{}
	PeriodList    []*PeriodListEntry
	RawdataList   [][]byte `sml:"optional"`
	PeriodSignature []byte `sml:"optional"`
}

// PeriodListEntry is one SML_PeriodList.ValTime-bounded row inside a
// GetProfilePack response.
type PeriodListEntry struct {
	ValTime    interface{}
	ValueList  []*PeriodEntry
	PeriodSignature []byte `sml:"optional"`
}

// GetProfileListRequestMessageBody is SML_GetProfileList.Req (type id
// 0x400).
type GetProfileListRequestMessageBody struct {
	ServerId          []byte      `sml:"optional"`
	Username          []byte      `sml:"optional"`
	Password          []byte      `sml:"optional"`
	WithRawdata       interface{} `sml:"optional"`
	BeginTime         interface{} `sml:"optional"`
	EndTime           interface{} `sml:"optional"`
	ParameterTreePath [][]byte
	ObjectList        []interface{} `sml:"optional"`
	DasDetails        interface{}   `sml:"optional"`
}

// GetProfileListResponseMessageBody is SML_GetProfileList.Res (type id
// 0x401).
type GetProfileListResponseMessageBody struct {
	ServerId        []byte
	ActTime         interface{}
	RegPeriod       uint32
	ParameterTreePath [][]byte
	ValTime         interface{}
	ValList         []*ListEntry
	ListSignature   []byte `sml:"optional"`
	ActGatewayTime  interface{} `sml:"optional"`
}

// GetProcParameterRequestMessageBody is SML_GetProcParameter.Req (type
// id 0x500).
type GetProcParameterRequestMessageBody struct {
	ServerId          []byte
	Username          []byte `sml:"optional"`
	Password          []byte `sml:"optional"`
	ParameterTreePath [][]byte
	Attribute         interface{} `sml:"optional"`
}

// GetProcParameterResponseMessageBody is SML_GetProcParameter.Res
// (type id 0x501). ParameterTree is the one genuinely recursive SML
// structure (spec.md §3's SML_Tree).
type GetProcParameterResponseMessageBody struct {
	ServerId      []byte
	ParameterTreePath [][]byte
	ParameterTree *Tree
}

// SetProcParameterRequestMessageBody is SML_SetProcParameter.Req (type
// id 0x600).
type SetProcParameterRequestMessageBody struct {
	ServerId          []byte
	Username          []byte `sml:"optional"`
	Password          []byte `sml:"optional"`
	ParameterTreePath [][]byte
	ParameterTree     *Tree
}

// GetListRequestMessageBody is SML_GetList.Req (type id 0x700).
type GetListRequestMessageBody struct {
	ClientId []byte `sml:"optional"`
	ServerId []byte
	Username []byte `sml:"optional"`
	Password []byte `sml:"optional"`
	ListName []byte `sml:"optional"`
}

// GetListResponseMessageBody is SML_GetList.Res (type id 0x701).
type GetListResponseMessageBody struct {
	ClientId       []byte `sml:"optional"`
	ServerId       []byte
	ListName       []byte      `sml:"optional"`
	ActSensorTime  interface{} `sml:"optional"`
	ValList        []*ListEntry
	ListSignature  []byte      `sml:"optional"`
	ActGatewayTime interface{} `sml:"optional"`
}

// AttentionResponseMessageBody is SML_Attention.Res (type id 0xFF01),
// the error/attention-notice message a meter sends instead of the
// expected response (e.g. for an unsupported request).
type AttentionResponseMessageBody struct {
	ServerId         []byte
	AttentionNo      []byte
	AttentionMsg     []byte      `sml:"optional"`
	AttentionDetails interface{} `sml:"optional"`
}

// ListEntry is one SML_ListEntry: an OBIS object name, an optional
// status (widened to the narrowest matching uint width), an optional
// capture time, unit/scaler metadata, the value itself (widened
// similarly across bool/octet-string/signed/unsigned), and an
// optional signature.
type ListEntry struct {
	ObjName        []byte
	Status         interface{} `sml:"implicit_choice:uint8:uint16:uint32:uint64,optional"`
	ValTime        interface{} `sml:"optional"`
	Unit           uint8       `sml:"optional"`
	Scaler         int8        `sml:"optional"`
	Value          interface{} `sml:"implicit_choice:bool:octet_string:int8:int16:int32:int64:uint8:uint16:uint32:uint64"`
	ValueSignature []byte      `sml:"optional"`
}

// PeriodEntry is SML_PeriodEntry, the value row used inside
// SML_ProcParValue's periodEntry choice and SML_GetProfilePack
// responses.
type PeriodEntry struct {
	ObjName []byte
	Unit    uint8 `sml:"optional"`
	Scaler  int8  `sml:"optional"`
	Value   interface{} `sml:"implicit_choice:bool:octet_string:int8:int16:int32:int64:uint8:uint16:uint32:uint64"`
	ValueSignature []byte `sml:"optional"`
}

// Tree is SML_Tree: a parameter name, an optional SML_ProcParValue
// choice, and a recursive child list. spec.md §3 singles this out as
// the one genuinely recursive SML structure.
type Tree struct {
	ParameterName []byte
	ParameterValue *ProcParValue `sml:"optional"`
	ChildList     []*Tree       `sml:"optional"`
}

// ProcParValue is the SML_ProcParValue CHOICE: a scalar Value, a
// period-entry list, a tuple entry (left raw — rarely used and not
// documented in the public BSI annex beyond its tag), or a Time.
type ProcParValue struct {
	Value       interface{}    `sml:"optional"`
	PeriodList  []*PeriodEntry `sml:"optional"`
	TupleEntry  interface{}    `sml:"optional"`
	Time        interface{}    `sml:"optional"`
}
