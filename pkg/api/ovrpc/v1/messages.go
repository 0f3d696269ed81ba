package ovrpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// 请求字段
const (
	FieldName    = "name"
	FieldObject  = "object"
	FieldMessage = "message"
	FieldHash    = "hash"
)

// 响应字段
const (
	FieldSuccess = "success"
	FieldKind    = "kind"
	FieldValue   = "value"
)

// Request 是所有方法共用的请求体，按方法只填需要的字段
type Request struct {
	Name    string
	Object  any
	Message string
	Hash    string
}

// ToStruct 编码为 protobuf Struct
// Object 必须是 structpb 能表示的类型 (nil/bool/数字/string/[]any/map[string]any)
func (r Request) ToStruct() (*structpb.Struct, error) {
	fields := map[string]any{}
	if r.Name != "" {
		fields[FieldName] = r.Name
	}
	if r.Object != nil {
		fields[FieldObject] = r.Object
	}
	if r.Message != "" {
		fields[FieldMessage] = r.Message
	}
	if r.Hash != "" {
		fields[FieldHash] = r.Hash
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return s, nil
}

// ParseRequest 从 protobuf Struct 解码请求
func ParseRequest(s *structpb.Struct) Request {
	var r Request
	if s == nil {
		return r
	}
	f := s.GetFields()
	r.Name = f[FieldName].GetStringValue()
	r.Message = f[FieldMessage].GetStringValue()
	r.Hash = f[FieldHash].GetStringValue()
	if v, ok := f[FieldObject]; ok {
		r.Object = v.AsInterface()
	}
	return r
}

// Reply 是所有方法共用的响应体，对应一个 Operation Result
type Reply struct {
	Message string
	Success bool
	Kind    string
	Value   any
}

func (r Reply) ToStruct() (*structpb.Struct, error) {
	fields := map[string]any{
		FieldMessage: r.Message,
		FieldSuccess: r.Success,
		FieldKind:    r.Kind,
	}
	if r.Value != nil {
		fields[FieldValue] = r.Value
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode reply: %w", err)
	}
	return s, nil
}

func ParseReply(s *structpb.Struct) Reply {
	var r Reply
	if s == nil {
		return r
	}
	f := s.GetFields()
	r.Message = f[FieldMessage].GetStringValue()
	r.Success = f[FieldSuccess].GetBoolValue()
	r.Kind = f[FieldKind].GetStringValue()
	if v, ok := f[FieldValue]; ok {
		r.Value = v.AsInterface()
	}
	return r
}
