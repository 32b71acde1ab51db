package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Protobuf carries trees as a google.protobuf.Value message. The zero value
// is ready to use.
//
// structpb numbers are doubles: integers beyond 2^53 lose precision and every
// integer comes back as float64.
type Protobuf struct{}

var _ Format = Protobuf{}

func (Protobuf) Name() string        { return "protobuf" }
func (Protobuf) ContentType() string { return "application/x-protobuf" }

func (Protobuf) Encode(tree any) ([]byte, error) {
	norm, err := Normalize(tree)
	if err != nil {
		return nil, err
	}
	v, err := structpb.NewValue(norm)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf) Decode(b []byte, hook Hook) (any, error) {
	v := &structpb.Value{}
	if err := proto.Unmarshal(b, v); err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	return walkDecoded(c.Name(), v.AsInterface(), hook)
}
