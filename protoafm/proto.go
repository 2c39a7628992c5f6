// Package protoafm carries AFM values across protobuf boundaries that
// transport the model as a google.protobuf.Struct.
package protoafm

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theplant/afm"
)

// FromStruct decodes an AFM carried as a protobuf Struct. Payloads from
// older producers are upgraded before decoding. A nil Struct is an empty
// model.
func FromStruct(s *structpb.Struct) (afm.AFM, error) {
	if s == nil {
		return afm.AFM{}, nil
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return afm.AFM{}, errors.Wrap(err, "marshal struct")
	}
	data, err = afm.UpgradeLegacyJSON(data)
	if err != nil {
		return afm.AFM{}, err
	}
	return afm.Unmarshal(data)
}

// ToStruct encodes the AFM as a protobuf Struct.
func ToStruct(a afm.AFM) (*structpb.Struct, error) {
	data, err := afm.Marshal(a)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "unmarshal struct")
	}
	return s, nil
}
