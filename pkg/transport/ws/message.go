package ws

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	OpSharpe = "sharpe"
	OpBlend  = "blend"
)

const (
	fieldID                = "id"
	fieldOp                = "op"
	fieldReturns           = "returns"
	fieldRiskFreeRate      = "risk_free_rate"
	fieldExistingRiskScore = "existing_risk_score"
	fieldSharpeRatioWeight = "sharpe_ratio_weight"
	fieldSharpeRatio       = "sharpe_ratio"
	fieldUpdatedRiskScore  = "updated_risk_score"
	fieldError             = "error"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidField     = errors.New("invalid field")
	ErrRemote           = errors.New("remote error")
)

// Request is one scoring call. Optional numbers are nil when absent.
type Request struct {
	ID                string
	Op                string
	Returns           []float64
	RiskFreeRate      *float64
	ExistingRiskScore *float64
	SharpeRatioWeight *float64

	// Err is set by the server when the frame could not be decoded. Handle
	// answers such a request with a rejection.
	Err error
}

type Response struct {
	ID               string
	Op               string
	SharpeRatio      float64
	UpdatedRiskScore float64
	Error            string
}

// Messages travel as binary encoded structpb.Struct values; unlike JSON the
// binary double encoding keeps NaN and infinities intact.

func MarshalRequest(req Request) ([]byte, error) {
	values := make([]*structpb.Value, len(req.Returns))
	for i, r := range req.Returns {
		values[i] = structpb.NewNumberValue(r)
	}

	fields := map[string]*structpb.Value{
		fieldOp:      structpb.NewStringValue(req.Op),
		fieldReturns: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}
	if req.ID != "" {
		fields[fieldID] = structpb.NewStringValue(req.ID)
	}
	setOptional(fields, fieldRiskFreeRate, req.RiskFreeRate)
	setOptional(fields, fieldExistingRiskScore, req.ExistingRiskScore)
	setOptional(fields, fieldSharpeRatioWeight, req.SharpeRatioWeight)

	return proto.Marshal(&structpb.Struct{Fields: fields})
}

func UnmarshalRequest(data []byte) (Request, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return Request{}, fmt.Errorf("unable to unmarshal request: %w", err)
	}

	var (
		req Request
		err error
	)
	if req.ID, err = optionalString(&msg, fieldID); err != nil {
		return req, err
	}
	if req.Op, err = optionalString(&msg, fieldOp); err != nil {
		return req, err
	}
	if req.Op == "" {
		return req, fmt.Errorf("%w: %s", ErrMissingField, fieldOp)
	}

	list, ok := msg.GetFields()[fieldReturns]
	if !ok {
		return req, fmt.Errorf("%w: %s", ErrMissingField, fieldReturns)
	}
	if _, isList := list.GetKind().(*structpb.Value_ListValue); !isList {
		return req, fmt.Errorf("%w: %s is not a list", ErrInvalidField, fieldReturns)
	}
	req.Returns = make([]float64, 0, len(list.GetListValue().GetValues()))
	for i, v := range list.GetListValue().GetValues() {
		number, isNumber := v.GetKind().(*structpb.Value_NumberValue)
		if !isNumber {
			return req, fmt.Errorf("%w: %s[%d] is not a number", ErrInvalidField, fieldReturns, i)
		}
		req.Returns = append(req.Returns, number.NumberValue)
	}

	if req.RiskFreeRate, err = optionalNumber(&msg, fieldRiskFreeRate); err != nil {
		return req, err
	}
	if req.ExistingRiskScore, err = optionalNumber(&msg, fieldExistingRiskScore); err != nil {
		return req, err
	}
	if req.SharpeRatioWeight, err = optionalNumber(&msg, fieldSharpeRatioWeight); err != nil {
		return req, err
	}
	return req, nil
}

func MarshalResponse(resp Response) ([]byte, error) {
	fields := map[string]*structpb.Value{
		fieldID: structpb.NewStringValue(resp.ID),
		fieldOp: structpb.NewStringValue(resp.Op),
	}
	if resp.Error != "" {
		fields[fieldError] = structpb.NewStringValue(resp.Error)
	} else {
		fields[fieldSharpeRatio] = structpb.NewNumberValue(resp.SharpeRatio)
		if resp.Op == OpBlend {
			fields[fieldUpdatedRiskScore] = structpb.NewNumberValue(resp.UpdatedRiskScore)
		}
	}
	return proto.Marshal(&structpb.Struct{Fields: fields})
}

func UnmarshalResponse(data []byte) (Response, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return Response{}, fmt.Errorf("unable to unmarshal response: %w", err)
	}

	fields := msg.GetFields()
	return Response{
		ID:               fields[fieldID].GetStringValue(),
		Op:               fields[fieldOp].GetStringValue(),
		SharpeRatio:      fields[fieldSharpeRatio].GetNumberValue(),
		UpdatedRiskScore: fields[fieldUpdatedRiskScore].GetNumberValue(),
		Error:            fields[fieldError].GetStringValue(),
	}, nil
}

func setOptional(fields map[string]*structpb.Value, name string, value *float64) {
	if value != nil {
		fields[name] = structpb.NewNumberValue(*value)
	}
}

func optionalString(msg *structpb.Struct, name string) (string, error) {
	v, ok := msg.GetFields()[name]
	if !ok {
		return "", nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", fmt.Errorf("%w: %s is not a string", ErrInvalidField, name)
	}
	return s.StringValue, nil
}

func optionalNumber(msg *structpb.Struct, name string) (*float64, error) {
	v, ok := msg.GetFields()[name]
	if !ok {
		return nil, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return nil, fmt.Errorf("%w: %s is not a number", ErrInvalidField, name)
	}
	return &n.NumberValue, nil
}
