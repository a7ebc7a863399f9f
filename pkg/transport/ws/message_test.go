package ws

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func ptr(v float64) *float64 {
	return &v
}

func TestWs_RequestKeepsNonFiniteValues(t *testing.T) {
	req := Request{
		ID:                "abc",
		Op:                OpBlend,
		Returns:           []float64{0.01, math.NaN(), math.Inf(1), math.Inf(-1)},
		ExistingRiskScore: ptr(2),
	}

	data, err := MarshalRequest(req)
	if err != nil {
		t.Fatalf("MarshalRequest() error = %v", err)
	}
	got, err := UnmarshalRequest(data)
	if err != nil {
		t.Fatalf("UnmarshalRequest() error = %v", err)
	}

	if got.ID != "abc" || got.Op != OpBlend {
		t.Errorf("Unexpected header %q %q", got.ID, got.Op)
	}
	if len(got.Returns) != 4 || got.Returns[0] != 0.01 || !math.IsNaN(got.Returns[1]) ||
		!math.IsInf(got.Returns[2], 1) || !math.IsInf(got.Returns[3], -1) {
		t.Errorf("Unexpected returns %v", got.Returns)
	}
	if got.ExistingRiskScore == nil || *got.ExistingRiskScore != 2 {
		t.Errorf("Unexpected existing score %v", got.ExistingRiskScore)
	}
	if got.RiskFreeRate != nil || got.SharpeRatioWeight != nil {
		t.Error("Absent optional fields decoded as present")
	}
}

func TestWs_ResponseKeepsInfinity(t *testing.T) {
	data, err := MarshalResponse(Response{ID: "1", Op: OpSharpe, SharpeRatio: math.Inf(1)})
	if err != nil {
		t.Fatalf("MarshalResponse() error = %v", err)
	}
	got, err := UnmarshalResponse(data)
	if err != nil {
		t.Fatalf("UnmarshalResponse() error = %v", err)
	}
	if !math.IsInf(got.SharpeRatio, 1) {
		t.Errorf("Expected +Inf, got %v", got.SharpeRatio)
	}
}

func TestWs_UnmarshalRequestErrors(t *testing.T) {
	number := structpb.NewNumberValue(1)
	list := structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{number}})

	tests := []struct {
		name   string
		fields map[string]*structpb.Value
		want   error
	}{
		{"missing op", map[string]*structpb.Value{fieldReturns: list}, ErrMissingField},
		{"missing returns", map[string]*structpb.Value{fieldOp: structpb.NewStringValue(OpSharpe)}, ErrMissingField},
		{"returns not a list", map[string]*structpb.Value{
			fieldOp:      structpb.NewStringValue(OpSharpe),
			fieldReturns: number,
		}, ErrInvalidField},
		{"return not a number", map[string]*structpb.Value{
			fieldOp: structpb.NewStringValue(OpSharpe),
			fieldReturns: structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
				structpb.NewStringValue("0.01"),
			}}),
		}, ErrInvalidField},
		{"op not a string", map[string]*structpb.Value{fieldOp: number, fieldReturns: list}, ErrInvalidField},
		{"weight not a number", map[string]*structpb.Value{
			fieldOp:                structpb.NewStringValue(OpBlend),
			fieldReturns:           list,
			fieldSharpeRatioWeight: structpb.NewBoolValue(true),
		}, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := proto.Marshal(&structpb.Struct{Fields: tt.fields})
			if err != nil {
				t.Fatalf("proto.Marshal() error = %v", err)
			}
			if _, err := UnmarshalRequest(data); !errors.Is(err, tt.want) {
				t.Errorf("UnmarshalRequest() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWs_UnmarshalRequestGarbage(t *testing.T) {
	if _, err := UnmarshalRequest([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("Expected error for garbage payload")
	}
}
