// Package pb holds the wire messages for the gRPC API. The structs
// are hand-maintained against ampere.proto and carry protobuf struct
// tags so the runtime derives their descriptors; regenerate-by-hand
// when the proto changes.
package pb

import (
	proto "github.com/golang/protobuf/proto"
)

type Side int32

const (
	Side_BID Side = 0
	Side_ASK Side = 1
)

type Kind int32

const (
	Kind_LIMIT  Kind = 0
	Kind_MARKET Kind = 1
)

type TimeInForce int32

const (
	TimeInForce_GTC TimeInForce = 0
	TimeInForce_IOC TimeInForce = 1
	TimeInForce_FOK TimeInForce = 2
)

type SubmitOrderRequest struct {
	AccountId uint64      `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Venue     string      `protobuf:"bytes,2,opt,name=venue,proto3" json:"venue,omitempty"`
	Source    string      `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
	Side      Side        `protobuf:"varint,4,opt,name=side,proto3,enum=ampere.Side" json:"side,omitempty"`
	Kind      Kind        `protobuf:"varint,5,opt,name=kind,proto3,enum=ampere.Kind" json:"kind,omitempty"`
	Tif       TimeInForce `protobuf:"varint,6,opt,name=tif,proto3,enum=ampere.TimeInForce" json:"tif,omitempty"`
	Price     int64       `protobuf:"varint,7,opt,name=price,proto3" json:"price,omitempty"`
	Qty       int64       `protobuf:"varint,8,opt,name=qty,proto3" json:"qty,omitempty"`
	ExpiresAt int64       `protobuf:"varint,9,opt,name=expires_at,json=expiresAt,proto3" json:"expires_at,omitempty"`
}

func (m *SubmitOrderRequest) Reset()         { *m = SubmitOrderRequest{} }
func (m *SubmitOrderRequest) String() string { return proto.CompactTextString(m) }
func (*SubmitOrderRequest) ProtoMessage()    {}

type Execution struct {
	RestingId  uint64 `protobuf:"varint,1,opt,name=resting_id,json=restingId,proto3" json:"resting_id,omitempty"`
	IncomingId uint64 `protobuf:"varint,2,opt,name=incoming_id,json=incomingId,proto3" json:"incoming_id,omitempty"`
	Price      int64  `protobuf:"varint,3,opt,name=price,proto3" json:"price,omitempty"`
	Qty        int64  `protobuf:"varint,4,opt,name=qty,proto3" json:"qty,omitempty"`
}

func (m *Execution) Reset()         { *m = Execution{} }
func (m *Execution) String() string { return proto.CompactTextString(m) }
func (*Execution) ProtoMessage()    {}

type SubmitOrderResponse struct {
	OrderId    uint64       `protobuf:"varint,1,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	Status     string       `protobuf:"bytes,2,opt,name=status,proto3" json:"status,omitempty"`
	Remaining  int64        `protobuf:"varint,3,opt,name=remaining,proto3" json:"remaining,omitempty"`
	Executions []*Execution `protobuf:"bytes,4,rep,name=executions,proto3" json:"executions,omitempty"`
}

func (m *SubmitOrderResponse) Reset()         { *m = SubmitOrderResponse{} }
func (m *SubmitOrderResponse) String() string { return proto.CompactTextString(m) }
func (*SubmitOrderResponse) ProtoMessage()    {}

type CancelOrderRequest struct {
	Venue     string `protobuf:"bytes,1,opt,name=venue,proto3" json:"venue,omitempty"`
	OrderId   uint64 `protobuf:"varint,2,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	AccountId uint64 `protobuf:"varint,3,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
}

func (m *CancelOrderRequest) Reset()         { *m = CancelOrderRequest{} }
func (m *CancelOrderRequest) String() string { return proto.CompactTextString(m) }
func (*CancelOrderRequest) ProtoMessage()    {}

type CancelOrderResponse struct {
	Result string `protobuf:"bytes,1,opt,name=result,proto3" json:"result,omitempty"`
}

func (m *CancelOrderResponse) Reset()         { *m = CancelOrderResponse{} }
func (m *CancelOrderResponse) String() string { return proto.CompactTextString(m) }
func (*CancelOrderResponse) ProtoMessage()    {}

type DepthRequest struct {
	Venue  string `protobuf:"bytes,1,opt,name=venue,proto3" json:"venue,omitempty"`
	Levels int32  `protobuf:"varint,2,opt,name=levels,proto3" json:"levels,omitempty"`
}

func (m *DepthRequest) Reset()         { *m = DepthRequest{} }
func (m *DepthRequest) String() string { return proto.CompactTextString(m) }
func (*DepthRequest) ProtoMessage()    {}

type DepthLevel struct {
	Price  int64 `protobuf:"varint,1,opt,name=price,proto3" json:"price,omitempty"`
	Qty    int64 `protobuf:"varint,2,opt,name=qty,proto3" json:"qty,omitempty"`
	Orders int32 `protobuf:"varint,3,opt,name=orders,proto3" json:"orders,omitempty"`
}

func (m *DepthLevel) Reset()         { *m = DepthLevel{} }
func (m *DepthLevel) String() string { return proto.CompactTextString(m) }
func (*DepthLevel) ProtoMessage()    {}

type DepthResponse struct {
	Bids []*DepthLevel `protobuf:"bytes,1,rep,name=bids,proto3" json:"bids,omitempty"`
	Asks []*DepthLevel `protobuf:"bytes,2,rep,name=asks,proto3" json:"asks,omitempty"`
}

func (m *DepthResponse) Reset()         { *m = DepthResponse{} }
func (m *DepthResponse) String() string { return proto.CompactTextString(m) }
func (*DepthResponse) ProtoMessage()    {}

type MarketStatsRequest struct {
	Venue string `protobuf:"bytes,1,opt,name=venue,proto3" json:"venue,omitempty"`
}

func (m *MarketStatsRequest) Reset()         { *m = MarketStatsRequest{} }
func (m *MarketStatsRequest) String() string { return proto.CompactTextString(m) }
func (*MarketStatsRequest) ProtoMessage()    {}

type MarketStatsResponse struct {
	LastPrice int64 `protobuf:"varint,1,opt,name=last_price,json=lastPrice,proto3" json:"last_price,omitempty"`
	LastQty   int64 `protobuf:"varint,2,opt,name=last_qty,json=lastQty,proto3" json:"last_qty,omitempty"`
	LastTime  int64 `protobuf:"varint,3,opt,name=last_time,json=lastTime,proto3" json:"last_time,omitempty"`
	Volume24H int64 `protobuf:"varint,4,opt,name=volume_24h,json=volume24h,proto3" json:"volume_24h,omitempty"`
}

func (m *MarketStatsResponse) Reset()         { *m = MarketStatsResponse{} }
func (m *MarketStatsResponse) String() string { return proto.CompactTextString(m) }
func (*MarketStatsResponse) ProtoMessage()    {}

type AddValidatorRequest struct {
	Id        string   `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	PubKey    []byte   `protobuf:"bytes,2,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Expertise []string `protobuf:"bytes,3,rep,name=expertise,proto3" json:"expertise,omitempty"`
	Regions   []string `protobuf:"bytes,4,rep,name=regions,proto3" json:"regions,omitempty"`
}

func (m *AddValidatorRequest) Reset()         { *m = AddValidatorRequest{} }
func (m *AddValidatorRequest) String() string { return proto.CompactTextString(m) }
func (*AddValidatorRequest) ProtoMessage()    {}

type AddValidatorResponse struct{}

func (m *AddValidatorResponse) Reset()         { *m = AddValidatorResponse{} }
func (m *AddValidatorResponse) String() string { return proto.CompactTextString(m) }
func (*AddValidatorResponse) ProtoMessage()    {}

type RemoveValidatorRequest struct {
	Id string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
}

func (m *RemoveValidatorRequest) Reset()         { *m = RemoveValidatorRequest{} }
func (m *RemoveValidatorRequest) String() string { return proto.CompactTextString(m) }
func (*RemoveValidatorRequest) ProtoMessage()    {}

type RemoveValidatorResponse struct{}

func (m *RemoveValidatorResponse) Reset()         { *m = RemoveValidatorResponse{} }
func (m *RemoveValidatorResponse) String() string { return proto.CompactTextString(m) }
func (*RemoveValidatorResponse) ProtoMessage()    {}

type ScheduleRequest struct{}

func (m *ScheduleRequest) Reset()         { *m = ScheduleRequest{} }
func (m *ScheduleRequest) String() string { return proto.CompactTextString(m) }
func (*ScheduleRequest) ProtoMessage()    {}

type ScheduleResponse struct {
	Round     uint64   `protobuf:"varint,1,opt,name=round,proto3" json:"round,omitempty"`
	Scheduled string   `protobuf:"bytes,2,opt,name=scheduled,proto3" json:"scheduled,omitempty"`
	Active    []string `protobuf:"bytes,3,rep,name=active,proto3" json:"active,omitempty"`
}

func (m *ScheduleResponse) Reset()         { *m = ScheduleResponse{} }
func (m *ScheduleResponse) String() string { return proto.CompactTextString(m) }
func (*ScheduleResponse) ProtoMessage()    {}
