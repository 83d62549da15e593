package pb

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

func errUnimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// Service plumbing for the Trading and Validators services, following
// the standard generated layout.

type TradingClient interface {
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
	CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error)
	GetDepth(ctx context.Context, in *DepthRequest, opts ...grpc.CallOption) (*DepthResponse, error)
	GetMarketStats(ctx context.Context, in *MarketStatsRequest, opts ...grpc.CallOption) (*MarketStatsResponse, error)
}

type tradingClient struct {
	cc grpc.ClientConnInterface
}

func NewTradingClient(cc grpc.ClientConnInterface) TradingClient {
	return &tradingClient{cc}
}

func (c *tradingClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Trading/SubmitOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tradingClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancelOrderResponse, error) {
	out := new(CancelOrderResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Trading/CancelOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tradingClient) GetDepth(ctx context.Context, in *DepthRequest, opts ...grpc.CallOption) (*DepthResponse, error) {
	out := new(DepthResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Trading/GetDepth", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tradingClient) GetMarketStats(ctx context.Context, in *MarketStatsRequest, opts ...grpc.CallOption) (*MarketStatsResponse, error) {
	out := new(MarketStatsResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Trading/GetMarketStats", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type TradingServer interface {
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error)
	GetDepth(context.Context, *DepthRequest) (*DepthResponse, error)
	GetMarketStats(context.Context, *MarketStatsRequest) (*MarketStatsResponse, error)
}

// UnimplementedTradingServer may be embedded for forward
// compatibility.
type UnimplementedTradingServer struct{}

func (UnimplementedTradingServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	return nil, errUnimplemented("SubmitOrder")
}
func (UnimplementedTradingServer) CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error) {
	return nil, errUnimplemented("CancelOrder")
}
func (UnimplementedTradingServer) GetDepth(context.Context, *DepthRequest) (*DepthResponse, error) {
	return nil, errUnimplemented("GetDepth")
}
func (UnimplementedTradingServer) GetMarketStats(context.Context, *MarketStatsRequest) (*MarketStatsResponse, error) {
	return nil, errUnimplemented("GetMarketStats")
}

func RegisterTradingServer(s grpc.ServiceRegistrar, srv TradingServer) {
	s.RegisterService(&Trading_ServiceDesc, srv)
}

var Trading_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ampere.Trading",
	HandlerType: (*TradingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitOrder", Handler: _Trading_SubmitOrder_Handler},
		{MethodName: "CancelOrder", Handler: _Trading_CancelOrder_Handler},
		{MethodName: "GetDepth", Handler: _Trading_GetDepth_Handler},
		{MethodName: "GetMarketStats", Handler: _Trading_GetMarketStats_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ampere.proto",
}

func _Trading_SubmitOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TradingServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Trading/SubmitOrder"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TradingServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Trading_CancelOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TradingServer).CancelOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Trading/CancelOrder"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TradingServer).CancelOrder(ctx, req.(*CancelOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Trading_GetDepth_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DepthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TradingServer).GetDepth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Trading/GetDepth"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TradingServer).GetDepth(ctx, req.(*DepthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Trading_GetMarketStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MarketStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TradingServer).GetMarketStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Trading/GetMarketStats"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TradingServer).GetMarketStats(ctx, req.(*MarketStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type ValidatorsClient interface {
	AddValidator(ctx context.Context, in *AddValidatorRequest, opts ...grpc.CallOption) (*AddValidatorResponse, error)
	RemoveValidator(ctx context.Context, in *RemoveValidatorRequest, opts ...grpc.CallOption) (*RemoveValidatorResponse, error)
	GetSchedule(ctx context.Context, in *ScheduleRequest, opts ...grpc.CallOption) (*ScheduleResponse, error)
}

type validatorsClient struct {
	cc grpc.ClientConnInterface
}

func NewValidatorsClient(cc grpc.ClientConnInterface) ValidatorsClient {
	return &validatorsClient{cc}
}

func (c *validatorsClient) AddValidator(ctx context.Context, in *AddValidatorRequest, opts ...grpc.CallOption) (*AddValidatorResponse, error) {
	out := new(AddValidatorResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Validators/AddValidator", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *validatorsClient) RemoveValidator(ctx context.Context, in *RemoveValidatorRequest, opts ...grpc.CallOption) (*RemoveValidatorResponse, error) {
	out := new(RemoveValidatorResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Validators/RemoveValidator", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *validatorsClient) GetSchedule(ctx context.Context, in *ScheduleRequest, opts ...grpc.CallOption) (*ScheduleResponse, error) {
	out := new(ScheduleResponse)
	if err := c.cc.Invoke(ctx, "/ampere.Validators/GetSchedule", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type ValidatorsServer interface {
	AddValidator(context.Context, *AddValidatorRequest) (*AddValidatorResponse, error)
	RemoveValidator(context.Context, *RemoveValidatorRequest) (*RemoveValidatorResponse, error)
	GetSchedule(context.Context, *ScheduleRequest) (*ScheduleResponse, error)
}

type UnimplementedValidatorsServer struct{}

func (UnimplementedValidatorsServer) AddValidator(context.Context, *AddValidatorRequest) (*AddValidatorResponse, error) {
	return nil, errUnimplemented("AddValidator")
}
func (UnimplementedValidatorsServer) RemoveValidator(context.Context, *RemoveValidatorRequest) (*RemoveValidatorResponse, error) {
	return nil, errUnimplemented("RemoveValidator")
}
func (UnimplementedValidatorsServer) GetSchedule(context.Context, *ScheduleRequest) (*ScheduleResponse, error) {
	return nil, errUnimplemented("GetSchedule")
}

func RegisterValidatorsServer(s grpc.ServiceRegistrar, srv ValidatorsServer) {
	s.RegisterService(&Validators_ServiceDesc, srv)
}

var Validators_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ampere.Validators",
	HandlerType: (*ValidatorsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddValidator", Handler: _Validators_AddValidator_Handler},
		{MethodName: "RemoveValidator", Handler: _Validators_RemoveValidator_Handler},
		{MethodName: "GetSchedule", Handler: _Validators_GetSchedule_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ampere.proto",
}

func _Validators_AddValidator_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddValidatorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ValidatorsServer).AddValidator(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Validators/AddValidator"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ValidatorsServer).AddValidator(ctx, req.(*AddValidatorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Validators_RemoveValidator_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveValidatorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ValidatorsServer).RemoveValidator(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Validators/RemoveValidator"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ValidatorsServer).RemoveValidator(ctx, req.(*RemoveValidatorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Validators_GetSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ValidatorsServer).GetSchedule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ampere.Validators/GetSchedule"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ValidatorsServer).GetSchedule(ctx, req.(*ScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}
