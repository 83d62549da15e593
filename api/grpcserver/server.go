package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "ampere/api/pb"
	"ampere/domain/chain"
	"ampere/domain/orderbook"
	"ampere/service"
)

// Server adapts TradingService to gRPC.
type Server struct {
	pb.UnimplementedTradingServer
	svc *service.TradingService
}

func NewServer(svc *service.TradingService) *Server {
	return &Server{svc: svc}
}

// -------------------- Commands --------------------

func (s *Server) SubmitOrder(
	ctx context.Context,
	req *pb.SubmitOrderRequest,
) (*pb.SubmitOrderResponse, error) {
	res, err := s.svc.Submit(service.SubmitRequest{
		AccountID: req.AccountId,
		Venue:     req.Venue,
		Source:    req.Source,
		Side:      toSide(req.Side),
		Kind:      toKind(req.Kind),
		TIF:       toTIF(req.Tif),
		Price:     req.Price,
		Qty:       req.Qty,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return nil, submitError(err)
	}

	resp := &pb.SubmitOrderResponse{
		OrderId:    res.OrderID,
		Status:     res.Status.String(),
		Remaining:  res.Remaining,
		Executions: make([]*pb.Execution, 0, len(res.Executions)),
	}
	for _, ex := range res.Executions {
		resp.Executions = append(resp.Executions, &pb.Execution{
			RestingId:  ex.RestingID,
			IncomingId: ex.IncomingID,
			Price:      ex.Price,
			Qty:        ex.Qty,
		})
	}
	return resp, nil
}

func (s *Server) CancelOrder(
	ctx context.Context,
	req *pb.CancelOrderRequest,
) (*pb.CancelOrderResponse, error) {
	res, err := s.svc.Cancel(req.Venue, req.OrderId, req.AccountId)
	if err != nil {
		return nil, submitError(err)
	}
	return &pb.CancelOrderResponse{Result: cancelResult(res)}, nil
}

// -------------------- Queries --------------------

func (s *Server) GetDepth(
	ctx context.Context,
	req *pb.DepthRequest,
) (*pb.DepthResponse, error) {
	n := int(req.Levels)
	if n <= 0 {
		n = 10
	}
	d, err := s.svc.Depth(req.Venue, n)
	if err != nil {
		return nil, submitError(err)
	}
	return &pb.DepthResponse{
		Bids: toLevels(d.Bids),
		Asks: toLevels(d.Asks),
	}, nil
}

func (s *Server) GetMarketStats(
	ctx context.Context,
	req *pb.MarketStatsRequest,
) (*pb.MarketStatsResponse, error) {
	last, err := s.svc.LastTrade(req.Venue)
	if err != nil {
		return nil, submitError(err)
	}
	vol, err := s.svc.Volume24h(req.Venue)
	if err != nil {
		return nil, submitError(err)
	}
	return &pb.MarketStatsResponse{
		LastPrice: last.Price,
		LastQty:   last.Qty,
		LastTime:  last.Time,
		Volume24H: vol,
	}, nil
}

// ValidatorServer exposes authority management over gRPC.
type ValidatorServer struct {
	pb.UnimplementedValidatorsServer
	engine   *chain.Engine
	registry *chain.Registry
	schedule *chain.Schedule
}

func NewValidatorServer(engine *chain.Engine, registry *chain.Registry, schedule *chain.Schedule) *ValidatorServer {
	return &ValidatorServer{engine: engine, registry: registry, schedule: schedule}
}

func (s *ValidatorServer) AddValidator(
	ctx context.Context,
	req *pb.AddValidatorRequest,
) (*pb.AddValidatorResponse, error) {
	if req.Id == "" || len(req.PubKey) == 0 {
		return nil, status.Error(codes.InvalidArgument, "id and pub_key are required")
	}
	err := s.engine.AddValidator(chain.Authority{
		ID:        req.Id,
		PubKey:    req.PubKey,
		Expertise: req.Expertise,
		Regions:   req.Regions,
		Active:    true,
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &pb.AddValidatorResponse{}, nil
}

func (s *ValidatorServer) RemoveValidator(
	ctx context.Context,
	req *pb.RemoveValidatorRequest,
) (*pb.RemoveValidatorResponse, error) {
	if err := s.engine.RemoveValidator(req.Id); err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return &pb.RemoveValidatorResponse{}, nil
}

func (s *ValidatorServer) GetSchedule(
	ctx context.Context,
	req *pb.ScheduleRequest,
) (*pb.ScheduleResponse, error) {
	round, scheduled := s.schedule.Current()
	return &pb.ScheduleResponse{
		Round:     round,
		Scheduled: scheduled,
		Active:    s.registry.ActiveIDs(),
	}, nil
}

// -------------------- Converters --------------------

func toSide(s pb.Side) orderbook.Side {
	if s == pb.Side_ASK {
		return orderbook.Ask
	}
	return orderbook.Bid
}

func toKind(k pb.Kind) orderbook.Kind {
	if k == pb.Kind_MARKET {
		return orderbook.Market
	}
	return orderbook.Limit
}

func toTIF(t pb.TimeInForce) orderbook.TimeInForce {
	switch t {
	case pb.TimeInForce_IOC:
		return orderbook.ImmediateOrCancel
	case pb.TimeInForce_FOK:
		return orderbook.FillOrKill
	default:
		return orderbook.GoodTillCancelled
	}
}

func toLevels(in []orderbook.LevelView) []*pb.DepthLevel {
	out := make([]*pb.DepthLevel, 0, len(in))
	for _, lv := range in {
		out = append(out, &pb.DepthLevel{
			Price:  lv.Price,
			Qty:    lv.Qty,
			Orders: int32(lv.Orders),
		})
	}
	return out
}

func cancelResult(r orderbook.CancelResult) string {
	switch r {
	case orderbook.CancelOK:
		return "ok"
	case orderbook.CancelNotOwner:
		return "not_owner"
	default:
		return "not_found"
	}
}

func submitError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownVenue):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidTimeInForce):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrGridCongestion):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
