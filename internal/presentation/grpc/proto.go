package grpc

// proto.go defines the gRPC server interface derived from
// cashroute/routing/v1/routing.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/cashroute/cashroute/api/gen/go/cashroute/routing/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RoutingServiceServer is the server API for RoutingService.
// It mirrors the proto-generated interface from cashroute.routing.v1.RoutingService.
type RoutingServiceServer interface {
	PlanRoutes(context.Context, *PlanRoutesRequestMsg) (*PlanRoutesResponseMsg, error)
	GetPlan(context.Context, *GetPlanRequestMsg) (*GetPlanResponseMsg, error)
	ListPlans(context.Context, *ListPlansRequestMsg) (*ListPlansResponseMsg, error)
	mustEmbedUnimplementedRoutingServiceServer()
}

// UnimplementedRoutingServiceServer provides forward-compatible default implementations.
type UnimplementedRoutingServiceServer struct{}

func (UnimplementedRoutingServiceServer) PlanRoutes(context.Context, *PlanRoutesRequestMsg) (*PlanRoutesResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PlanRoutes not implemented")
}
func (UnimplementedRoutingServiceServer) GetPlan(context.Context, *GetPlanRequestMsg) (*GetPlanResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPlan not implemented")
}
func (UnimplementedRoutingServiceServer) ListPlans(context.Context, *ListPlansRequestMsg) (*ListPlansResponseMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPlans not implemented")
}
func (UnimplementedRoutingServiceServer) mustEmbedUnimplementedRoutingServiceServer() {}

// RegisterRoutingServiceServer registers the RoutingServiceServer with the gRPC server.
func RegisterRoutingServiceServer(s *grpclib.Server, srv RoutingServiceServer) {
	s.RegisterService(&_RoutingService_serviceDesc, srv)
}

var _RoutingService_serviceDesc = grpclib.ServiceDesc{ //nolint:revive
	ServiceName: "cashroute.routing.v1.RoutingService",
	HandlerType: (*RoutingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PlanRoutes", Handler: _RoutingService_PlanRoutes_Handler},
		{MethodName: "GetPlan", Handler: _RoutingService_GetPlan_Handler},
		{MethodName: "ListPlans", Handler: _RoutingService_ListPlans_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RoutingService_PlanRoutes_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(PlanRoutesRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoutingServiceServer).PlanRoutes(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/cashroute.routing.v1.RoutingService/PlanRoutes",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoutingServiceServer).PlanRoutes(ctx, req.(*PlanRoutesRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _RoutingService_GetPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(GetPlanRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoutingServiceServer).GetPlan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/cashroute.routing.v1.RoutingService/GetPlan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoutingServiceServer).GetPlan(ctx, req.(*GetPlanRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}

func _RoutingService_ListPlans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) { //nolint:revive,errcheck // gRPC handler registration
	in := new(ListPlansRequestMsg)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoutingServiceServer).ListPlans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/cashroute.routing.v1.RoutingService/ListPlans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoutingServiceServer).ListPlans(ctx, req.(*ListPlansRequestMsg))
	}
	return interceptor(ctx, in, info, handler)
}
