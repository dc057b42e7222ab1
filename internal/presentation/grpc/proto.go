package grpc

// proto.go defines the gRPC server interface derived from rmbs/rating/v1/rating.proto.
// It stands in for buf-generated code; messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "rmbs.rating.v1.CreditRatingService"

// Full method names, used for auth and role configuration.
const (
	MethodRatePool          = "/" + serviceName + "/RatePool"
	MethodRateStoredPool    = "/" + serviceName + "/RateStoredPool"
	MethodValidateMortgages = "/" + serviceName + "/ValidateMortgages"
)

// CreditRatingServiceServer is the server API for CreditRatingService.
type CreditRatingServiceServer interface {
	RatePool(context.Context, *RatePoolRequest) (*RatePoolResponse, error)
	RateStoredPool(context.Context, *RateStoredPoolRequest) (*RatePoolResponse, error)
	ValidateMortgages(context.Context, *ValidateMortgagesRequest) (*ValidateMortgagesResponse, error)
	mustEmbedUnimplementedCreditRatingServiceServer()
}

// UnimplementedCreditRatingServiceServer provides forward-compatible default implementations.
type UnimplementedCreditRatingServiceServer struct{}

func (UnimplementedCreditRatingServiceServer) RatePool(context.Context, *RatePoolRequest) (*RatePoolResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RatePool not implemented")
}
func (UnimplementedCreditRatingServiceServer) RateStoredPool(context.Context, *RateStoredPoolRequest) (*RatePoolResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RateStoredPool not implemented")
}
func (UnimplementedCreditRatingServiceServer) ValidateMortgages(context.Context, *ValidateMortgagesRequest) (*ValidateMortgagesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateMortgages not implemented")
}
func (UnimplementedCreditRatingServiceServer) mustEmbedUnimplementedCreditRatingServiceServer() {}

// RegisterCreditRatingServiceServer registers the CreditRatingServiceServer with the gRPC server.
func RegisterCreditRatingServiceServer(s grpclib.ServiceRegistrar, srv CreditRatingServiceServer) {
	s.RegisterService(&_CreditRatingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditRatingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CreditRatingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RatePool", Handler: _CreditRatingService_RatePool_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "RateStoredPool", Handler: _CreditRatingService_RateStoredPool_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "ValidateMortgages", Handler: _CreditRatingService_ValidateMortgages_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "rmbs/rating/v1/rating.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRatingService_RatePool_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RatePoolRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRatingServiceServer).RatePool(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodRatePool}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRatingServiceServer).RatePool(ctx, req.(*RatePoolRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRatingService_RateStoredPool_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RateStoredPoolRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRatingServiceServer).RateStoredPool(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodRateStoredPool}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRatingServiceServer).RateStoredPool(ctx, req.(*RateStoredPoolRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRatingService_ValidateMortgages_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ValidateMortgagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRatingServiceServer).ValidateMortgages(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodValidateMortgages}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRatingServiceServer).ValidateMortgages(ctx, req.(*ValidateMortgagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CreditRatingServiceClient is the client API for CreditRatingService.
type CreditRatingServiceClient interface {
	RatePool(ctx context.Context, in *RatePoolRequest, opts ...grpclib.CallOption) (*RatePoolResponse, error)
	RateStoredPool(ctx context.Context, in *RateStoredPoolRequest, opts ...grpclib.CallOption) (*RatePoolResponse, error)
	ValidateMortgages(ctx context.Context, in *ValidateMortgagesRequest, opts ...grpclib.CallOption) (*ValidateMortgagesResponse, error)
}

type creditRatingServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewCreditRatingServiceClient returns a client that speaks the JSON codec.
func NewCreditRatingServiceClient(cc grpclib.ClientConnInterface) CreditRatingServiceClient {
	return &creditRatingServiceClient{cc: cc}
}

func (c *creditRatingServiceClient) RatePool(ctx context.Context, in *RatePoolRequest, opts ...grpclib.CallOption) (*RatePoolResponse, error) {
	out := new(RatePoolResponse)
	if err := c.cc.Invoke(ctx, MethodRatePool, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditRatingServiceClient) RateStoredPool(ctx context.Context, in *RateStoredPoolRequest, opts ...grpclib.CallOption) (*RatePoolResponse, error) {
	out := new(RatePoolResponse)
	if err := c.cc.Invoke(ctx, MethodRateStoredPool, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditRatingServiceClient) ValidateMortgages(ctx context.Context, in *ValidateMortgagesRequest, opts ...grpclib.CallOption) (*ValidateMortgagesResponse, error) {
	out := new(ValidateMortgagesResponse)
	if err := c.cc.Invoke(ctx, MethodValidateMortgages, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpclib.CallOption) []grpclib.CallOption {
	return append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
}
