package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The RememberMe service uses well-known protobuf types only, so it needs no
// generated code.
const (
	ServiceName  = "rememberme.v1.RememberMe"
	IssueMethod  = "/" + ServiceName + "/Issue"
	VerifyMethod = "/" + ServiceName + "/Verify"
	RevokeMethod = "/" + ServiceName + "/Revoke"
)

// RememberMeServer is the server API of the RememberMe service.
//
// Issue takes the user id and returns the digest; the secret goes out in the
// response header named after the cookie. Verify returns the user id of the
// presented credential. Revoke deletes it and clears the header value.
type RememberMeServer interface {
	Issue(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Verify(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
	Revoke(ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error)
}

var rememberMeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RememberMeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Issue", Handler: issueHandler},
		{MethodName: "Verify", Handler: verifyHandler},
		{MethodName: "Revoke", Handler: revokeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rememberme/v1/rememberme.proto",
}

func RegisterRememberMeServer(s grpc.ServiceRegistrar, srv RememberMeServer) {
	s.RegisterService(&rememberMeServiceDesc, srv)
}

func issueHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RememberMeServer).Issue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IssueMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RememberMeServer).Issue(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func verifyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RememberMeServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VerifyMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RememberMeServer).Verify(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func revokeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RememberMeServer).Revoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RevokeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RememberMeServer).Revoke(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
