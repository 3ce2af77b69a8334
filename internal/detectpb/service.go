package detectpb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "detectpb.Detector"

// DetectorClient is the generated-style client stub for the detector
// service, built directly on grpc.ClientConnInterface the same way
// protoc-gen-go-grpc's client does.
type DetectorClient interface {
	Auth(ctx context.Context, in *AuthRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Detect(ctx context.Context, opts ...grpc.CallOption) (Detector_DetectClient, error)
}

type detectorClient struct {
	cc grpc.ClientConnInterface
}

// NewDetectorClient wraps cc in a DetectorClient.
func NewDetectorClient(cc grpc.ClientConnInterface) DetectorClient {
	return &detectorClient{cc: cc}
}

func (c *detectorClient) Auth(ctx context.Context, in *AuthRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Auth", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *detectorClient) Detect(ctx context.Context, opts ...grpc.CallOption) (Detector_DetectClient, error) {
	stream, err := c.cc.NewStream(ctx, &detectStreamDesc, "/"+ServiceName+"/Detect", opts...)
	if err != nil {
		return nil, err
	}
	return &detectorDetectClient{stream}, nil
}

// Detector_DetectClient is the client side of the bidirectional Detect
// stream: send requests, receive responses, independently of each other.
type Detector_DetectClient interface {
	Send(*DetectRequest) error
	Recv() (*DetectResponse, error)
	grpc.ClientStream
}

type detectorDetectClient struct {
	grpc.ClientStream
}

func (s *detectorDetectClient) Send(req *DetectRequest) error {
	return s.ClientStream.SendMsg(req)
}

func (s *detectorDetectClient) Recv() (*DetectResponse, error) {
	resp := new(DetectResponse)
	if err := s.ClientStream.RecvMsg(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DetectorServer is the server-side interface; provided so an
// in-process fake can stand in for the remote detector in tests.
type DetectorServer interface {
	Auth(context.Context, *AuthRequest) (*AuthResponse, error)
	Detect(Detector_DetectServer) error
}

// Detector_DetectServer is the server side of the bidirectional stream.
type Detector_DetectServer interface {
	Send(*DetectResponse) error
	Recv() (*DetectRequest, error)
	grpc.ServerStream
}

type detectorDetectServer struct {
	grpc.ServerStream
}

func (s *detectorDetectServer) Send(resp *DetectResponse) error {
	return s.ServerStream.SendMsg(resp)
}

func (s *detectorDetectServer) Recv() (*DetectRequest, error) {
	req := new(DetectRequest)
	if err := s.ServerStream.RecvMsg(req); err != nil {
		return nil, err
	}
	return req, nil
}

func authHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AuthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DetectorServer).Auth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Auth"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DetectorServer).Auth(ctx, req.(*AuthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func detectHandler(srv any, stream grpc.ServerStream) error {
	return srv.(DetectorServer).Detect(&detectorDetectServer{stream})
}

var detectStreamDesc = grpc.StreamDesc{
	StreamName:    "Detect",
	Handler:       detectHandler,
	ServerStreams: true,
	ClientStreams: true,
}

// ServiceDesc is the gRPC service description registered with a
// grpc.Server, hand-authored in the same shape protoc-gen-go-grpc emits.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DetectorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Auth", Handler: authHandler},
	},
	Streams:  []grpc.StreamDesc{detectStreamDesc},
	Metadata: "detectpb/detect.proto",
}

// RegisterDetectorServer registers srv as the handler for ServiceDesc.
func RegisterDetectorServer(s grpc.ServiceRegistrar, srv DetectorServer) {
	s.RegisterService(&ServiceDesc, srv)
}
