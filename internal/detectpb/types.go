// Package detectpb defines the wire types and gRPC service description
// for the detector contract: an Auth unary call and a Detect
// bidirectional stream. No .proto toolchain is available in
// this environment, so the message types, codec, and ServiceDesc are
// hand-authored in the same shape protoc-gen-go-grpc would emit; the
// google.golang.org/grpc runtime itself (streaming, metadata, status
// codes, backpressure) is the genuine generated-client dependency.
package detectpb

// AuthRequest carries the client's bearer token to the detector.
type AuthRequest struct {
	Token string `json:"token"`
}

// AuthResponse reports whether authentication succeeded and, if so,
// the session token to use in subsequent request metadata.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Bbox is the wire form of a detection rectangle.
type Bbox struct {
	X1    float32 `json:"x1"`
	Y1    float32 `json:"y1"`
	X2    float32 `json:"x2"`
	Y2    float32 `json:"y2"`
	Class int32   `json:"class"`
	Score float32 `json:"score"`
}

// DetectRequest is one outbound frame sent on the Detect stream.
type DetectRequest struct {
	UUID   string  `json:"uuid"`
	Image  []byte  `json:"image"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
	IOU    float32 `json:"iou"`
	Score  float32 `json:"score"`
}

// DetectResponse is one inbound detection result, correlated back to
// its request by UUID.
type DetectResponse struct {
	UUID  string `json:"uuid"`
	Label string `json:"label"`
	Boxes []Bbox `json:"bboxs"`
}
