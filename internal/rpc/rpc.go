// Package rpc implements the RPC bridge (component G): it authenticates
// against the detector, opens the bidirectional Detect stream,
// multiplexes outgoing frames, and correlates inbound responses back
// into pending export records.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/google/uuid"

	"github.com/wildlens/camtrap/internal/correlation"
	"github.com/wildlens/camtrap/internal/detectpb"
	"github.com/wildlens/camtrap/internal/model"
)

// State is one position in the bridge's Init -> Authenticated ->
// Streaming -> Draining -> Done|Failed state machine.
type State int32

const (
	StateInit State = iota
	StateAuthenticated
	StateStreaming
	StateDraining
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAuthenticated:
		return "authenticated"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options parameterizes the detection request built from each Frame.
type Options struct {
	IOU   float32
	Score float32
}

// Bridge drives one run of the Init->...->Done|Failed state machine.
type Bridge struct {
	client  detectpb.DetectorClient
	corr    *correlation.Map
	opts    Options
	state   atomic.Int32
	logf    func(format string, args ...any)
	session string
}

// New returns a Bridge over client, using corr to stash pending export
// records between outbound sends and inbound correlation.
func New(client detectpb.DetectorClient, corr *correlation.Map, opts Options, logf func(string, ...any)) *Bridge {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	b := &Bridge{client: client, corr: corr, opts: opts, logf: logf}
	b.state.Store(int32(StateInit))
	return b
}

// State returns the bridge's current state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

func (b *Bridge) setState(s State) {
	b.state.Store(int32(s))
}

// Authenticate calls Auth(token) and, on success, retains the returned
// session token for use as outgoing "authorization" metadata.
func (b *Bridge) Authenticate(ctx context.Context, token string) error {
	resp, err := b.client.Auth(ctx, &detectpb.AuthRequest{Token: token})
	if err != nil {
		b.setState(StateFailed)
		return fmt.Errorf("auth transport error: %w", err)
	}
	if !resp.Success {
		b.setState(StateFailed)
		return fmt.Errorf("auth rejected")
	}
	b.session = resp.Token
	b.setState(StateAuthenticated)
	return nil
}

// Run opens the Detect stream and drives it until the stream ends: the
// outbound side is closed once frames closes (or a send fails), and Run
// returns after the inbound side reaches end of stream or an error and
// the send loop has stopped. Completed
// correlations and decode failures forwarded directly by the caller
// both land on exportCh. Run returns the terminal transport error, if
// any; a clean EOS is not an error.
func (b *Bridge) Run(ctx context.Context, frames <-chan model.Frame, exportCh chan<- model.ExportFrame) error {
	if b.State() != StateAuthenticated {
		return fmt.Errorf("bridge must be authenticated before streaming, got state %s", b.State())
	}

	outCtx := ctx
	if b.session != "" {
		outCtx = metadata.AppendToOutgoingContext(ctx, "authorization", b.session)
	}

	stream, err := b.client.Detect(outCtx)
	if err != nil {
		b.setState(StateFailed)
		return fmt.Errorf("open detect stream: %w", err)
	}
	b.setState(StateStreaming)

	sendErrCh := make(chan error, 1)
	go b.sendLoop(stream, frames, sendErrCh)

	recvErr := b.recvLoop(stream, exportCh)

	b.setState(StateDraining)

	sendErr := <-sendErrCh
	if recvErr != nil {
		b.logStreamEnd(recvErr)
		b.setState(StateDone)
		return recvErr
	}
	if sendErr != nil {
		b.logStreamEnd(sendErr)
		b.setState(StateDone)
		return sendErr
	}
	b.setState(StateDone)
	return nil
}

// sendLoop is the outbound "lazy sequence": one DetectRequest per Frame
// received from the media pipeline, concurrently with recvLoop awaiting
// network readiness, per the async-stream-generator design note.
func (b *Bridge) sendLoop(stream detectpb.Detector_DetectClient, frames <-chan model.Frame, errCh chan<- error) {
	for frame := range frames {
		id := uuid.NewString()

		pending := pendingRecord(frame)
		b.corr.Insert(id, pending)

		req := &detectpb.DetectRequest{
			UUID:   id,
			Image:  frame.Image,
			Width:  int32(frame.Width),
			Height: int32(frame.Height),
			IOU:    b.opts.IOU,
			Score:  b.opts.Score,
		}
		if err := stream.Send(req); err != nil {
			errCh <- fmt.Errorf("send detect request: %w", err)
			_ = stream.CloseSend()
			return
		}
	}
	errCh <- nil
	_ = stream.CloseSend()
}

func (b *Bridge) recvLoop(stream detectpb.Detector_DetectClient, exportCh chan<- model.ExportFrame) error {
	for {
		resp, err := stream.Recv()
		if err != nil {
			if isEOF(err) {
				return nil
			}
			return err
		}

		pending, ok := b.corr.Take(resp.UUID)
		if !ok {
			continue // unknown uuid: already taken or never sent, drop silently
		}

		pending.Label = &resp.Label
		pending.Bboxes = convertBoxes(resp.Boxes)
		exportCh <- pending
	}
}

func (b *Bridge) logStreamEnd(err error) {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated:
			b.logf("detect stream ended: Unauthenticated: %s", st.Message())
			return
		case codes.ResourceExhausted:
			b.logf("detect stream ended: ResourceExhausted: %s", st.Message())
			return
		}
	}
	b.logf("detect stream ended: %v", err)
}

func pendingRecord(frame model.Frame) model.ExportFrame {
	var shootTime *string
	if frame.ShootTime != nil {
		s := frame.ShootTime.Format("2006-01-02T15:04:05Z07:00")
		shootTime = &s
	}
	return model.ExportFrame{
		File:        frame.File.SourcePath,
		FrameIndex:  frame.FrameIndex,
		ShootTime:   shootTime,
		TotalFrames: frame.TotalFrames,
	}
}

func convertBoxes(boxes []detectpb.Bbox) []model.Bbox {
	out := make([]model.Bbox, len(boxes))
	for i, b := range boxes {
		out[i] = model.Bbox{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2, Class: b.Class, Score: b.Score}
	}
	return out
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
