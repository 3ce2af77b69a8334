package pipeline

import (
	"errors"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if err := wrap(KindConfig, nil); err != nil {
		t.Errorf("wrap(_, nil) = %v, want nil", err)
	}
}

func TestWrapPreservesUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := wrap(KindAuth, underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is did not find the wrapped underlying error")
	}

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatal("errors.As could not extract *Error")
	}
	if pe.Kind != KindAuth {
		t.Errorf("Kind = %v, want %v", pe.Kind, KindAuth)
	}
}

func TestKindStringNames(t *testing.T) {
	cases := map[Kind]string{
		KindConfig:     "ConfigError",
		KindAuth:       "AuthError",
		KindTransport:  "TransportError",
		KindMedia:      "MediaError",
		KindCheckpoint: "CheckpointError",
		KindStaging:    "StagingError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
