package iocontext

import (
	"bytes"
	"context"
	"testing"
)

func TestDefaultIO(t *testing.T) {
	streams := DefaultIO()
	if streams.Out == nil || streams.ErrOut == nil || streams.In == nil {
		t.Error("DefaultIO should return non-nil streams")
	}
}

func TestWithIO_RoundTrip(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	ctx := WithIO(context.Background(), &IO{Out: out, ErrOut: errOut})

	got := GetIO(ctx)
	if got.Out != out {
		t.Error("GetIO should return the streams set with WithIO")
	}
	if got.ErrOut != errOut {
		t.Error("GetIO should preserve the error stream")
	}
}

func TestGetIO_DefaultsWhenUnset(t *testing.T) {
	if GetIO(context.Background()) == nil {
		t.Error("GetIO should fall back to the process streams")
	}
}

func TestGetIO_DefaultsWhenNil(t *testing.T) {
	ctx := WithIO(context.Background(), nil)
	if GetIO(ctx) == nil {
		t.Error("GetIO should fall back when a nil IO was stored")
	}
}
