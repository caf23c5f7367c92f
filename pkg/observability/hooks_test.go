package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCodecHooks struct {
	NoopCodecHooks
	decodes  int
	repaired int
}

func (h *recordingCodecHooks) OnDecodeStart(context.Context, string) { h.decodes++ }
func (h *recordingCodecHooks) OnReferenceRepair(_ context.Context, cleared int) {
	h.repaired += cleared
}

func TestDefaultHooksAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic when nothing is registered.
	Codec().OnDecodeStart(ctx, "GPML2013a")
	Codec().OnDecodeComplete(ctx, "GPML2013a", 10, time.Millisecond, nil)
	Model().OnElementAdded("DataNode", "n1")
	Cache().OnCacheHit(ctx, "xref")
}

func TestSetCodecHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCodecHooks{}
	SetCodecHooks(rec)

	ctx := context.Background()
	Codec().OnDecodeStart(ctx, "GPML2021")
	Codec().OnReferenceRepair(ctx, 3)
	// Methods not overridden fall through to the embedded no-op.
	Codec().OnEncodeStart(ctx, "GPML2021", 5)

	if rec.decodes != 1 || rec.repaired != 3 {
		t.Errorf("recorded = %d decodes, %d repaired", rec.decodes, rec.repaired)
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCodecHooks{}
	SetCodecHooks(rec)
	SetCodecHooks(nil)

	Codec().OnDecodeStart(context.Background(), "GPML2013a")
	if rec.decodes != 1 {
		t.Error("nil registration should leave the current hooks in place")
	}
}
