package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	fetches int
	derives int
}

func (h *testPipelineHooks) OnFetchStart(context.Context, string) { h.fetches++ }
func (h *testPipelineHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {
}
func (h *testPipelineHooks) OnDeriveStart(context.Context, string) { h.derives++ }
func (h *testPipelineHooks) OnDeriveComplete(context.Context, string, int, time.Duration, error) {
}

type testCacheHooks struct {
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnFetchStart(ctx, "https://api.example.com/images/42")
	p.OnFetchComplete(ctx, "https://api.example.com/images/42", 512, time.Second, nil)
	p.OnDeriveStart(ctx, "tile")
	p.OnDeriveComplete(ctx, "tile", 2, time.Millisecond, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "entity")
	c.OnCacheMiss(ctx, "srcset")
	c.OnCacheSet(ctx, "entity", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	SetPipelineHooks(nil)
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("nil hooks must be ignored")
	}

	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil hooks must be ignored")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testPipelineHooks{}
	SetPipelineHooks(h)
	Pipeline().OnFetchStart(context.Background(), "https://x.test/i")
	Pipeline().OnDeriveStart(context.Background(), "tile")

	if h.fetches != 1 || h.derives != 1 {
		t.Errorf("hooks not invoked: fetches=%d derives=%d", h.fetches, h.derives)
	}
}
