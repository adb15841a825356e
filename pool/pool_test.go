package pool

import (
	"sync/atomic"
	"testing"
)

func TestRequestBounds(t *testing.T) {
	p := New(3)
	defer p.Close()
	if p.Size() != 3 {
		t.Fatalf("Size = %d, want 3", p.Size())
	}
	hs := p.Request(5)
	if len(hs) != 3 {
		t.Fatalf("Request(5) on a pool of 3 gave %d handles", len(hs))
	}
	if more := p.Request(1); len(more) != 0 {
		t.Fatalf("exhausted pool still handed out %d handles", len(more))
	}
	for _, h := range hs {
		p.GiveBack(h)
	}
	if again := p.Request(2); len(again) != 2 {
		t.Fatalf("Request after GiveBack gave %d handles, want 2", len(again))
	}
}

func TestWakeWaitRuns(t *testing.T) {
	p := New(2)
	defer p.Close()
	hs := p.Request(2)
	var counter int64
	for round := 0; round < 10; round++ {
		for _, h := range hs {
			h := h
			p.Wake(h, func() { atomic.AddInt64(&counter, 1) })
		}
		for _, h := range hs {
			p.Wait(h)
		}
	}
	if counter != 20 {
		t.Fatalf("ran %d closures, want 20", counter)
	}
	for _, h := range hs {
		p.GiveBack(h)
	}
}

func TestZeroWorkerPool(t *testing.T) {
	p := New(0)
	defer p.Close()
	if hs := p.Request(4); len(hs) != 0 {
		t.Fatalf("empty pool handed out %d handles", len(hs))
	}
}
