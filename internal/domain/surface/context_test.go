package surface

import (
	"testing"

	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/shared/id"
)

func TestTableCreatesLazily(t *testing.T) {
	table := NewTable()
	sid := id.NewSurfaceID()

	ctx := table.Get(sid)
	if ctx == nil {
		t.Fatal("Get should create a context on first use")
	}
	if table.Get(sid) != ctx {
		t.Error("Get should return the same context for the same surface")
	}
	if len(table.All()) != 1 {
		t.Errorf("Expected 1 surface, got %d", len(table.All()))
	}
}

func TestTransientStack(t *testing.T) {
	ctx := newContext(id.NewSurfaceID())
	a := id.NewSessionID()
	b := id.NewSessionID()

	ctx.PushTransient(a)
	ctx.PushTransient(b)
	ctx.PushTransient(a) // duplicate push is ignored

	if got := ctx.Transients(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Unexpected transient stack: %v", got)
	}

	ctx.RemoveTransient(a)
	ctx.RemoveTransient(a) // absent remove is a no-op
	if got := ctx.Transients(); len(got) != 1 || got[0] != b {
		t.Errorf("Unexpected transient stack after remove: %v", got)
	}
}

func TestSetCurrentMirrorsParamCache(t *testing.T) {
	ctx := newContext(id.NewSurfaceID())
	s, _ := session.New(session.Options{Name: "docs"}, 1, "")
	_ = ctx.Sessions.Insert(s)

	ctx.SetCurrent(s)
	cached, ok := ctx.CachedCurrent()
	if !ok || cached != s.ID {
		t.Errorf("Expected cached current %s, got %s (ok=%v)", s.ID, cached, ok)
	}

	ctx.SetCurrent(nil)
	if _, ok := ctx.CachedCurrent(); ok {
		t.Error("Clearing current should drop the cached parameter")
	}
}

func TestParamRoundTrip(t *testing.T) {
	ctx := newContext(id.NewSurfaceID())

	if _, ok := ctx.Param("layout"); ok {
		t.Error("Unset parameter should report absent")
	}

	ctx.SetParam("layout", "wide")
	if v, ok := ctx.Param("layout"); !ok || v != "wide" {
		t.Errorf("Expected layout=wide, got %q (ok=%v)", v, ok)
	}

	ctx.ClearParams()
	if _, ok := ctx.Param("layout"); ok {
		t.Error("ClearParams should drop every parameter")
	}
}

func TestCollectAllAcrossSurfaces(t *testing.T) {
	table := NewTable()

	s1, _ := session.New(session.Options{Name: "alpha"}, 1, "")
	s2, _ := session.New(session.Options{Name: "beta"}, 1, "")
	s3, _ := session.New(session.Options{Name: "alpha"}, 1, "")

	_ = table.Get("srf_one").Sessions.Insert(s1)
	_ = table.Get("srf_two").Sessions.Insert(s2)
	_ = table.Get("srf_two").Sessions.Insert(s3)

	names := table.CollectAll(func(s *session.Session) []string { return []string{s.Name} })
	if len(names) != 2 {
		t.Errorf("Expected 2 deduplicated names across surfaces, got %v", names)
	}
	if table.TotalSessions() != 3 {
		t.Errorf("Expected 3 total sessions, got %d", table.TotalSessions())
	}
}

func TestFakeReleaseIsIdempotent(t *testing.T) {
	f := NewFake()
	buf := id.NewResourceID()

	f.ReleaseBuffer(buf)
	f.ReleaseBuffer(buf) // second release is a silent no-op
	if !f.BufferReleased(buf) {
		t.Error("Buffer should be released")
	}

	win := id.NewRegionID()
	f.ReleaseWindow(win)
	f.ReleaseWindow(win)
	if !f.WindowReleased(win) {
		t.Error("Window should be released")
	}
}

func TestFakeSnapshotRoundTrip(t *testing.T) {
	f := NewFake()

	snap := f.CaptureLayout()
	if !snap.Valid() {
		t.Fatal("Captured snapshot should be valid")
	}
	if err := f.RestoreLayout(snap); err != nil {
		t.Fatalf("RestoreLayout failed: %v", err)
	}
	if f.RestoreCount(snap) != 1 {
		t.Errorf("Expected 1 restore, got %d", f.RestoreCount(snap))
	}
}

func TestFakeRegionFallback(t *testing.T) {
	f := NewFake()
	second := f.AddRegion()

	focused := f.FocusedRegion()
	f.Protect(focused)
	if !f.IsProtectedRegion(focused) {
		t.Fatal("Region should be protected")
	}
	if f.NextRegion() != second {
		t.Error("NextRegion should return the following region in the ring")
	}
}
