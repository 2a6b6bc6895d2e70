package shader

import (
	"errors"
	"testing"
)

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Stage: StageFragment, Log: "0:12: 'vec5' : undeclared identifier"}
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	want := "shader fragment stage failed: 0:12: 'vec5' : undeclared identifier"
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}

// invalidProgram builds the state Compile leaves behind on failure, without
// needing a GL context.
func invalidProgram(stage, diag string) *Program {
	p := &Program{warned: make(map[string]struct{})}
	p.fail(&CompileError{Stage: stage, Log: diag})
	return p
}

func TestInvalidProgramIsSafeNoOp(t *testing.T) {
	p := invalidProgram(StageFragment, "syntax error")
	if p.Valid() {
		t.Fatal("failed program reports valid")
	}
	if p.Diagnostic() != "syntax error" {
		t.Errorf("Diagnostic() = %q, want %q", p.Diagnostic(), "syntax error")
	}
	// None of these may touch GL or panic on an invalid program.
	p.Use()
	p.SetFloat("radius", 1)
	p.SetInt("uInput", 0)
	p.Destroy()
}

func TestInvalidProgramLocationNeverResolves(t *testing.T) {
	p := invalidProgram(StageVertex, "bad")
	if _, ok := p.location("anything"); ok {
		t.Error("location resolved on an invalid program")
	}
}

func TestWarnOnceDeduplicates(t *testing.T) {
	p := invalidProgram(StageLink, "x")
	p.warnOnce("k", "msg")
	p.warnOnce("k", "msg")
	if len(p.warned) != 1 {
		t.Errorf("warned set has %d entries, want 1", len(p.warned))
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("a\nb\nc"); got != "a" {
		t.Errorf("firstLine = %q, want a", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q, want single", got)
	}
}

// stubCompile counts invocations and can be told to fail, standing in for the
// GL compiler in library tests.
type stubCompile struct {
	calls int
	fail  bool
}

func (s *stubCompile) fn(vs, fs string) (*Program, error) {
	s.calls++
	if s.fail {
		err := &CompileError{Stage: StageFragment, Log: "stub failure"}
		p := &Program{warned: make(map[string]struct{})}
		p.fail(err)
		return p, err
	}
	return &Program{valid: true, warned: make(map[string]struct{})}, nil
}

func TestLibraryCompilesOncePerName(t *testing.T) {
	stub := &stubCompile{}
	lib := NewLibrary()
	lib.compile = stub.fn

	p1, err := lib.GetOrCreate("vignette", VertexSource, "frag-a")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	p2, err := lib.GetOrCreate("vignette", VertexSource, "frag-a")
	if err != nil {
		t.Fatalf("GetOrCreate (cached): %v", err)
	}
	if p1 != p2 {
		t.Error("cached lookup returned a different program")
	}
	if stub.calls != 1 {
		t.Errorf("compile invoked %d times, want 1", stub.calls)
	}
	if lib.Len() != 1 {
		t.Errorf("Len = %d, want 1", lib.Len())
	}
}

func TestLibraryDistinctNamesCompileSeparately(t *testing.T) {
	stub := &stubCompile{}
	lib := NewLibrary()
	lib.compile = stub.fn

	lib.GetOrCreate("blur", VertexSource, "frag-a")
	lib.GetOrCreate("glow", VertexSource, "frag-b")
	if stub.calls != 2 {
		t.Errorf("compile invoked %d times, want 2", stub.calls)
	}
}

func TestLibraryCachesFailures(t *testing.T) {
	stub := &stubCompile{fail: true}
	lib := NewLibrary()
	lib.compile = stub.fn

	p1, err1 := lib.GetOrCreate("broken", VertexSource, "bad source")
	p2, err2 := lib.GetOrCreate("broken", VertexSource, "bad source")

	if err1 == nil || err2 == nil {
		t.Fatal("expected errors from failing compile")
	}
	var cerr *CompileError
	if !errors.As(err1, &cerr) || cerr.Log != "stub failure" {
		t.Errorf("err1 = %v, want CompileError with stub diagnostic", err1)
	}
	if stub.calls != 1 {
		t.Errorf("failed compile re-invoked; %d calls, want 1", stub.calls)
	}
	if p1 != p2 {
		t.Error("cached failure returned different instances")
	}
	if p1.Valid() {
		t.Error("failed program reports valid")
	}
}

func TestLibraryDestroyEmpties(t *testing.T) {
	// Invalid programs keep Destroy away from GL calls in this process.
	stub := &stubCompile{fail: true}
	lib := NewLibrary()
	lib.compile = stub.fn
	lib.GetOrCreate("a", VertexSource, "x")
	lib.GetOrCreate("b", VertexSource, "y")
	lib.Destroy()
	if lib.Len() != 0 {
		t.Errorf("Len after Destroy = %d, want 0", lib.Len())
	}
	if _, ok := lib.Lookup("a"); ok {
		t.Error("entry survived Destroy")
	}
}
