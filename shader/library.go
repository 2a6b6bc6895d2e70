package shader

// Library caches compiled programs by name so each unique shader compiles at
// most once. Its lifetime is scoped to the owning graphics context: the
// renderer creates one at Initialize and destroys it at Shutdown, so separate
// pipelines (and tests) never share programs across unrelated contexts.
//
// Not safe for concurrent use; compilation is render-thread work.
type Library struct {
	programs map[string]*Program
	failures map[string]error

	// compile is swapped out by tests; production always runs Compile.
	compile func(vs, fs string) (*Program, error)
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		programs: make(map[string]*Program),
		failures: make(map[string]error),
		compile:  Compile,
	}
}

// GetOrCreate returns the cached program for name, compiling the sources on
// first use. Failed compilations are cached too: the same name returns the
// same invalid program and the original error without re-invoking the
// compiler.
func (l *Library) GetOrCreate(name, vertexSource, fragmentSource string) (*Program, error) {
	if p, ok := l.programs[name]; ok {
		return p, l.failures[name]
	}
	p, err := l.compile(vertexSource, fragmentSource)
	l.programs[name] = p
	if err != nil {
		l.failures[name] = err
	}
	return p, err
}

// Lookup returns the cached program for name without compiling.
func (l *Library) Lookup(name string) (*Program, bool) {
	p, ok := l.programs[name]
	return p, ok
}

// Len reports the number of cached entries, failures included.
func (l *Library) Len() int { return len(l.programs) }

// Destroy deletes every cached program. The library is reusable afterwards,
// though normally it is torn down together with its context.
func (l *Library) Destroy() {
	for name, p := range l.programs {
		p.Destroy()
		delete(l.programs, name)
		delete(l.failures, name)
	}
}
