// Package shader loads shader bytecode from a file system. WGSL sources are
// compiled to SPIR-V on first use; precompiled .spv files are passed through.
package shader

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/naga"
	"golang.org/x/sync/errgroup"

	"github.com/vkngwrapper/hellotriangle/internal/diag"
	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// Library caches compiled bytecode by path. It is safe for concurrent use.
type Library struct {
	fsys fs.FS
	log  *slog.Logger

	mu    sync.Mutex
	cache map[string][]uint32
}

func NewLibrary(fsys fs.FS, logger *slog.Logger) *Library {
	if logger == nil {
		logger = diag.NopLogger()
	}
	return &Library{
		fsys:  fsys,
		log:   logger,
		cache: map[string][]uint32{},
	}
}

// Preload compiles every path concurrently so the first pipeline build does
// not pay for it.
func (l *Library) Preload(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := l.Bytecode(p)
			return err
		})
	}
	return g.Wait()
}

// Bytecode returns the SPIR-V words for name.
func (l *Library) Bytecode(name string) ([]uint32, error) {
	l.mu.Lock()
	code, ok := l.cache[name]
	l.mu.Unlock()
	if ok {
		return code, nil
	}

	code, err := l.load(name)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[name] = code
	l.mu.Unlock()

	return code, nil
}

func (l *Library) load(name string) ([]uint32, error) {
	source, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read shader %s", name), render.ErrIO)
	}

	switch ext := path.Ext(name); ext {
	case ".spv":
		return Words(source)
	case ".wgsl":
		spirv, err := naga.Compile(string(source))
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "compile %s", name), render.ErrShaderCompile)
		}
		l.log.Debug("compiled shader", "path", name, "bytes", len(spirv))
		return Words(spirv)
	default:
		return nil, errors.Mark(errors.Newf("unknown shader type %q for %s", ext, name), render.ErrShaderCompile)
	}
}
