package encoding

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// xxHashEntry bundles a scratch buffer with a reusable hash state, pooled to
// avoid allocating one per Component/Name hash.
type xxHashEntry struct {
	buffer bytes.Buffer
	hash   *xxhash.Digest
}

var xxHashPool = newXxHashPool()

type pooledXxHash struct {
	pool sync.Pool
}

func newXxHashPool() *pooledXxHash {
	return &pooledXxHash{
		pool: sync.Pool{
			New: func() any {
				return &xxHashEntry{hash: xxhash.New()}
			},
		},
	}
}

func (p *pooledXxHash) Get() *xxHashEntry {
	return p.pool.Get().(*xxHashEntry)
}

func (p *pooledXxHash) Put(e *xxHashEntry) {
	e.buffer.Reset()
	e.hash.Reset()
	p.pool.Put(e)
}
