package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a sha256 sum.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey covers every input of the compiled output: the cache schema, the
// source content hash, the optimize level and the target.
func CacheKey(content [sha256.Size]byte, opts Options) Digest {
	buf := binary.BigEndian.AppendUint16(make([]byte, 0, 4+len(content)), cacheSchema)
	buf = append(buf, content[:]...)
	buf = append(buf, byte(opts.Level), byte(opts.Target))
	return sha256.Sum256(buf)
}
