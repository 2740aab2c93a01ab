// Package archive reads Rollcage IDX/IMG archive pairs.
//
// The IDX file lists where each asset lives in the IMG data blob. Assets are
// pulled one at a time by id; GT20 compressed assets are decompressed and
// re-classified on the way out.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/mmap"

	"github.com/rctools/pkg/format"
	"github.com/rctools/pkg/gt"
	"github.com/rctools/pkg/idx"
)

// DefaultCacheSize is the number of decoded assets kept by default.
const DefaultCacheSize = 64

// Options configures an Archive.
type Options struct {
	CacheSize int // Decoded assets to keep (0 disables the cache)
}

// Archive is an opened IDX/IMG pair. It is safe for concurrent use.
type Archive struct {
	Records []idx.ArchiveRecord

	blob   io.ReaderAt
	size   int64
	closer io.Closer
	cache  *lru.Cache[int, *Asset]
}

// New builds an archive from an index buffer and a data blob of the given
// size. Trailing index bytes that do not form a record are ignored.
func New(index []byte, blob io.ReaderAt, size int64, opts Options) (*Archive, error) {
	records, err := idx.ParseRecordsStrict(index)
	if errors.Is(err, idx.ErrMalformedIndex) {
		log.Warnf("%v; ignoring them", err)
	}

	a := &Archive{
		Records: records,
		blob:    blob,
		size:    size,
	}

	if opts.CacheSize > 0 {
		a.cache, err = lru.New[int, *Asset](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create asset cache: %w", err)
		}
	}
	return a, nil
}

// Open reads the index file and memory-maps the data file.
func Open(idxPath, imgPath string, opts Options) (*Archive, error) {
	index, err := os.ReadFile(idxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	blob, err := mmap.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to map data file: %w", err)
	}

	a, err := New(index, blob, int64(blob.Len()), opts)
	if err != nil {
		blob.Close()
		return nil, err
	}
	a.closer = blob
	return a, nil
}

// DefaultImgPath returns the data file expected next to an index file.
func DefaultImgPath(idxPath string) string {
	return strings.TrimSuffix(idxPath, filepath.Ext(idxPath)) + ".img"
}

// Close releases the data file mapping, if any.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Len returns the number of assets.
func (a *Archive) Len() int {
	return len(a.Records)
}

// Size returns the size of the data blob.
func (a *Archive) Size() int64 {
	return a.size
}

// Record returns the index record for asset id.
func (a *Archive) Record(id int) (idx.ArchiveRecord, error) {
	if id < 0 || id >= len(a.Records) {
		return idx.ArchiveRecord{}, &AssetError{ID: id, Err: ErrNoSuchAsset}
	}
	return a.Records[id], nil
}

// Raw returns the stored bytes of asset id, as found in the data blob.
func (a *Archive) Raw(id int) ([]byte, error) {
	rec, err := a.Record(id)
	if err != nil {
		return nil, err
	}

	if rec.End() > uint64(a.size) {
		return nil, &AssetError{ID: id, Err: fmt.Errorf("%w: [%#x, %#x) past data end %#x",
			ErrOutOfRange, rec.FileOffset, rec.End(), a.size)}
	}

	data := make([]byte, rec.CompressedLength)
	if len(data) == 0 {
		return data, nil
	}
	if _, err := a.blob.ReadAt(data, int64(rec.FileOffset)); err != nil {
		return nil, &AssetError{ID: id, Err: fmt.Errorf("failed to read data: %w", err)}
	}
	return data, nil
}

// Asset returns asset id with any GT20 compression removed.
func (a *Archive) Asset(id int) (*Asset, error) {
	if a.cache != nil {
		if asset, ok := a.cache.Get(id); ok {
			return asset, nil
		}
	}

	asset, err := a.decode(id)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Add(id, asset)
	}
	return asset, nil
}

func (a *Archive) decode(id int) (*Asset, error) {
	raw, err := a.Raw(id)
	if err != nil {
		return nil, err
	}

	asset := &Asset{
		ID:     id,
		Record: a.Records[id],
		Format: format.Identify(raw),
		Data:   raw,
	}

	if asset.Format == format.CompressedStream {
		data, err := gt.Decompress(raw, asset.Record.DecompressedLength)
		if err != nil {
			return nil, &AssetError{ID: id, Err: err}
		}
		asset.Data = data
		asset.Compressed = true
		asset.Format = format.Identify(data)
	}
	return asset, nil
}
