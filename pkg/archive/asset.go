package archive

import (
	"fmt"

	"github.com/rctools/pkg/btp"
	"github.com/rctools/pkg/format"
	"github.com/rctools/pkg/gfxm"
	"github.com/rctools/pkg/idx"
)

// Asset is one decoded archive entry. Data is never modified after
// construction and may be shared between goroutines.
type Asset struct {
	ID         int
	Record     idx.ArchiveRecord
	Format     format.Format // format of Data
	Compressed bool          // Data was GT20 compressed in the archive
	Data       []byte
}

// Container parses the asset as a BTP texture container.
func (a *Asset) Container() (*btp.Container, error) {
	if a.Format != format.TextureContainer {
		return nil, fmt.Errorf("asset %d is %v, not a texture container", a.ID, a.Format)
	}
	return btp.Decode(a.Data)
}

// Model reads the GFXM header of a model asset.
func (a *Asset) Model() (*gfxm.Header, error) {
	if a.Format != format.GraphicsModel {
		return nil, fmt.Errorf("asset %d is %v, not a model", a.ID, a.Format)
	}
	return gfxm.ReadHeader(a.Data)
}

// Name returns the output name of the asset, without extension.
func (a *Asset) Name() string {
	return fmt.Sprintf("output%d", a.ID)
}

// FileName returns the output file name including the format extension.
func (a *Asset) FileName() string {
	if ext := a.Format.Extension(); ext != "" {
		return a.Name() + "." + ext
	}
	return a.Name()
}
