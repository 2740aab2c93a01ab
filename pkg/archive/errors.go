package archive

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchAsset = errors.New("asset id out of range")
	ErrOutOfRange  = errors.New("record points outside the data file")
	ErrImageFormat = errors.New("unsupported image format: expected bmp or png")
)

// AssetError reports a failure local to one asset.
type AssetError struct {
	ID  int
	Err error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %d: %v", e.ID, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
