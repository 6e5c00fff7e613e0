package xkcd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/xkcd-downloader/internal/model"
)

// ErrNoImage is returned when metadata carries no usable image URL.
var ErrNoImage = errors.New("metadata has no image URL")

// HighResSuffix is inserted before the extension to address the 2x variant.
const HighResSuffix = "_2x"

// ResolveTarget derives the download target of comic id from its metadata.
//
// The extension is the text after the last "." of the img URL. The
// high-resolution candidate strips that extension and its dot from the end
// of the URL and appends "_2x." + ext, so
//
//	https://x.com/path/name.png
//
// becomes
//
//	https://x.com/path/name_2x.png
//
// Candidates are ordered high resolution first, standard second. The file
// name is "{id}.{ext}".
func ResolveTarget(id int, meta model.Metadata) (model.Target, error) {
	img, ok := meta.Img()
	if !ok {
		return model.Target{}, fmt.Errorf("comic %d: %w", id, ErrNoImage)
	}

	dot := strings.LastIndex(img, ".")
	ext := img[dot+1:]
	if dot < 0 || ext == "" || strings.Contains(ext, "/") {
		return model.Target{}, fmt.Errorf("comic %d: %w: no extension in %q", id, ErrNoImage, img)
	}

	primary := img[:len(img)-len(ext)-1] + HighResSuffix + "." + ext

	return model.Target{
		ID:         id,
		Candidates: []string{primary, img},
		Ext:        ext,
		FileName:   fmt.Sprintf("%d.%s", id, ext),
	}, nil
}
