package draft

import (
	"context"
	"fmt"

	"padstock/internal/domain/service"
	"padstock/pkg/errors"
	"padstock/pkg/logger"
)

// MaxImagesPerSet bounds every image set, global or per-variant.
const MaxImagesPerSet = 5

// ImageItem is one entry of an image set. Exactly one of the two sources is
// meaningful at a time: File is set while the image is pending upload, URL
// once it is persisted. Preview always holds something displayable (the local
// file name before upload, the final URL after). An item carrying neither a
// file nor a URL is corrupt and is dropped before submission.
type ImageItem struct {
	File    *service.ImageFile
	Preview string
	URL     string
}

// ImageSet tracks a mixed collection of persisted and pending images for one
// variant (or for the whole product when it has no variants) and performs the
// differential upload: only pending files ever hit the network.
type ImageSet struct {
	items *list[ImageItem]
}

func NewImageSet() *ImageSet {
	return &ImageSet{items: newList[ImageItem](MaxImagesPerSet, nil)}
}

// NewImageSetFromURLs seeds a set with already-persisted images, in order.
// Hydration is exempt from the bound: a record persisted before the limit may
// carry more than MaxImagesPerSet images, and dropping the overflow here
// would lose those references on the next save. The bound still rejects every
// addition to such a set.
func NewImageSetFromURLs(urls []string) *ImageSet {
	s := NewImageSet()
	items := make([]ImageItem, 0, len(urls))
	for _, u := range urls {
		items = append(items, ImageItem{Preview: u, URL: u})
	}
	s.items.seed(items)
	return s
}

// AddFiles appends one pending item per file. The whole batch is rejected,
// with no mutation, if it would push the set past MaxImagesPerSet.
func (s *ImageSet) AddFiles(files ...service.ImageFile) error {
	if s.items.len()+len(files) > MaxImagesPerSet {
		return errors.Validation("images", fmt.Sprintf("at most %d images per set", MaxImagesPerSet))
	}
	items := make([]ImageItem, len(files))
	for i := range files {
		f := files[i]
		items[i] = ImageItem{File: &f, Preview: f.Name}
	}
	return s.items.appendAll(items...)
}

// Remove deletes by position. It has no network side effect: a persisted
// image removed here simply stops being referenced by the product.
func (s *ImageSet) Remove(i int) error {
	return s.items.removeAt(i)
}

func (s *ImageSet) Len() int {
	return s.items.len()
}

func (s *ImageSet) Items() []ImageItem {
	return s.items.all()
}

// URLs returns the persisted URLs currently in the set, in order.
func (s *ImageSet) URLs() []string {
	urls := make([]string, 0, s.items.len())
	for _, item := range s.items.all() {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}

// HasPending reports whether any image still awaits upload.
func (s *ImageSet) HasPending() bool {
	for _, item := range s.items.all() {
		if item.File != nil {
			return true
		}
	}
	return false
}

// UploadPending uploads the set's pending files in one batched call and
// returns the full URL list for submission: existing URLs first, then the
// freshly uploaded ones, in file order. Items with neither a file nor a URL
// are dropped as corrupt. With nothing pending, no network call is made and
// the existing URLs come back unchanged.
//
// On upload failure the existing URLs are returned along with the error: the
// failed images are excluded from the submission rather than blocking it, and
// the caller reports the error against the owning variant. The set itself is
// refreshed to persisted URLs only after a successful upload.
func (s *ImageSet) UploadPending(ctx context.Context, uploader service.ImageUploader, scope string) ([]string, error) {
	var (
		existing []string
		pending  []service.ImageFile
	)
	for _, item := range s.items.all() {
		switch {
		case item.File != nil:
			pending = append(pending, *item.File)
		case item.URL != "":
			existing = append(existing, item.URL)
		default:
			logger.Warn("Dropping corrupt image item in %s (no file, no URL)", scope)
		}
	}

	if len(pending) == 0 {
		return existing, nil
	}

	uploaded, err := uploader.UploadImages(ctx, pending)
	if err != nil {
		logger.LogUploadError(scope, len(pending), err)
		return existing, errors.Upload(scope, err)
	}

	merged := append(append([]string{}, existing...), uploaded...)

	refreshed := make([]ImageItem, 0, len(merged))
	for _, u := range merged {
		refreshed = append(refreshed, ImageItem{Preview: u, URL: u})
	}
	s.items.seed(refreshed)

	return merged, nil
}
