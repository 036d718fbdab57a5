// Package export names, bundles and ships generated views.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
	"mockupstudio/internal/storage"
	"mockupstudio/pkg/zip"
)

// FilePrefix starts every downloaded file name.
const FilePrefix = "neural-graffiti"

// ErrNoPrintFiles is returned when a print package is requested before any
// flat artwork exists.
var ErrNoPrintFiles = errors.New("export: design has no print files")

// File is one downloadable view.
type File struct {
	View domain.View
	Name string
	MIME string
	Data []byte
}

// Suffix is the download name fragment for a view.
func Suffix(v domain.View) string {
	switch v {
	case domain.ViewFlatFront:
		return "print-front"
	case domain.ViewFlatBack:
		return "print-back"
	default:
		return string(v)
	}
}

// FileName builds neural-graffiti-<id>-<suffix>.<ext>.
func FileName(designID, suffix, mime string) string {
	return fmt.Sprintf("%s-%s-%s.%s", FilePrefix, designID, suffix, extension(mime))
}

func extension(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

// ViewFile returns the file for one populated view.
func ViewFile(d domain.Design, v domain.View) (File, bool) {
	img := d.Views.Get(v)
	if img == nil {
		return File{}, false
	}
	return File{View: v, Name: FileName(d.ID, Suffix(v), img.MIMEType), MIME: img.MIMEType, Data: img.Data}, true
}

// Files lists every populated view of d.
func Files(d domain.Design) []File {
	var out []File
	for _, v := range d.Views.Populated() {
		if f, ok := ViewFile(d, v); ok {
			out = append(out, f)
		}
	}
	return out
}

// PrintPackage zips the flat print files of d.
func PrintPackage(d domain.Design) ([]byte, error) {
	var assets []zip.Asset
	for _, v := range domain.PrintViews {
		if f, ok := ViewFile(d, v); ok {
			assets = append(assets, zip.Asset{Filename: f.Name, MIME: f.MIME, Data: f.Data})
		}
	}
	if len(assets) == 0 {
		return nil, ErrNoPrintFiles
	}
	return zip.ArchiveAssets(assets, d.CreatedAt)
}

// PackageName is the download name of the print package.
func PackageName(designID string) string {
	return fmt.Sprintf("%s-%s-print-files.zip", FilePrefix, designID)
}

// LinkExpiry is how long a presigned export link stays valid.
const LinkExpiry = 24 * time.Hour

// presigner is implemented by sinks whose stored objects are private and need
// a signed link to be downloaded.
type presigner interface {
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Exporter copies designs into a storage sink.
type Exporter struct {
	sink   storage.Sink
	prefix string
	logger *infra.Logger
}

func NewExporter(sink storage.Sink, prefix string, logger *infra.Logger) *Exporter {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &Exporter{sink: sink, prefix: strings.Trim(prefix, "/"), logger: logger}
}

// Export writes every populated view of d and returns the location of each.
// Sinks that can presign return a temporary download link instead of the
// object location.
func (e *Exporter) Export(ctx context.Context, d domain.Design) (map[domain.View]string, error) {
	locations := make(map[domain.View]string)
	signer, canSign := e.sink.(presigner)
	for _, f := range Files(d) {
		key := path.Join(e.prefix, d.ID, f.Name)
		loc, err := e.sink.Put(ctx, key, f.MIME, f.Data)
		if err != nil {
			return locations, fmt.Errorf("export %s: %w", f.View, err)
		}
		if canSign {
			if loc, err = signer.PresignedURL(ctx, key, LinkExpiry); err != nil {
				return locations, fmt.Errorf("export %s: %w", f.View, err)
			}
		}
		locations[f.View] = loc
	}
	e.logger.Info().Str("design_id", d.ID).Int("files", len(locations)).Msg("export: design exported")
	return locations, nil
}
