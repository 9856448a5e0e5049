package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"boardcam/api/internal/media/sniffer"
	"boardcam/api/internal/models"
)

// Page dimensions in points: 12x8 inches at 72 DPI, the capture board's
// native 3:2 aspect.
const (
	PageWidthPt  = 864.0
	PageHeightPt = 576.0
)

// Document renders the view into a PDF with one full-page image per item.
// Images are drawn over the entire page, stretched to the page bounds with
// no aspect correction. Items whose fetch fails, or whose bytes are not a
// PDF-embeddable raster format, are skipped and contribute no page.
func (e *Engine) Document(ctx context.Context, items []models.ViewItem) ([]byte, []ItemResult, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidthPt, Ht: PageHeightPt},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		data, err := e.fetcher.Fetch(ctx, item.URL)
		if err != nil {
			e.log.Warn().Err(err).Str("asset_id", item.ID).Msg("document page skipped")
			results = append(results, skipped(item.ID, err.Error()))
			continue
		}

		imageType, err := embeddableType(data)
		if err != nil {
			e.log.Warn().Err(err).Str("asset_id", item.ID).Msg("document page skipped")
			results = append(results, skipped(item.ID, err.Error()))
			continue
		}

		options := fpdf.ImageOptions{ImageType: imageType}
		doc.AddPage()
		doc.RegisterImageOptionsReader(item.ID, options, bytes.NewReader(data))
		doc.ImageOptions(item.ID, 0, 0, PageWidthPt, PageHeightPt, false, options, 0, "")
		results = append(results, included(item.ID))
	}

	buf := new(bytes.Buffer)
	if err := doc.Output(buf); err != nil {
		return nil, nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), results, nil
}

// embeddableType maps sniffed image bytes to the fpdf image type tag.
// WEBP and AVIF captures cannot be embedded and are skipped rather than
// poisoning the whole document.
func embeddableType(data []byte) (string, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}

	result, err := sniffer.DetectHead(head)
	if err != nil {
		return "", err
	}

	switch result.Type {
	case sniffer.TypeJPEG:
		return "JPG", nil
	case sniffer.TypePNG:
		return "PNG", nil
	case sniffer.TypeGIF:
		return "GIF", nil
	default:
		return "", fmt.Errorf("image type %s not embeddable", result.Type)
	}
}
