package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// subsetPages returns a context holding only the first keep pages of ctx. The
// source context is returned untouched when nothing needs to be dropped.
func subsetPages(ctx *model.Context, keep int) (*model.Context, error) {
	if keep < 1 {
		keep = 1
	}
	if keep >= ctx.PageCount {
		return ctx, nil
	}
	pages := make([]int, keep)
	for i := range pages {
		pages[i] = i + 1
	}
	sub, err := pdfcpu.ExtractPages(ctx, pages, false)
	if err != nil {
		return nil, err
	}
	if err := sub.EnsurePageCount(); err != nil {
		return nil, err
	}
	return sub, nil
}

// scalePageContent wraps every page's content stream in a uniform scaling
// transform about the page origin. Pages without content are skipped.
func scalePageContent(ctx *model.Context, factor float64) error {
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return err
		}
		if pageDict == nil {
			continue
		}
		if _, found := pageDict.Find("Contents"); !found {
			continue
		}
		content, err := ctx.PageContent(pageDict, pageNr)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, "q %.4f 0 0 %.4f 0 0 cm ", factor, factor)
		buf.Write(content)
		buf.WriteString(" Q ")

		sd, err := ctx.NewStreamDictForBuf(buf.Bytes())
		if err != nil {
			return err
		}
		if err := sd.Encode(); err != nil {
			return err
		}
		indRef, err := ctx.IndRefForNewObject(*sd)
		if err != nil {
			return err
		}
		pageDict["Contents"] = *indRef
	}
	return nil
}

// shrinkPageBoxes scales each page's media and crop boxes by factor, keeping
// the lower-left corner fixed. Pages without size information are skipped.
func shrinkPageBoxes(ctx *model.Context, factor float64) error {
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, inh, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return err
		}
		if pageDict == nil || inh == nil {
			continue
		}
		box := inh.MediaBox
		if box == nil {
			box = inh.CropBox
		}
		if box == nil {
			continue
		}
		scaled := types.RectForWidthAndHeight(box.LL.X, box.LL.Y, box.Width()*factor, box.Height()*factor)
		pageDict["MediaBox"] = scaled.Array()
		if cb := inh.CropBox; cb != nil {
			scaledCrop := types.RectForWidthAndHeight(cb.LL.X, cb.LL.Y, cb.Width()*factor, cb.Height()*factor)
			pageDict["CropBox"] = scaledCrop.Array()
		}
	}
	return nil
}

// stripAnnotations removes per-page annotation entries and any document level
// form definition.
func stripAnnotations(ctx *model.Context) error {
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return err
		}
		if pageDict == nil {
			continue
		}
		pageDict.Delete("Annots")
	}
	if rootDict, err := ctx.Catalog(); err == nil && rootDict != nil {
		rootDict.Delete("AcroForm")
	}
	return nil
}

// infoKeys are the document information fields cleared during late attempts.
var infoKeys = []string{"Title", "Author", "Subject", "Keywords", "Producer", "Creator"}

// stripMetadata clears the document information dictionary and drops any XMP
// metadata stream hanging off the catalog.
func stripMetadata(ctx *model.Context) error {
	if ctx.Info != nil {
		d, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return err
		}
		if d != nil {
			for _, key := range infoKeys {
				d.Delete(key)
			}
		}
	}
	if rootDict, err := ctx.Catalog(); err == nil && rootDict != nil {
		rootDict.Delete("Metadata")
	}
	return nil
}
