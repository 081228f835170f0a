package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	lpdf "github.com/ledongthuc/pdf"
)

// Cover page layout in points on a Letter page, measured from the top.
const (
	coverLeft      = 72.0
	coverIndent    = 90.0
	coverTop       = 42.0
	coverLineStep  = 20.0
	coverBottomCap = 692.0
)

// coverPageEngine writes a cover page listing the inputs with gofpdf and
// inspects documents with ledongthuc/pdf. It cannot merge pages.
type coverPageEngine struct{}

func newCoverPageEngine() *coverPageEngine {
	return &coverPageEngine{}
}

func (e *coverPageEngine) merge(files []string, out string, _ []string) error {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetTitle("Course Materials", true)
	doc.SetCreator("coursebuild", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.Text(coverLeft, coverTop, "Course Materials")
	doc.SetFont("Helvetica", "", 12)
	doc.Text(coverLeft, coverTop+30, "Combined PDF Document")
	doc.Text(coverLeft, coverTop+70, "Files included:")

	y := coverTop + 100
	for _, f := range files {
		doc.Text(coverIndent, y, tr("- "+filepath.Base(f)))
		y += coverLineStep
		if y > coverBottomCap {
			doc.AddPage()
			doc.SetFont("Helvetica", "", 12)
			y = coverTop
		}
	}

	doc.SetFont("Helvetica", "I", 10)
	doc.Text(coverLeft, y+40, "Note: full PDF merging is unavailable in this build.")

	return doc.OutputFileAndClose(out)
}

func (e *coverPageEngine) addBookmarks(string, []Bookmark) (int, error) {
	return 0, fmt.Errorf("bookmarks are not supported by the %s backend", BackendCoverPage)
}

func (e *coverPageEngine) info(path string) (*Info, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta := r.Trailer().Key("Info")
	return &Info{
		Pages:    r.NumPage(),
		Title:    meta.Key("Title").Text(),
		Author:   meta.Key("Author").Text(),
		Subject:  meta.Key("Subject").Text(),
		Creator:  meta.Key("Creator").Text(),
		Producer: meta.Key("Producer").Text(),
	}, nil
}
