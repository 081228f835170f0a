package pdf

import (
	"sort"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// fullEngine merges pages and writes outlines with pdfcpu.
type fullEngine struct {
	conf *model.Configuration
}

func newFullEngine() *fullEngine {
	disableConfigDir.Do(api.DisableConfigDir)
	return &fullEngine{conf: model.NewDefaultConfiguration()}
}

func (e *fullEngine) merge(files []string, out string, titles []string) error {
	if err := api.MergeCreateFile(files, out, false, e.conf); err != nil {
		return err
	}

	bms := make([]pdfcpu.Bookmark, 0, len(files))
	page := 1
	for i, f := range files {
		n, err := api.PageCountFile(f)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		bms = append(bms, pdfcpu.Bookmark{PageFrom: page, Title: titles[i]})
		page += n
	}
	if len(bms) == 0 {
		return nil
	}
	return api.AddBookmarksFile(out, "", bms, true, e.conf)
}

func (e *fullEngine) addBookmarks(path string, bookmarks []Bookmark) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, err
	}

	bms := make([]pdfcpu.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Page < 0 || b.Page >= count {
			continue
		}
		title := b.Title
		if title == "" {
			title = "Untitled"
		}
		bms = append(bms, pdfcpu.Bookmark{PageFrom: b.Page + 1, Title: title})
	}
	if len(bms) == 0 {
		return 0, nil
	}
	// pdfcpu requires outline entries in ascending page order.
	sort.SliceStable(bms, func(i, j int) bool { return bms[i].PageFrom < bms[j].PageFrom })
	if err := api.AddBookmarksFile(path, "", bms, true, e.conf); err != nil {
		return 0, err
	}
	return len(bms), nil
}

func (e *fullEngine) info(path string) (*Info, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, err
	}
	return &Info{
		Pages:    ctx.PageCount,
		Title:    ctx.XRefTable.Title,
		Author:   ctx.XRefTable.Author,
		Subject:  ctx.XRefTable.Subject,
		Creator:  ctx.XRefTable.Creator,
		Producer: ctx.XRefTable.Producer,
	}, nil
}
