package pdf

import (
	"fmt"
	"os"
)

// Info is read-only document introspection.
type Info struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Pages    int    `json:"pages"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// InvalidFile is a rejected input with its reason.
type InvalidFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ValidationReport partitions a set of inputs.
type ValidationReport struct {
	Valid      []*Info       `json:"valid"`
	Invalid    []InvalidFile `json:"invalid"`
	TotalFiles int           `json:"totalFiles"`
	TotalPages int           `json:"totalPages"`
	TotalSize  int64         `json:"totalSize"`
}

// Info reads page count, size and document metadata of path.
func (m *Merger) Info(path string) (*Info, error) {
	if err := m.require(CapInspect); err != nil {
		return nil, err
	}
	if reason := checkInput(path); reason != "" {
		return nil, &Error{Kind: KindIO, Message: fmt.Sprintf("%s: %s", path, reason), Err: os.ErrNotExist}
	}

	info, err := m.engine.info(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Message: fmt.Sprintf("reading %s", path), Err: err}
	}
	if st, err := os.Stat(path); err == nil {
		info.Size = st.Size()
	}
	info.Path = path
	return info, nil
}

// ValidatePDFs inspects every path and sums pages and size over the
// readable ones.
func (m *Merger) ValidatePDFs(paths []string) (*ValidationReport, error) {
	if err := m.require(CapInspect); err != nil {
		return nil, err
	}

	report := &ValidationReport{
		Valid:      []*Info{},
		Invalid:    []InvalidFile{},
		TotalFiles: len(paths),
	}
	for _, p := range paths {
		if reason := checkInput(p); reason != "" {
			report.Invalid = append(report.Invalid, InvalidFile{Path: p, Reason: reason})
			continue
		}
		info, err := m.Info(p)
		if err != nil {
			report.Invalid = append(report.Invalid, InvalidFile{Path: p, Reason: err.Error()})
			continue
		}
		report.Valid = append(report.Valid, info)
		report.TotalPages += info.Pages
		report.TotalSize += info.Size
	}
	return report, nil
}
