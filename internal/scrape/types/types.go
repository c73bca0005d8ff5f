package types

import (
	"github.com/PuerkitoBio/goquery"
)

// Assembler maps one parsed detail page into a record.
type Assembler[T any] interface {
	Name() string
	Assemble(doc *goquery.Document) (T, error)
}

// Observer receives progress callbacks from a pipeline run. Any method may be
// left as a no-op.
type Observer interface {
	IndexFetched(pipeline, url string, links int)
	RecordAssembled(pipeline string, i, total int, record any)
	Exported(pipeline, path string, count int)
}

type ScrapeStatus struct {
	Operation   string `json:"operation"`
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastRecords int    `json:"last_records"`
	Running     bool   `json:"running"`
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) IndexFetched(string, string, int)      {}
func (NopObserver) RecordAssembled(string, int, int, any) {}
func (NopObserver) Exported(string, string, int)          {}
