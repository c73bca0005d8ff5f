package scrape

import (
	"fmt"
	"log/slog"

	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/scrape/util"
)

// LogObserver reports pipeline progress through slog.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) log() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o LogObserver) IndexFetched(pipeline, url string, links int) {
	o.log().Info(fmt.Sprintf("[scrape:%s] retrieved %d %s", pipeline, links, pipeline), "index", url)
}

func (o LogObserver) RecordAssembled(pipeline string, i, total int, record any) {
	o.log().Debug(fmt.Sprintf("[scrape:%s] assembled", pipeline),
		"n", i, "of", total, "name", util.Truncate(util.CleanText(recordName(record)), 60))
}

func (o LogObserver) Exported(pipeline, path string, count int) {
	o.log().Info(fmt.Sprintf("[scrape:%s] successfully exported %s", pipeline, pipeline), "path", path, "records", count)
}

func recordName(record any) string {
	switch r := record.(type) {
	case domain.CompanyRecord:
		return r.Name
	case domain.PitchRecord:
		return r.Name
	}
	return ""
}

// MultiObserver fans every callback out to each observer in order.
type MultiObserver []types.Observer

func (m MultiObserver) IndexFetched(pipeline, url string, links int) {
	for _, o := range m {
		o.IndexFetched(pipeline, url, links)
	}
}

func (m MultiObserver) RecordAssembled(pipeline string, i, total int, record any) {
	for _, o := range m {
		o.RecordAssembled(pipeline, i, total, record)
	}
}

func (m MultiObserver) Exported(pipeline, path string, count int) {
	for _, o := range m {
		o.Exported(pipeline, path, count)
	}
}
