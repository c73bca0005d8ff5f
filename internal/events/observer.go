package events

// Observer publishes pipeline progress on a Hub. It satisfies the scrape
// observer interface.
type Observer struct {
	Hub       *Hub
	RequestID string
}

type indexData struct {
	Pipeline string `json:"pipeline"`
	Index    string `json:"index"`
	Links    int    `json:"links"`
}

type recordData struct {
	Pipeline string `json:"pipeline"`
	N        int    `json:"n"`
	Total    int    `json:"total"`
	Record   any    `json:"record"`
}

type exportData struct {
	Pipeline string `json:"pipeline"`
	Path     string `json:"path"`
	Records  int    `json:"records"`
}

func (o Observer) IndexFetched(pipeline, url string, links int) {
	o.Hub.Publish(MakeEvent(o.RequestID, TypeIndexFetched, 1, indexData{pipeline, url, links}))
}

func (o Observer) RecordAssembled(pipeline string, i, total int, record any) {
	o.Hub.Publish(MakeEvent(o.RequestID, TypeRecordAssembled, 1, recordData{pipeline, i, total, record}))
}

func (o Observer) Exported(pipeline, path string, count int) {
	o.Hub.Publish(MakeEvent(o.RequestID, TypeExported, 1, exportData{pipeline, path, count}))
}
