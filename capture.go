package main

// resourceTimingEntry mirrors one browser resource-timing record as reported
// by the injected collector script. Sizes may be zeroed by the browser for
// cross-origin resources without timing-allow-origin.
type resourceTimingEntry struct {
	Name            string  `json:"name"`
	InitiatorType   string  `json:"initiator_type"`
	StartTime       float64 `json:"start_time"`
	FetchStart      float64 `json:"fetch_start"`
	ResponseEnd     float64 `json:"response_end"`
	Duration        float64 `json:"duration"`
	TransferSize    int64   `json:"transfer_size"`
	EncodedBodySize int64   `json:"encoded_body_size"`
	DecodedBodySize int64   `json:"decoded_body_size"`
}

// scriptTag is one declared script element parsed out of the document HTML.
type scriptTag struct {
	Src    string
	Async  bool
	Defer  bool
	Module bool
	Text   string // inline body, empty for external scripts
}

// navigationTiming holds the navigation-timing fields the engine consumes.
type navigationTiming struct {
	DomInteractive   float64 `json:"dom_interactive"`
	DomContentLoaded float64 `json:"dom_content_loaded"`
	Load             float64 `json:"load"`
}

// longTaskMetrics accumulates buffered long-task observer samples.
type longTaskMetrics struct {
	Count     int     `json:"count"`
	TotalTime float64 `json:"total"`
}

// pageCapture is the raw material of one analysis pass: everything read out
// of the page before the engine runs. Absent Performance APIs yield empty
// slices and zeroed metrics, never an error.
type pageCapture struct {
	DocumentURL  string               `json:"-"`
	DocumentHost string               `json:"-"`
	Resources    []resourceTimingEntry `json:"resources"`
	GlobalProps  []string             `json:"global_props"`
	Navigation   navigationTiming     `json:"navigation"`
	LongTasks    longTaskMetrics      `json:"long_tasks"`

	// parsed out of the captured HTML, not part of the collector payload
	Scripts    []scriptTag `json:"-"`
	HasCSPMeta bool        `json:"-"`
}

// globalSet converts the captured window property names into a lookup set.
func (c *pageCapture) globalSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.GlobalProps))
	for _, name := range c.GlobalProps {
		set[name] = struct{}{}
	}
	return set
}
