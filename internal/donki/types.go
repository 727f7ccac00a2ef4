package donki

// Raw DONKI payload shapes, one per endpoint. Only the fields consumed by
// normalization are decoded; everything else in the payload is dropped.

type rawLinked struct {
	ActivityID string `json:"activityID"`
}

type rawFlare struct {
	FlrID        string      `json:"flrID"`
	BeginTime    string      `json:"beginTime"`
	EndTime      string      `json:"endTime"`
	ClassType    string      `json:"classType"`
	LinkedEvents []rawLinked `json:"linkedEvents"`
}

type rawAnalysis struct {
	Type  string  `json:"type"`
	Speed float64 `json:"speed"`
}

type rawCME struct {
	ActivityID   string        `json:"activityID"`
	StartTime    string        `json:"startTime"`
	CMEAnalyses  []rawAnalysis `json:"cmeAnalyses"`
	LinkedEvents []rawLinked   `json:"linkedEvents"`
}

type rawKp struct {
	KpIndex float64 `json:"kpIndex"`
}

type rawStorm struct {
	GstID        string      `json:"gstID"`
	StartTime    string      `json:"startTime"`
	AllKpIndex   []rawKp     `json:"allKpIndex"`
	LinkedEvents []rawLinked `json:"linkedEvents"`
}
