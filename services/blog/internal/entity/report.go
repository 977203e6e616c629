package entity

type ReportType string

const (
	ReportTypePost    ReportType = "post"
	ReportTypeComment ReportType = "comment"
)

func (t ReportType) Valid() bool {
	return t == ReportTypePost || t == ReportTypeComment
}

type Report struct {
	UID           string     `json:"uid"`
	ReportType    ReportType `json:"report_type"`
	ObjectUID     string     `json:"object_uid"`
	ReportedByUID string     `json:"reported_by_uid"`
	Reason        *string    `json:"reason"`
	CreatedAt     int64      `json:"created_at"`
}
