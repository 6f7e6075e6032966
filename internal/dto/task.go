package dto

// StartTaskReq starts processing of one uploaded or remote archive. Exactly
// one of ArchivePath (returned by the upload endpoint) or ArchiveUrl must be
// set. Pattern overrides Preset when both are given.
type StartTaskReq struct {
	ArchivePath string `json:"archive_path"`
	ArchiveUrl  string `json:"archive_url"`
	Mode        string `json:"mode" binding:"omitempty,oneof=subtitles events both"`
	Preset      string `json:"preset"`
	Pattern     string `json:"pattern"`
	Strategy    string `json:"strategy" binding:"omitempty,oneof=segment fulltext"`
	Language    string `json:"language"`
}

type StartTaskResData struct {
	TaskId string `json:"task_id"`
}

type GetTaskReq struct {
	TaskId string `form:"taskId" binding:"required"`
}

type VideoResultInfo struct {
	VideoName  string `json:"video_name"`
	SrtUrl     string `json:"srt_url,omitempty"`
	EventCount int    `json:"event_count"`
	FailReason string `json:"fail_reason,omitempty"`
}

type GetTaskResData struct {
	TaskId     string            `json:"task_id"`
	Mode       string            `json:"mode"`
	Status     uint8             `json:"status"`
	StatusMsg  string            `json:"status_msg"`
	VideoCount int               `json:"video_count"`
	EventCount int               `json:"event_count"`
	Videos     []VideoResultInfo `json:"videos"`
	EventsUrl  string            `json:"events_url,omitempty"`
}
