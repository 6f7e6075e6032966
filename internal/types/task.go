package types

import "time"

// Task modes
const (
	TaskModeSubtitles = "subtitles"
	TaskModeEvents    = "events"
	TaskModeBoth      = "both"
)

// Task statuses
const (
	TaskStatusProcessing uint8 = 1
	TaskStatusSuccess    uint8 = 2
	TaskStatusFailed     uint8 = 3
)

// ExtractionTask is one archive-processing run: unpack, transcribe each
// video, then write subtitle files and/or an event table.
type ExtractionTask struct {
	Id         int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	TaskId     string `json:"task_id" gorm:"uniqueIndex;size:64"`
	ArchiveSrc string `json:"archive_src"`
	Mode       string `json:"mode" gorm:"size:16"`
	// Pattern is the resolved regular expression used for event extraction,
	// empty in subtitles-only mode.
	Pattern    string `json:"pattern"`
	Preset     string `json:"preset" gorm:"size:32"`
	Strategy   string `json:"strategy" gorm:"size:16"`
	Status     uint8  `json:"status"`
	StatusMsg  string `json:"status_msg"`
	FailReason string `json:"fail_reason"`
	VideoCount int    `json:"video_count"`
	EventCount int    `json:"event_count"`

	VideoResults []VideoResult `json:"video_results" gorm:"foreignKey:TaskId;references:TaskId"`

	CreateTime time.Time `json:"create_time" gorm:"autoCreateTime"`
	UpdateTime time.Time `json:"update_time" gorm:"autoUpdateTime"`
}

// ExtractionPayload contains the data needed to run a task in the
// background, whether in-process or through the Redis queue.
type ExtractionPayload struct {
	TaskId      string `json:"task_id"`
	ArchivePath string `json:"archive_path,omitempty"`
	ArchiveUrl  string `json:"archive_url,omitempty"`
	Mode        string `json:"mode"`
	Pattern     string `json:"pattern,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
	Language    string `json:"language,omitempty"`
}

// VideoResult records the per-video outputs of a task.
type VideoResult struct {
	Id         int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	TaskId     string `json:"-" gorm:"index;size:64"`
	VideoName  string `json:"video_name"`
	SrtPath    string `json:"srt_path"`
	EventCount int    `json:"event_count"`
	// FailReason is set when this one video failed; the task keeps going
	// with the remaining videos.
	FailReason string `json:"fail_reason,omitempty"`
}
