package model

// TaskStatus represents the status of a single URL within a batch
type TaskStatus string

const (
	// TaskStatusPending means the item is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means yt-dlp is running for the item
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means yt-dlp exited with status zero
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means yt-dlp could not be started or exited non-zero
	TaskStatusError TaskStatus = "Error"

	// TaskStatusCancelled means the batch was cancelled before the item finished
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsFinished returns true if the item reached a terminal state (completed, cancelled, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}
