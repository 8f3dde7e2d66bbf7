package history

import "time"

// Entry is a single capture-session record in the history log.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash"`
	Session  string    `json:"session"`            // capture session id
	Command  string    `json:"command"`            // wrapped command line
	LogPath  string    `json:"log_path,omitempty"` // empty when capture was disabled
	Captured bool      `json:"captured"`           // capture session was enabled
	ExitCode int       `json:"exit_code"`          // 0 = success
	Error    string    `json:"error,omitempty"`    // error message if failed
	Duration float64   `json:"duration_ms"`        // execution time in milliseconds
	Cwd      string    `json:"cwd"`                // working directory
	Hash     string    `json:"hash"`               // SHA-256 of this entry (with hash field empty)
}
