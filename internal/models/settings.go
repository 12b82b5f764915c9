package models

import "time"

// Settings is the single process-wide configuration record: loaded once at
// startup by the UI, saved back on change. It replaces the ad-hoc
// browser-local storage reads the legacy front end scattered around.
type Settings struct {
	BusinessName string    `json:"business_name"`
	Theme        string    `json:"theme"`
	TutorialSeen bool      `json:"tutorial_seen"`
	UpdatedAt    time.Time `json:"updated_at"`
}
