package models

import "encoding/json"

// BackupDocument is the full dataset snapshot. Each field holds the stored
// collection verbatim so a restore writes back exactly what was exported.
type BackupDocument struct {
	Promoters  json.RawMessage `json:"promoters"`
	Floors     json.RawMessage `json:"floors"`
	Sales      json.RawMessage `json:"sales"`
	Complaints json.RawMessage `json:"complaints"`
	Feedbacks  json.RawMessage `json:"feedbacks"`
	Settings   json.RawMessage `json:"settings"`
}
