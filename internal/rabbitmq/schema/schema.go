package schema

import (
	"encoding/json"
	"time"
)

type UserEvent struct {
	Type   string    `json:"type"`
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

func (e *UserEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *UserEvent) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}
