package models

import "encoding/json"

// Command is one request on the local analysis socket: a command name
// plus its JSON payload.
type Command struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
}

// Response is the reply to a Command.
type Response struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
