// Package domain holds DTOs for the intent catalog
package domain

// Intent is one predefined analysis target
type Intent struct {
	ID          string   `json:"id" yaml:"id" example:"pain_point"`
	Name        string   `json:"name" yaml:"name" example:"Pain point"`
	Description string   `json:"description" yaml:"description" example:"The video describes a problem the viewer has"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
}

// File is the on-disk catalog shape, shared by the json and yaml forms
type File struct {
	Intents []Intent `json:"intents" yaml:"intents"`
}

// IntentList is the list endpoint payload
type IntentList struct {
	Intents []Intent `json:"intents"`
	Count   int      `json:"count"`
}
