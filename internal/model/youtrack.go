package model

// Issue represents a YouTrack issue response
type Issue struct {
	IDReadable   string        `json:"idReadable"`
	Summary      string        `json:"summary"`
	Description  string        `json:"description,omitempty"`
	Project      Project       `json:"project"`
	CustomFields []CustomField `json:"customFields,omitempty"`
}

// Project represents the project an issue belongs to
type Project struct {
	ShortName string `json:"shortName"`
}

// CustomField represents one custom field attached to an issue.
// Value is left untyped: YouTrack returns a different shape per field
// type (enum, user, text, ...).
type CustomField struct {
	ProjectCustomField ProjectCustomField `json:"projectCustomField"`
	Value              any                `json:"value"`
}

// ProjectCustomField carries the field definition metadata
type ProjectCustomField struct {
	Field Field `json:"field"`
}

// Field represents a custom field definition
type Field struct {
	Name string `json:"name"`
}

// Comment represents a YouTrack issue comment
type Comment struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author Author `json:"author"`
}

// Author represents the user who wrote a comment
type Author struct {
	Login string `json:"login"`
}
