package model

import "strings"

type Status string

const (
	StatusToRead  Status = "to-read"
	StatusReading Status = "reading"
	StatusDone    Status = "done"
)

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type BookEntry struct {
	ID            int    `json:"id" db:"id"`
	GoogleBooksID string `json:"googleBooksId" db:"google_books_id"`
	Status        Status `json:"status" db:"status"`
	UserID        int    `json:"-" db:"user_id"`
}

// BookView is a saved entry enriched with live catalog metadata.
type BookView struct {
	ID            int    `json:"id"`
	GoogleBooksID string `json:"googleBooksId"`
	Status        Status `json:"status"`
	Title         string `json:"title"`
	Author        string `json:"author"`
}

// Volume is a single Google Books volume as returned by the catalog.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

func (v Volume) Title() string {
	if v.VolumeInfo.Title == "" {
		return "Unknown Title"
	}
	return v.VolumeInfo.Title
}

func (v Volume) Author() string {
	if len(v.VolumeInfo.Authors) == 0 {
		return "Unknown Author"
	}
	return strings.Join(v.VolumeInfo.Authors, ", ")
}

type SearchResponse struct {
	Items []Volume `json:"items"`
}

type SignUpRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ReadingEventType string

const (
	EventSaved   ReadingEventType = "SAVED"
	EventUpdated ReadingEventType = "UPDATED"
	EventDeleted ReadingEventType = "DELETED"
)

// ReadingEvent is published to the event stream on entry mutations.
type ReadingEvent struct {
	Type          ReadingEventType `json:"type"`
	UserID        int              `json:"userId"`
	GoogleBooksID string           `json:"googleBooksId,omitempty"`
	EntryID       int              `json:"entryId,omitempty"`
	Status        Status           `json:"status,omitempty"`
}
