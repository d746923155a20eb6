package model

import "encoding/json"

// Movie movie record as served by the backend
type Movie struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Synopsis string `json:"synopsis,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

// Draft movie payload without an id, sent on create and update.
// All five keys are always encoded: an update is a full replace.
type Draft struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Synopsis string `json:"synopsis"`
	Picture  string `json:"picture"`
}

// UnmarshalJSON accepts both the Mongo style "_id" key and a plain "id".
func (m *Movie) UnmarshalJSON(data []byte) error {
	type plain Movie
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Movie(aux.plain)
	if m.ID == "" {
		m.ID = aux.AltID
	}
	return nil
}

// Draft returns the fields of m that a form can track.
func (m Movie) Draft() Draft {
	return Draft{
		Title:    m.Title,
		Author:   m.Author,
		Genre:    m.Genre,
		Synopsis: m.Synopsis,
		Picture:  m.Picture,
	}
}
