package newsapi

import (
	"bytes"
	"encoding/json"

	"newspulse/internal/domain/entity"
)

// everythingResponse is the /v2/everything body. Error responses carry
// status "error" with code and message instead of articles.
type everythingResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

type article struct {
	Source      source      `json:"source"`
	Title       looseString `json:"title"`
	Description looseString `json:"description"`
	URL         looseString `json:"url"`
	PublishedAt looseString `json:"publishedAt"`
}

type source struct {
	Name looseString `json:"name"`
}

func (a article) toRaw() entity.RawArticle {
	raw := entity.RawArticle{
		Title:       a.Title.ptr(),
		Description: a.Description.ptr(),
		URL:         a.URL.ptr(),
		PublishedAt: a.PublishedAt.ptr(),
	}
	if name := a.Source.Name.ptr(); name != nil {
		raw.Source = *name
	}
	return raw
}

// looseString decodes a JSON string and treats null or any non-string value
// as absent, so one bad field never rejects the whole batch.
type looseString struct {
	value *string
}

func (s *looseString) UnmarshalJSON(data []byte) error {
	s.value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	s.value = &v
	return nil
}

func (s looseString) ptr() *string {
	return s.value
}
