package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Scalar is a JSON value that upstream sends either as a number or a string.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(str))
		return nil
	}
	*s = Scalar(data)
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(s), 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

// Float parses the value, reporting false when it is empty or not numeric.
func (s Scalar) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

type Money struct {
	Amount   Scalar `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type Price struct {
	FinalMoney *Money `json:"finalMoney,omitempty"`
	BaseMoney  *Money `json:"baseMoney,omitempty"`
}

type Genre struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Rating struct {
	Name      string `json:"name,omitempty"`
	AgeRating Scalar `json:"ageRating"`
}

// Product is a single game listing returned by the catalog.
type Product struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Price            *Price   `json:"price,omitempty"`
	ReleaseDate      string   `json:"releaseDate,omitempty"`
	Genres           []Genre  `json:"genres,omitempty"`
	OperatingSystems []string `json:"operatingSystems,omitempty"`
	Developers       []string `json:"developers,omitempty"`
	Publishers       []string `json:"publishers,omitempty"`
	Ratings          []Rating `json:"ratings,omitempty"`
	CoverHorizontal  string   `json:"coverHorizontal,omitempty"`
	Screenshots      []string `json:"screenshots,omitempty"`
}

// FinalAmount is the final price, or 0 when upstream omits it.
func (p Product) FinalAmount() float64 {
	if p.Price == nil || p.Price.FinalMoney == nil {
		return 0
	}
	amount, _ := p.Price.FinalMoney.Amount.Float()
	return amount
}

// AgeRating is the first listed age rating, or "0" when upstream omits it.
func (p Product) AgeRating() string {
	if len(p.Ratings) == 0 || p.Ratings[0].AgeRating == "" {
		return "0"
	}
	return string(p.Ratings[0].AgeRating)
}

var releaseDateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	time.RFC3339,
}

// ReleaseTime parses the release date, reporting false when it is absent or malformed.
func (p Product) ReleaseTime() (time.Time, bool) {
	raw := strings.TrimSpace(p.ReleaseDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// GenreNames returns the genre names in upstream order.
func (p Product) GenreNames() []string {
	names := make([]string, 0, len(p.Genres))
	for _, g := range p.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Page is one response of the catalog listing endpoint.
type Page struct {
	Pages        int       `json:"pages"`
	ProductCount Scalar    `json:"productCount"`
	Products     []Product `json:"products"`
}
