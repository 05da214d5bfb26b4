// Package pagination translates page/pageSize query parameters into
// skip/take windows for list endpoints.
package pagination

import (
	"math"
	"net/url"
	"strconv"

	"blogify/internal/apperr"

	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

type Page struct {
	Number int
	Size   int
}

// Meta is the envelope echoed back alongside list results.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
}

// Default returns the page used when no parameters are supplied.
func Default() Page {
	return Page{Number: DefaultPage, Size: DefaultPageSize}
}

// Parse reads page and pageSize from values. Omitted parameters fall back to
// the defaults; supplied ones must be positive integers.
func Parse(values url.Values) (Page, error) {
	p := Default()
	if raw, ok := values["page"]; ok {
		n, err := positiveInt(raw, "page")
		if err != nil {
			return Page{}, err
		}
		p.Number = n
	}
	if raw, ok := values["pageSize"]; ok {
		n, err := positiveInt(raw, "pageSize")
		if err != nil {
			return Page{}, err
		}
		if n > MaxPageSize {
			return Page{}, apperr.BadRequest("pageSize must not exceed " + strconv.Itoa(MaxPageSize))
		}
		p.Size = n
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return Page{}, apperr.BadRequest("page is out of range")
	}
	return p, nil
}

func positiveInt(raw []string, name string) (int, error) {
	if len(raw) != 1 {
		return 0, apperr.BadRequest(name + " must be supplied once")
	}
	n, err := strconv.Atoi(raw[0])
	if err != nil || n < 1 {
		return 0, apperr.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}

func (p Page) Skip() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Take() int {
	return p.Size
}

func (p Page) Meta(total int64) Meta {
	return Meta{Page: p.Number, PerPage: p.Size, Total: total}
}

// Scope applies the page window to a gorm query.
func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Skip()).Limit(p.Take())
	}
}
