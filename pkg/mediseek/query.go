package mediseek

import (
	"net/url"
	"strconv"
)

// QueryParams represents query parameters for list endpoints.
type QueryParams struct {
	// Page and PerPage control pagination; zero values are omitted.
	Page    int
	PerPage int

	// Search is a free-text search term (clinic search).
	Search string

	// Specialty filters clinics by specialty.
	Specialty string

	// Status filters bookings by status.
	Status string

	// Filters holds additional name/value filters.
	Filters map[string]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithPage sets pagination parameters.
func (p *QueryParams) WithPage(page, perPage int) *QueryParams {
	p.Page = page
	p.PerPage = perPage

	return p
}

// WithFilter adds a name/value filter.
func (p *QueryParams) WithFilter(name, value string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string]string)
	}

	p.Filters[name] = value

	return p
}

// ToValues converts the parameters to url.Values.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}

	if p.Search != "" {
		values.Set("q", p.Search)
	}

	if p.Specialty != "" {
		values.Set("specialty", p.Specialty)
	}

	if p.Status != "" {
		values.Set("status", p.Status)
	}

	for name, value := range p.Filters {
		values.Set(name, value)
	}

	return values
}

// ToFilterMap flattens the parameters into the map form consumed by
// Domain.List cache keys.
func (p *QueryParams) ToFilterMap() map[string]string {
	if p == nil {
		return nil
	}

	out := make(map[string]string)

	for name, values := range p.ToValues() {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
