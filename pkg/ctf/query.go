package ctf

import (
	"net/url"
	"strconv"
)

// FetchAll is the count sentinel that asks the server for every item
// instead of a page.
const FetchAll = -1

// DefaultPageSize is the page size the server applies when no count is
// given on a paged endpoint.
const DefaultPageSize = 25

// QueryParams represents the query parameters shared by list endpoints.
type QueryParams struct {
	// Count is the number of items to fetch. Zero leaves the server
	// default in place; FetchAll requests everything.
	Count int
	// Offset is the zero-based index of the first item to fetch.
	Offset int
	// SortBy names the field to sort on.
	SortBy string
	// Recursive asks folder listings to descend into subfolders.
	Recursive bool
	// Basic asks for summary field sets where the endpoint supports it.
	Basic bool
	// Filters holds additional endpoint-specific parameters.
	Filters map[string]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithFilter adds an endpoint-specific parameter and returns the params for
// chaining.
func (p *QueryParams) WithFilter(key, value string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string]string)
	}

	p.Filters[key] = value

	return p
}

// ToValues converts the params to url.Values.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p.Count != 0 {
		values.Set("count", strconv.Itoa(p.Count))
	}

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.SortBy != "" {
		values.Set("sortby", p.SortBy)
	}

	if p.Recursive {
		values.Set("recursive", "true")
	}

	if p.Basic {
		values.Set("basic", "true")
	}

	for key, value := range p.Filters {
		values.Set(key, value)
	}

	return values
}
