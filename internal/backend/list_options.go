package backend

import (
	"net/url"
	"strconv"
)

// ListOptions carries the paging and filter parameters shared by every list
// endpoint. Zero values are omitted from the query string.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	Status string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}
