package client

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// queryValues converts optional QueryParams to url.Values.
func queryValues(params *ctf.QueryParams) url.Values {
	if params == nil {
		return nil
	}

	return params.ToValues()
}

// decodeItems unwraps the {"items": [...]} envelope into a TitledCollection.
// A malformed list body is tolerated: it is logged and yields an empty
// collection, so a degraded server answer does not fail an enrichment read.
// Primary create/update/delete decoding never goes through here.
func decodeItems[T ctf.Titled](logger http.Logger, body []byte, resource string) *ctf.TitledCollection[T] {
	var list ctf.ItemList[T]

	err := json.Unmarshal(body, &list)
	if err != nil {
		if logger != nil {
			logger.Warn("discarding malformed list response", map[string]interface{}{
				"resource": resource,
				"error":    err.Error(),
			})
		}

		return ctf.NewTitledCollection[T](nil)
	}

	return ctf.NewTitledCollection(list.Items)
}

// decodeEntity decodes a singular response body into the given entity.
func decodeEntity(body []byte, entity interface{}, resource string) error {
	err := json.Unmarshal(body, entity)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", resource, err)
	}

	return nil
}

// expectStatus enforces an exact success code on endpoints that document a
// single one. The server's creation endpoints are inconsistent about 200
// versus 201; most callers accept the whole success range, but docman
// creation requires exactly 201.
func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		return ctf.NewAPIError(resp.StatusCode, resp.Body)
	}

	return nil
}

// successStatus reports whether the code is in the 2xx range. POST
// endpoints answer 200 or 201 depending on the subsystem; both count.
func successStatus(code int) bool {
	return code >= nethttp.StatusOK && code < nethttp.StatusMultipleChoices
}
