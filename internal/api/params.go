package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-tracker/internal/criteria"
)

type idURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// bindID reads the :id path parameter, rejecting anything that is not a UUID.
func bindID(c *gin.Context) (string, bool) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid id: must be a UUID")
		return "", false
	}
	return uri.ID, true
}

// userCriteria decodes the query string and scopes it to the caller.
func userCriteria(c *gin.Context, userID string) criteria.Primitives {
	p := criteria.FromQuery(c.Request.URL.Query())
	owner := criteria.FilterPrimitives{Field: "userId", Operator: string(criteria.OperatorEqual), Value: userID}
	p.Filters = append([]criteria.FilterPrimitives{owner}, p.Filters...)
	return p
}

// --- Response envelopes ---

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type listMeta struct {
	Total int64 `json:"total"`
}

type listResponse[T any] struct {
	Data []T      `json:"data"`
	Meta listMeta `json:"meta"`
}
