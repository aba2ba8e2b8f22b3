package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

// ParseQueryDate reads a required YYYY-MM-DD query parameter.
func ParseQueryDate(r *http.Request, key string) (types.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, key+" is required").
			WithDetails(map[string]any{"field": key})
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": key})
	}
	return date, nil
}
