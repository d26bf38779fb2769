package server

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spiffcs/goodfirst/internal/model"
)

// Query parameter names accepted by GET /github/issues
const (
	ParamLanguage          = "language"
	ParamTopic             = "topic"
	ParamMinStars          = "minStars"
	ParamMinForks          = "minForks"
	ParamMinOwnerFollowers = "minOwnerFollowers"
	ParamActiveWithinDays  = "activeWithinDays"
)

// ParseFilters reads search filters from query parameters. Numeric
// parameters accept any finite decimal number, so minStars=49.5 and
// activeWithinDays=0.5 are honored. A parameter given with an empty value
// counts as 0. Missing or unparseable values, NaN and infinities are absent.
func ParseFilters(q url.Values) model.SearchFilters {
	return model.SearchFilters{
		Language:          q.Get(ParamLanguage),
		Topic:             q.Get(ParamTopic),
		MinStars:          optionalFloat(q, ParamMinStars),
		MinForks:          optionalFloat(q, ParamMinForks),
		MinOwnerFollowers: optionalFloat(q, ParamMinOwnerFollowers),
		ActiveWithinDays:  optionalFloat(q, ParamActiveWithinDays),
	}
}

func optionalFloat(q url.Values, key string) *float64 {
	if !q.Has(key) {
		return nil
	}
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return model.Float(0)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}
