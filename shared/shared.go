package shared

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"naturekids/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// FilterByID matches a single row by its key column.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Clause{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...any) string {
	var key strings.Builder

	key.WriteString(prefix)

	for _, part := range parts {
		key.WriteString(cacheKeySeparator)
		fmt.Fprint(&key, part)
	}

	return key.String()
}

// BuildCacheKeyWithQuery appends a hash of the query parameters and filter so list
// results for different queries land in different keys under the same prefix.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter any) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter any             `json:"filter"`
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode cache query")

		return prefix
	}

	hash := fnv.New64a()
	_, _ = hash.Write(payload)

	return BuildCacheKey(prefix, fmt.Sprintf("%x", hash.Sum64()))
}
