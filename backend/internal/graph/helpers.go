package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok {
		return false
	}
	b, _ := val.(bool)
	return b
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	return int(getInt64FromRecord(record, key))
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok {
		return 0
	}
	return toInt64(val)
}

func getOptionalIntFromRecord(record *neo4j.Record, key string) *int {
	val, ok := record.Get(key)
	if !ok {
		return nil
	}
	return toOptionalInt(val)
}

func getSliceFromRecord(record *neo4j.Record, key string) []interface{} {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	if slice, ok := val.([]interface{}); ok {
		return slice
	}
	return nil
}

func getStringFromMap(m map[string]interface{}, key string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64FromMap(m map[string]interface{}, key string) int64 {
	return toInt64(m[key])
}

func getOptionalIntFromMap(m map[string]interface{}, key string) *int {
	return toOptionalInt(m[key])
}

func getStringSliceFromMap(m map[string]interface{}, key string) []string {
	val, ok := m[key]
	if !ok || val == nil {
		return []string{}
	}
	switch slice := val.(type) {
	case []string:
		return slice
	case []interface{}:
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}

func toInt64(val interface{}) int64 {
	switch i := val.(type) {
	case int64:
		return i
	case int:
		return int64(i)
	case float64:
		return int64(i)
	}
	return 0
}

func toOptionalInt(val interface{}) *int {
	switch val.(type) {
	case int64, int, float64:
		i := int(toInt64(val))
		return &i
	}
	return nil
}

func int64Ptr(v int64) *int64 {
	return &v
}

// optionalInt converts a nullable Go int into a Cypher parameter
func optionalInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}
