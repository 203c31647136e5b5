package cmd

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"

	"github.com/Laisky/miridev-mcp/internal/mcp"
	"github.com/Laisky/miridev-mcp/internal/store"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It accepts a value getter and returns nil when all configured values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateStorageConfig(get, &validationErrs)
	validateDeployConfig(get, &validationErrs)
	validateAuthConfig(get, &validationErrs)
	validateStatusConfig(get, &validationErrs)
	validateMCPToolsConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateStorageConfig validates the record backend selection.
func validateStorageConfig(get configGetter, errs *[]string) {
	validateOptionalOneOf(get, "settings.storage.backend",
		[]string{store.BackendFile, store.BackendRedis}, errs)
	validateOptionalStringNonEmpty(get, "settings.storage.dir", errs)
	validateOptionalStringNonEmpty(get, "settings.storage.redis.addr", errs)
	validateOptionalIntMin(get, "settings.storage.redis.db", 0, errs)
}

// validateDeployConfig validates upload endpoint and collection limits.
func validateDeployConfig(get configGetter, errs *[]string) {
	validateOptionalURL(get, "settings.deploy.api_base_url", errs)
	validateOptionalIntMin(get, "settings.deploy.max_redirects", 0, errs)
	validateOptionalIntMin(get, "settings.deploy.timeout_seconds", 1, errs)
	validateOptionalInt64Min(get, "settings.deploy.max_file_bytes", 1, errs)
	validateOptionalBool(get, "settings.deploy.minify", errs)
}

// validateAuthConfig validates token lifetime settings.
func validateAuthConfig(get configGetter, errs *[]string) {
	validateOptionalIntMin(get, "settings.auth.token_ttl_days", 1, errs)

	raw := get("settings.auth.accounts")
	if raw == nil {
		return
	}
	accounts, ok := raw.(map[string]any)
	if !ok {
		appendValidationError(errs, "settings.auth.accounts must be a map keyed by email")
		return
	}
	for email, item := range accounts {
		entry, ok := item.(map[string]any)
		if !ok {
			appendValidationError(errs, "settings.auth.accounts.%s must be a map", email)
			continue
		}
		validateRequiredStringInMap(errs, entry, "settings.auth.accounts."+email+".password")
	}
}

// validateStatusConfig validates the health probe settings.
func validateStatusConfig(get configGetter, errs *[]string) {
	validateOptionalURL(get, "settings.status.service_url", errs)
	validateOptionalIntMin(get, "settings.status.probe_timeout_seconds", 1, errs)
}

// validateMCPToolsConfig validates MCP tool toggles.
// It accepts a getter and an error collector pointer and appends validation errors.
func validateMCPToolsConfig(get configGetter, errs *[]string) {
	for _, name := range mcp.AllToolNames {
		validateOptionalBool(get, "settings.mcp.tools."+name+".enabled", errs)
	}
}

// validateOptionalBool validates an optionally configured boolean key.
// It accepts a getter, the key, and an error collector pointer and appends validation errors.
func validateOptionalBool(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := parseStrictBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// validateOptionalIntMin validates an optionally configured integer key with a minimum constraint.
// It accepts a getter, the key, a minimum value, and an error collector pointer and appends validation errors.
func validateOptionalIntMin(get configGetter, key string, min int, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictInt(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// validateOptionalInt64Min validates an optionally configured int64 key with a minimum constraint.
func validateOptionalInt64Min(get configGetter, key string, min int64, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictInt64(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// validateOptionalOneOf validates that an optional string key holds one of allowed.
func validateOptionalOneOf(get configGetter, key string, allowed []string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if normalized == candidate {
			return
		}
	}

	appendValidationError(errs, "%s must be one of %s", key, strings.Join(allowed, ", "))
}

// validateOptionalURL validates an optionally configured absolute URL key.
// It accepts a getter, the key, and an error collector pointer and appends validation errors.
func validateOptionalURL(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string URL", key)
		return
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		appendValidationError(errs, "%s must not be empty", key)
		return
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		appendValidationError(errs, "%s must be a valid absolute URL", key)
	}
}

// validateOptionalStringNonEmpty validates an optionally configured non-empty string key.
func validateOptionalStringNonEmpty(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	if strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must not be empty", key)
	}
}

// validateRequiredStringInMap validates that a required map field is a non-empty string.
// It accepts an error collector pointer, a source map, and the field path label, and appends validation errors.
func validateRequiredStringInMap(errs *[]string, source map[string]any, fieldPath string) {
	parts := strings.Split(fieldPath, ".")
	key := parts[len(parts)-1]
	value, ok := source[key]
	if !ok {
		appendValidationError(errs, "%s is required", fieldPath)
		return
	}

	text, parseErr := parseStrictString(value)
	if parseErr != nil || strings.TrimSpace(text) == "" {
		appendValidationError(errs, "%s must be a non-empty string", fieldPath)
	}
}

// parseStrictBool parses a value as boolean using strict conversion rules.
// It accepts a raw value and returns the parsed boolean and whether parsing succeeded.
func parseStrictBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		if math.Trunc(v) != v {
			return false, false
		}
		return int64(v) != 0, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, false
		}
		switch strings.ToLower(trimmed) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// parseStrictInt parses a value as a strict integer.
// It accepts a raw value and returns the parsed int and an error when parsing fails.
func parseStrictInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.Trunc(v) != v {
			return 0, errors.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errors.New("empty integer string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, errors.Wrap(err, "atoi")
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("unsupported int type %T", value)
	}
}

// parseStrictInt64 parses a value as a strict int64.
func parseStrictInt64(value any) (int64, error) {
	parsed, err := parseStrictInt(value)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int64(parsed), nil
}

// parseStrictString parses a value as a strict string.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	default:
		return "", errors.Errorf("unsupported string type %T", value)
	}
}

// appendValidationError appends one formatted validation error.
func appendValidationError(errs *[]string, format string, args ...any) {
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
