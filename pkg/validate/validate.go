// Package validate provides Laravel-style struct-tag validation.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	sometimes           pointer fields: nil means "not supplied", skip all rules
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	url                 valid URL (http/https)
//	uuid                valid UUID
//	alpha               letters only
//	alpha_num           letters and digits only
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric             any number
//	integer             whole number
//	boolean             "true","false","1","0" (or actual bool)
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	size=N              string: exact length
//	gt/gte/lt/lte=N     numeric comparisons
//	between=min,max     number or string length between min and max (inclusive)
//	digits=N            exactly N decimal digits
//	in=a,b,c            value must be one of the listed items
//	not_in=a,b,c        value must NOT be one of the listed items
//	regex=pattern       value must match the regex (avoid commas in pattern)
//	confirmed           a sibling field named <field>_confirmation must match
//
// Struct returns a map of fieldName → ordered error messages, one entry per
// failing rule, in tag order — the same shape as a Laravel errors bag.
// Custom wording per rule is supplied via StructWithMessages with keys of
// the form "field.rule" (e.g. "price.min").
//
// Example:
//
//	type Input struct {
//	    Name     string   `json:"name"     validate:"required,between=2,100"`
//	    Email    string   `json:"email"    validate:"required,email,max=100"`
//	    Password string   `json:"password" validate:"required,min=6,confirmed"`
//	    Price    *float64 `json:"price"    validate:"sometimes,required,numeric,min=0.01"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates all exported fields of v that carry a `validate` tag,
// using the default messages.
func Struct(v interface{}) map[string][]string {
	return StructWithMessages(v, nil)
}

// StructWithMessages validates v; messages maps "field.rule" to a custom
// error message that replaces the default wording for that rule.
func StructWithMessages(v interface{}, messages map[string]string) map[string][]string {
	errs := make(map[string][]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)
		value := rv.Field(i)

		// Pointer fields model "supplied vs absent": nil with `sometimes`
		// means the field was not in the payload at all.
		fromPointer := false
		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				if hasRule(rules, "sometimes") || hasRule(rules, "nullable") {
					continue
				}
				if hasRule(rules, "required") {
					errs[name] = append(errs[name], message(messages, name, "required",
						fmt.Sprintf("The %s field is required.", name)))
				}
				continue
			}
			fromPointer = true
			value = value.Elem()
		}

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		// Empty values only ever fail `required`; the remaining rules are
		// skipped. A zero numeric reached through a pointer was explicitly
		// supplied, so its value rules still run.
		if isEmpty(value) && !(fromPointer && isNumericKind(value)) {
			if hasRule(rules, "required") {
				errs[name] = append(errs[name], message(messages, name, "required",
					fmt.Sprintf("The %s field is required.", name)))
			}
			continue
		}

		for _, rule := range rules {
			switch rule {
			case "nullable", "sometimes", "required":
				continue
			}
			key, _, _ := strings.Cut(rule, "=")
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = append(errs[name], message(messages, name, key, msg))
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string][]string) bool { return len(errs) > 0 }

func message(custom map[string]string, field, rule, fallback string) string {
	if custom != nil {
		if msg, ok := custom[field+"."+rule]; ok {
			return msg
		}
	}
	return fallback
}

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "uuid":
		if !uuidRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid UUID.", field)
		}
	case "boolean":
		lower := strings.ToLower(raw)
		if v.Kind() != reflect.Bool && lower != "true" && lower != "false" && lower != "1" && lower != "0" {
			return fmt.Sprintf("The %s field must be true or false.", field)
		}

	case "alpha":
		for _, c := range raw {
			if !unicode.IsLetter(c) {
				return fmt.Sprintf("The %s field must contain only letters.", field)
			}
		}
	case "alpha_num":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				return fmt.Sprintf("The %s field must contain only letters and numbers.", field)
			}
		}
	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := mustParseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "size":
		if float64(len([]rune(raw))) != mustParseFloat(param) {
			return fmt.Sprintf("The %s must be exactly %s characters.", field, param)
		}
	case "gt":
		if toFloat(v) <= mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if toFloat(v) < mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if toFloat(v) >= mustParseFloat(param) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if toFloat(v) > mustParseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "between":
		parts := strings.SplitN(param, ",", 2)
		if len(parts) == 2 {
			lo, hi := mustParseFloat(parts[0]), mustParseFloat(parts[1])
			if isNumericKind(v) {
				f := toFloat(v)
				if f < lo || f > hi {
					return fmt.Sprintf("The %s must be between %s and %s.", field, parts[0], parts[1])
				}
			} else {
				l := float64(len([]rune(raw)))
				if l < lo || l > hi {
					return fmt.Sprintf("The %s must be between %s and %s characters.", field, parts[0], parts[1])
				}
			}
		}
	case "digits":
		if !digitsOnlyRE.MatchString(raw) || float64(len(raw)) != mustParseFloat(param) {
			return fmt.Sprintf("The %s must be %s digits.", field, param)
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "not_in":
		for _, f := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(f) {
				return fmt.Sprintf("The selected %s is invalid.", field)
			}
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", field)
		}
		if !re.MatchString(raw) {
			return fmt.Sprintf("The %s format is invalid.", field)
		}

	case "confirmed":
		// The rule sits on the base field (e.g. password) and compares it
		// against the sibling whose json name is <field>_confirmation.
		confirm := findSiblingByJSONName(parent, field+"_confirmation")
		if confirm == nil || fmt.Sprintf("%v", confirm.Interface()) != raw {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
	}

	return ""
}

var (
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidRE       = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
)

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits the validate tag by comma while keeping multi-value
// rule parameters (in=, not_in=, between=) intact.
// e.g. "required,in=admin,user,mod,max=100" → ["required","in=admin,user,mod","max=100"]
func splitRules(tag string) []string {
	var rules []string
	var current strings.Builder
	inParam := false

	multiValuePrefixes := []string{"in=", "not_in=", "between="}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch == ',' {
			if inParam {
				// A comma inside a multi-value param, unless the next token
				// starts a new rule keyword.
				if looksLikeNewRule(tag[i+1:]) {
					rules = append(rules, current.String())
					current.Reset()
					inParam = false
				} else {
					current.WriteByte(ch)
				}
			} else {
				rules = append(rules, current.String())
				current.Reset()
			}
		} else {
			current.WriteByte(ch)
			if !inParam {
				for _, pfx := range multiValuePrefixes {
					if strings.HasSuffix(current.String(), pfx) {
						inParam = true
						break
					}
				}
			}
		}
	}
	if current.Len() > 0 {
		rules = append(rules, current.String())
	}
	return rules
}

func looksLikeNewRule(s string) bool {
	known := []string{
		"required", "sometimes", "nullable", "email", "url", "uuid",
		"boolean", "alpha", "alpha_num", "alpha_dash", "numeric", "integer",
		"confirmed", "regex=", "min=", "max=", "size=", "gt=", "gte=",
		"lt=", "lte=", "digits=", "in=", "not_in=", "between=",
	}
	for _, k := range known {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}

func findSiblingByJSONName(parent reflect.Value, name string) *reflect.Value {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == name {
			v := parent.Field(i)
			if v.Kind() == reflect.Ptr {
				if v.IsNil() {
					return nil
				}
				v = v.Elem()
			}
			return &v
		}
	}
	return nil
}
